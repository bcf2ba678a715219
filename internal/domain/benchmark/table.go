package benchmark

import "strings"

// Row is one reference entry keyed by category and region. An empty
// region marks the category-wide row.
type Row struct {
	Category  string    `json:"category" yaml:"category"`
	Region    string    `json:"region,omitempty" yaml:"region,omitempty"`
	Reference Reference `json:"reference" yaml:"reference"`
}

type key struct {
	category string
	region   string
}

// Table is an immutable reference lookup with a default row.
type Table struct {
	rows     map[key]Reference
	fallback Reference
}

// NewTable copies rows into a lookup table. Later rows with the same key
// replace earlier ones.
func NewTable(rows []Row, fallback Reference) *Table {
	t := &Table{
		rows:     make(map[key]Reference, len(rows)),
		fallback: fallback,
	}
	for _, r := range rows {
		t.rows[key{normalize(r.Category), normalize(r.Region)}] = r.Reference
	}
	return t
}

// Lookup resolves (category, region), then the category-wide row, then
// the default row. The boolean is false when the default row was used.
func (t *Table) Lookup(category, region string) (Reference, bool) {
	if t == nil {
		return Reference{}, false
	}
	c, r := normalize(category), normalize(region)
	if ref, ok := t.rows[key{c, r}]; ok {
		return ref, true
	}
	if ref, ok := t.rows[key{c, ""}]; ok {
		return ref, true
	}
	return t.fallback, false
}

// Fallback returns the default row.
func (t *Table) Fallback() Reference {
	if t == nil {
		return Reference{}
	}
	return t.fallback
}

// Len returns the number of keyed rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
