package refdata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/okian/payerlens/internal/domain/benchmark"
	"gopkg.in/yaml.v3"
)

// Snapshot is a validated, compiled, read-only set of tables.
type Snapshot struct {
	Tables     Tables
	References *benchmark.Table
	Pricer     *benchmark.Pricer
}

// NewSnapshot validates t and compiles its lookup tables.
func NewSnapshot(t Tables) (*Snapshot, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	refs := benchmark.NewTable(t.Benchmarks, t.DefaultBenchmark)
	return &Snapshot{
		Tables:     t,
		References: refs,
		Pricer:     benchmark.NewPricer(refs, t.SpecialtyMultipliers),
	}, nil
}

// MustDefault returns a snapshot of the built-in tables.
func MustDefault() *Snapshot {
	s, err := NewSnapshot(Default())
	if err != nil {
		panic(err)
	}
	return s
}

// Parse decodes YAML over the built-in tables. Scalar and list fields in
// the document replace the defaults; map fields add to or override
// default keys.
func Parse(data []byte) (Tables, error) {
	t := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		return Tables{}, fmt.Errorf("%w: %w", ErrLoadTables, err)
	}
	canonicalize(t.ReputationWeights)
	canonicalize(t.SpecialtyMultipliers)
	canonicalize(t.MarketRates)
	return t, nil
}

// canonicalize rewrites keys to lower case in place. Default keys are
// already canonical, so a differently cased document key replaces them.
func canonicalize(m map[string]float64) {
	for k, v := range m {
		if nk := normalizeKey(k); nk != k {
			delete(m, k)
			m[nk] = v
		}
	}
}

// LoadFile reads, parses and compiles the tables at path.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadTables, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(t)
}

// Store publishes the current snapshot to concurrent readers.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store holding initial, or the built-in tables when
// initial is nil.
func NewStore(initial *Snapshot) *Store {
	if initial == nil {
		initial = MustDefault()
	}
	s := &Store{}
	s.current.Store(initial)
	return s
}

// Current returns the active snapshot. Callers should read it once per
// request or batch.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap installs next and returns the previous snapshot. A nil next is
// ignored.
func (s *Store) Swap(next *Snapshot) *Snapshot {
	if next == nil {
		return s.current.Load()
	}
	return s.current.Swap(next)
}

// Reload loads path into a fresh snapshot and swaps it in. On error the
// current snapshot stays active.
func (s *Store) Reload(path string) (*Snapshot, error) {
	next, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	s.Swap(next)
	return next, nil
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
