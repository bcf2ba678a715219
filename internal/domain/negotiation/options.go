package negotiation

import (
	"strings"
	"time"

	"github.com/okian/payerlens/internal/domain/benchmark"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithClock sets the time source for timelines, IDs and renewal windows.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithReferences sets the benchmark table used for lookups.
func WithReferences(t *benchmark.Table) Option {
	return func(g *Generator) {
		if t != nil {
			g.references = t
		}
	}
}

// WithMarketRates sets the contract type to market rate table. Keys are
// matched case-insensitively.
func WithMarketRates(rates map[string]float64) Option {
	return func(g *Generator) {
		g.marketRates = make(map[string]float64, len(rates))
		for k, v := range rates {
			if v >= 0 {
				g.marketRates[normalize(k)] = v
			}
		}
	}
}

// WithCatalog replaces the strategy catalog.
func WithCatalog(c Catalog) Option {
	return func(g *Generator) {
		g.catalog = c
	}
}

// WithRisks replaces the risk register.
func WithRisks(risks []Risk) Option {
	return func(g *Generator) {
		if len(risks) > 0 {
			g.risks = append([]Risk(nil), risks...)
		}
	}
}

// WithSeed sets the base seed for market outlook projections.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
