// Package refdata holds the reference and configuration tables the engine
// reads: composite weights, source weights, specialty multipliers,
// benchmark rows, market rates and the negotiation catalogs.
//
// Tables are loaded once, validated, compiled into a Snapshot and then
// treated as immutable. Refreshing builds a new Snapshot and swaps it in;
// a Snapshot is never modified in place.
package refdata

import (
	"fmt"
	"math"

	"github.com/okian/payerlens/internal/domain/benchmark"
	"github.com/okian/payerlens/internal/domain/capability"
	"github.com/okian/payerlens/internal/domain/model"
	"github.com/okian/payerlens/internal/domain/negotiation"
	"github.com/okian/payerlens/internal/domain/reputation"
)

// Tables is the serializable form of the reference data.
type Tables struct {
	Version              string                         `yaml:"version"`
	TrainingPoints       map[model.TrainingKind]float64 `yaml:"training_points"`
	CompositeWeights     capability.Weights             `yaml:"composite_weights"`
	ReputationWeights    map[string]float64             `yaml:"reputation_weights"`
	OtherSourceWeight    float64                        `yaml:"other_source_weight"`
	SpecialtyMultipliers map[string]float64             `yaml:"specialty_multipliers"`
	Benchmarks           []benchmark.Row                `yaml:"benchmarks"`
	DefaultBenchmark     benchmark.Reference            `yaml:"default_benchmark"`
	OverheadBenchmark    benchmark.Reference            `yaml:"overhead_benchmark"`
	MarketRates          map[string]float64             `yaml:"market_rates"`
	Strategies           negotiation.Catalog            `yaml:"strategies"`
	Risks                []negotiation.Risk             `yaml:"risks"`
}

// Default returns the built-in tables.
func Default() Tables {
	rep := reputation.DefaultWeights()
	return Tables{
		Version:           "builtin",
		TrainingPoints:    capability.DefaultTrainingPoints(),
		CompositeWeights:  capability.DefaultWeights(),
		ReputationWeights: rep.Sources,
		OtherSourceWeight: rep.Other,
		SpecialtyMultipliers: map[string]float64{
			"retina":                      1.30,
			"oculoplastics":               1.25,
			"cornea":                      1.20,
			"neuro-ophthalmology":         1.20,
			"glaucoma":                    1.15,
			"pediatric ophthalmology":     1.10,
			"comprehensive ophthalmology": 1.00,
			"optometry":                   0.85,
		},
		Benchmarks: []benchmark.Row{
			{Category: "Vision Care", Reference: benchmark.Reference{Average: 142.00, Median: 140.00, Percentile25: 128.00, Percentile75: 155.00, SampleSize: 120}},
			{Category: "Medical Services", Reference: benchmark.Reference{Average: 185.00, Median: 180.00, Percentile25: 160.00, Percentile75: 210.00, SampleSize: 310}},
			{Category: "Routine Eye Exam", Reference: benchmark.Reference{Average: 115.00, Median: 112.00, Percentile25: 98.00, Percentile75: 130.00, SampleSize: 240}},
			{Category: "Diagnostic Testing", Reference: benchmark.Reference{Average: 95.00, Median: 92.00, Percentile25: 80.00, Percentile75: 108.00, SampleSize: 180}},
			{Category: "Surgical Services", Reference: benchmark.Reference{Average: 1250.00, Median: 1200.00, Percentile25: 1050.00, Percentile75: 1420.00, SampleSize: 95}},
		},
		DefaultBenchmark:  benchmark.Reference{Average: 100, Median: 100, Percentile25: 85, Percentile75: 115},
		OverheadBenchmark: capability.DefaultOverheadReference(),
		MarketRates: map[string]float64{
			"vision care":        142.00,
			"medical services":   185.00,
			"routine eye exam":   115.00,
			"diagnostic testing": 95.00,
			"surgical services":  1250.00,
		},
		Strategies: negotiation.DefaultCatalog(),
		Risks:      negotiation.DefaultRisks(),
	}
}

// Validate checks weight sums, signs, finiteness and quartile ordering.
func (t Tables) Validate() error {
	if err := t.CompositeWeights.Validate(); err != nil {
		return fmt.Errorf("%w: composite_weights: %w", ErrInvalidTables, err)
	}
	for k, v := range t.TrainingPoints {
		if v < 0 || !finite(v) {
			return fmt.Errorf("%w: training_points[%s] = %v", ErrInvalidTables, k, v)
		}
	}
	if t.OtherSourceWeight < 0 || !finite(t.OtherSourceWeight) {
		return fmt.Errorf("%w: other_source_weight = %v", ErrInvalidTables, t.OtherSourceWeight)
	}
	for k, v := range t.ReputationWeights {
		if v < 0 || !finite(v) {
			return fmt.Errorf("%w: reputation_weights[%s] = %v", ErrInvalidTables, k, v)
		}
	}
	for k, v := range t.SpecialtyMultipliers {
		if v <= 0 || !finite(v) {
			return fmt.Errorf("%w: specialty_multipliers[%s] = %v", ErrInvalidTables, k, v)
		}
	}
	for k, v := range t.MarketRates {
		if v < 0 || !finite(v) {
			return fmt.Errorf("%w: market_rates[%s] = %v", ErrInvalidTables, k, v)
		}
	}
	for i, r := range t.Benchmarks {
		if r.Category == "" {
			return fmt.Errorf("%w: benchmarks[%d]: empty category", ErrInvalidTables, i)
		}
		if err := validReference(r.Reference); err != nil {
			return fmt.Errorf("%w: benchmarks[%d] %s: %w", ErrInvalidTables, i, r.Category, err)
		}
	}
	if err := validReference(t.DefaultBenchmark); err != nil {
		return fmt.Errorf("%w: default_benchmark: %w", ErrInvalidTables, err)
	}
	if err := validReference(t.OverheadBenchmark); err != nil {
		return fmt.Errorf("%w: overhead_benchmark: %w", ErrInvalidTables, err)
	}
	return nil
}

func validReference(r benchmark.Reference) error {
	for _, v := range []float64{r.Average, r.Median, r.Percentile25, r.Percentile75} {
		if !finite(v) {
			return fmt.Errorf("reference values must be finite, got %v", v)
		}
	}
	if r.Average < 0 || r.SampleSize < 0 {
		return fmt.Errorf("average and sample_size must be >= 0")
	}
	if r.Percentile25 > r.Median || r.Median > r.Percentile75 {
		return fmt.Errorf("quartiles out of order: p25=%v median=%v p75=%v", r.Percentile25, r.Median, r.Percentile75)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Reputation returns the source weights in the form the scorer uses.
func (t Tables) Reputation() reputation.Weights {
	w := reputation.Weights{Sources: make(map[string]float64, len(t.ReputationWeights)), Other: t.OtherSourceWeight}
	for k, v := range t.ReputationWeights {
		w.Sources[normalizeKey(k)] = v
	}
	return w
}
