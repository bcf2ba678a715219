// Package benchmark compares values against reference distributions.
//
// A Reference summarizes a distribution (mean, median, quartiles) for a
// rate or ratio category in a region. Comparisons are pure functions of
// the value and the reference; lookup tables are immutable once built.
package benchmark

import (
	"math"
	"sort"
)

// Reference is a reference distribution for one (category, region) key.
type Reference struct {
	Average      float64 `json:"average" yaml:"average"`
	Median       float64 `json:"median" yaml:"median"`
	Percentile25 float64 `json:"percentile_25" yaml:"percentile_25"`
	Percentile75 float64 `json:"percentile_75" yaml:"percentile_75"`
	SampleSize   int     `json:"sample_size" yaml:"sample_size"`
}

// Tier is the quartile bucket a value falls into.
type Tier string

// Tiers in ascending order.
const (
	TierLow          Tier = "low"
	TierBelowAverage Tier = "below-average"
	TierAboveAverage Tier = "above-average"
	TierHigh         Tier = "high"
)

// Classify places value into exactly one tier. Upper bounds are inclusive:
// value == p25 is low, value == median is below-average and value == p75
// is above-average.
func Classify(value float64, ref Reference) Tier {
	switch {
	case value <= ref.Percentile25:
		return TierLow
	case value <= ref.Median:
		return TierBelowAverage
	case value <= ref.Percentile75:
		return TierAboveAverage
	default:
		return TierHigh
	}
}

// FromSamples builds a reference from raw samples using linear
// interpolation between closest ranks. An empty sample yields the zero
// Reference.
func FromSamples(values []float64) Reference {
	if len(values) == 0 {
		return Reference{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return Reference{
		Average:      sum / float64(len(sorted)),
		Median:       quantile(sorted, 0.5),
		Percentile25: quantile(sorted, 0.25),
		Percentile75: quantile(sorted, 0.75),
		SampleSize:   len(sorted),
	}
}

// quantile expects sorted input.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
