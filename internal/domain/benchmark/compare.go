package benchmark

import "math"

// Band is a half-open variance range [Lower, Upper) with its recommendation.
type Band struct {
	Name           string
	Lower          float64
	Upper          float64
	Recommendation string
}

// Contains reports whether variance falls inside the band.
func (b Band) Contains(variance float64) bool {
	return variance >= b.Lower && variance < b.Upper
}

// Bands partitions the real line by variance percent. Lower bounds are
// inclusive, so a variance of exactly -15 belongs to "below-market".
var Bands = []Band{ //nolint:gochecknoglobals // read-only decision table
	{
		Name:           "far-below-market",
		Lower:          math.Inf(-1),
		Upper:          -15,
		Recommendation: "Rate is significantly below market; prioritize renegotiation and lead with benchmark evidence.",
	},
	{
		Name:           "below-market",
		Lower:          -15,
		Upper:          -5,
		Recommendation: "Rate is below market; request an adjustment at the next renewal.",
	},
	{
		Name:           "at-market",
		Lower:          -5,
		Upper:          5,
		Recommendation: "Rate is in line with market; pursue value-based incentives rather than a base increase.",
	},
	{
		Name:           "above-market",
		Lower:          5,
		Upper:          15,
		Recommendation: "Rate is above market; protect current terms and avoid reopening the fee schedule.",
	},
	{
		Name:           "far-above-market",
		Lower:          15,
		Upper:          math.Inf(1),
		Recommendation: "Rate is well above market; expect payer pushback and document quality outcomes.",
	},
}

// atMarket is the band used when variance is undefined.
const atMarket = 2

// BandFor returns the band containing variance. NaN maps to the at-market band.
func BandFor(variance float64) Band {
	for _, b := range Bands {
		if b.Contains(variance) {
			return b
		}
	}
	return Bands[atMarket]
}

// RateComparison is the outcome of comparing a value to a reference.
type RateComparison struct {
	Value           float64   `json:"value"`
	Reference       Reference `json:"reference"`
	VariancePercent float64   `json:"variance_percent"`
	Tier            Tier      `json:"tier"`
	Band            string    `json:"band"`
	Recommendation  string    `json:"recommendation"`
}

// CompareRate computes the percent variance of value from the reference
// average, its quartile tier, and the recommendation for its variance band.
// A zero average yields zero variance.
func CompareRate(value float64, ref Reference) RateComparison {
	variance := 0.0
	if ref.Average != 0 {
		variance = (value - ref.Average) / ref.Average * 100
	}
	band := BandFor(variance)
	return RateComparison{
		Value:           value,
		Reference:       ref,
		VariancePercent: variance,
		Tier:            Classify(value, ref),
		Band:            band.Name,
		Recommendation:  band.Recommendation,
	}
}
