package negotiation

import (
	"math"

	"github.com/okian/payerlens/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Success probability parameters.
const (
	baseProbability   = 50.0
	minProbability    = 10.0
	maxProbability    = 95.0
	ratingWeight      = 20.0
	volumeWeight      = 15.0
	volumeSaturation  = 1000.0
	bestCaseFactor    = 1.05
	worstCaseFactor   = 1.02
	mostLikelyCapture = 0.7
	centsPlaces       = 2
	percentToFraction = 100.0
)

// gapBand adjusts probability for gap sizes strictly below Limit.
type gapBand struct {
	Limit      float64
	Adjustment float64
}

// gapBands are ordered and disjoint; the last band catches every gap of
// 15% or more. Smaller gaps are easier to close.
var gapBands = []gapBand{ //nolint:gochecknoglobals // read-only decision table
	{Limit: 0.05, Adjustment: 30},
	{Limit: 0.10, Adjustment: 20},
	{Limit: 0.15, Adjustment: 10},
	{Limit: math.Inf(1), Adjustment: -10},
}

// GapAdjustment returns the probability adjustment for a gap given as a
// fraction (0.13 for 13%).
func GapAdjustment(gapSize float64) float64 {
	for _, b := range gapBands {
		if gapSize < b.Limit {
			return b.Adjustment
		}
	}
	return gapBands[len(gapBands)-1].Adjustment
}

// SuccessProbability estimates the chance of a rate improvement:
// 50 + gap adjustment + rating/10*20 + min(volume/1000, 1)*15, clamped to
// [10, 95] and rounded to a whole percent.
func SuccessProbability(gapPercentage float64, p model.PracticeProfile) float64 {
	gapSize := math.Abs(gapPercentage) / percentToFraction
	v := baseProbability +
		GapAdjustment(gapSize) +
		p.CompetitiveRating/maxCompetitiveRating*ratingWeight +
		math.Min(p.PatientVolume/volumeSaturation, 1)*volumeWeight
	return math.Round(math.Max(minProbability, math.Min(maxProbability, v)))
}

// Outcome projects the negotiated rate range:
// best = market*1.05, worst = current*1.02,
// mostLikely = current + (market - current)*0.7.
// When the market rate is at or below the current rate the raw formulas
// invert, so best is raised to at least worst and mostLikely is clamped
// between them. Values are rounded to cents.
func Outcome(current, market float64) ExpectedOutcome {
	worst := current * worstCaseFactor
	best := math.Max(market*bestCaseFactor, worst)
	likely := math.Max(worst, math.Min(best, current+(market-current)*mostLikelyCapture))
	return ExpectedOutcome{
		BestCase:   cents(best),
		MostLikely: cents(likely),
		WorstCase:  cents(worst),
	}
}

// cents rounds v to two decimals. Non-finite values are returned unchanged.
func cents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(centsPlaces).InexactFloat64()
}
