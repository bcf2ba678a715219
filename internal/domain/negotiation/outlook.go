package negotiation

import (
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// Outlook parameters.
const (
	outlookHorizonMonths = 12
	maxTrendPercent      = 4.0
	minConfidence        = 0.60
	maxConfidence        = 0.90
)

// MarketOutlook is a projected market rate over the outlook horizon.
type MarketOutlook struct {
	HorizonMonths int     `json:"horizon_months"`
	TrendPercent  float64 `json:"trend_percent"`
	ProjectedRate float64 `json:"projected_rate"`
	Confidence    float64 `json:"confidence"`
	Seed          int64   `json:"seed"`
}

// Outlook projects marketRate forward with a trend drawn from a PRNG seeded
// by the generator seed and the payer/contract pair. The same inputs and
// seed always give the same outlook.
func (g *Generator) Outlook(payerName, contractType string, marketRate float64) MarketOutlook {
	key := normalize(payerName) + "|" + normalize(contractType)
	seed := g.seed ^ int64(xxhash.Sum64String(key)) //nolint:gosec // wraparound is fine for a seed
	rng := rand.New(rand.NewSource(seed))           //nolint:gosec // deterministic projection, not security sensitive

	trend := (rng.Float64()*2 - 1) * maxTrendPercent
	confidence := minConfidence + rng.Float64()*(maxConfidence-minConfidence)

	return MarketOutlook{
		HorizonMonths: outlookHorizonMonths,
		TrendPercent:  decimal.NewFromFloat(trend).Round(centsPlaces).InexactFloat64(),
		ProjectedRate: cents(marketRate * (1 + trend/percentToFraction)),
		Confidence:    decimal.NewFromFloat(confidence).Round(centsPlaces).InexactFloat64(),
		Seed:          seed,
	}
}
