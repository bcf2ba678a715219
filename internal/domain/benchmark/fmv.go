package benchmark

import (
	"math"

	"github.com/shopspring/decimal"
)

// Volume adjustment steps for fair market value.
const (
	HighVolumeThreshold = 1000
	LowVolumeThreshold  = 100
	highVolumeDiscount  = 0.95
	lowVolumePremium    = 1.05
	neutralMultiplier   = 1.0
	centsPlaces         = 2
)

// Pricer computes fair market values from a reference table and a
// specialty multiplier table.
type Pricer struct {
	references  *Table
	multipliers map[string]float64
}

// NewPricer builds a Pricer. Multiplier keys are matched case-insensitively.
func NewPricer(references *Table, multipliers map[string]float64) *Pricer {
	m := make(map[string]float64, len(multipliers))
	for k, v := range multipliers {
		if v > 0 {
			m[normalize(k)] = v
		}
	}
	return &Pricer{references: references, multipliers: m}
}

// SpecialtyMultiplier returns the multiplier for specialty, or 1.0 when
// the specialty is unknown.
func (p *Pricer) SpecialtyMultiplier(specialty string) float64 {
	if v, ok := p.multipliers[normalize(specialty)]; ok {
		return v
	}
	return neutralMultiplier
}

// VolumeAdjustment is a three-step function: more than 1000 units earns a
// 5% discount, fewer than 100 a 5% premium, anything else is neutral.
func VolumeAdjustment(volume int) float64 {
	switch {
	case volume > HighVolumeThreshold:
		return highVolumeDiscount
	case volume < LowVolumeThreshold:
		return lowVolumePremium
	default:
		return neutralMultiplier
	}
}

// FairMarketValue returns median * specialty multiplier * volume
// adjustment, rounded to cents. Unknown categories use the default row and
// unknown specialties a neutral multiplier; it never fails.
func (p *Pricer) FairMarketValue(category, region, specialty string, volume int) float64 {
	ref, _ := p.references.Lookup(category, region)
	v := ref.Median * p.SpecialtyMultiplier(specialty) * VolumeAdjustment(volume)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(centsPlaces).InexactFloat64()
}
