package capability

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWeights is returned when composite weights are malformed.
var ErrInvalidWeights = errors.New("invalid composite weights")

const weightTolerance = 1e-3

// Weights is the practice composite weight set.
type Weights struct {
	PhysicianQuality      float64 `json:"physician_quality" yaml:"physician_quality"`
	Reputation            float64 `json:"reputation" yaml:"reputation"`
	OperationalEfficiency float64 `json:"operational_efficiency" yaml:"operational_efficiency"`
	MarketPosition        float64 `json:"market_position" yaml:"market_position"`
}

// DefaultWeights returns the 0.4/0.3/0.2/0.1 split.
func DefaultWeights() Weights {
	return Weights{
		PhysicianQuality:      0.4,
		Reputation:            0.3,
		OperationalEfficiency: 0.2,
		MarketPosition:        0.1,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.PhysicianQuality + w.Reputation + w.OperationalEfficiency + w.MarketPosition
}

// Validate checks that every weight is finite and non-negative and that they sum to 1.0.
func (w Weights) Validate() error {
	for _, v := range []float64{w.PhysicianQuality, w.Reputation, w.OperationalEfficiency, w.MarketPosition} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: weight %f must be finite and >= 0", ErrInvalidWeights, v)
		}
	}
	if math.Abs(w.Sum()-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, must sum to 1.0", ErrInvalidWeights, w.Sum())
	}
	return nil
}
