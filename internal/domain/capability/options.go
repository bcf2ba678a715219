package capability

import (
	"time"

	"github.com/okian/payerlens/internal/domain/benchmark"
	"github.com/okian/payerlens/internal/domain/model"
	"github.com/okian/payerlens/internal/domain/reputation"
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithClock sets the time source used for experience calculations.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTrainingPoints replaces the per-kind training point table.
func WithTrainingPoints(points map[model.TrainingKind]float64) Option {
	return func(s *Scorer) {
		if len(points) == 0 {
			return
		}
		s.trainingPoints = make(map[model.TrainingKind]float64, len(points))
		for k, v := range points {
			s.trainingPoints[k] = v
		}
	}
}

// WithDefaultServiceCount sets the estimate used when a physician's
// service count is unknown.
func WithDefaultServiceCount(n int) Option {
	return func(s *Scorer) {
		if n >= 0 {
			s.defaultServiceCount = n
		}
	}
}

// WithWeights sets the practice composite weights. Weights that do not
// sum to 1.0 are ignored.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		if w.Validate() == nil {
			s.weights = w
		}
	}
}

// WithReputationWeights sets the per-source reputation weights.
func WithReputationWeights(w reputation.Weights) Option {
	return func(s *Scorer) {
		s.reputationWeights = w
	}
}

// WithOverheadReference sets the overhead-ratio distribution used for
// operational efficiency.
func WithOverheadReference(ref benchmark.Reference) Option {
	return func(s *Scorer) {
		s.overheadReference = ref
	}
}
