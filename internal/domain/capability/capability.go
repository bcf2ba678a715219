// Package capability turns training records and practice signals into
// bounded 0-100 quality scores.
//
// Missing optional inputs degrade to the neutral defaults declared below;
// nothing in this package returns an error for absent data.
package capability

import (
	"math"
	"time"

	"github.com/okian/payerlens/internal/domain/benchmark"
	"github.com/okian/payerlens/internal/domain/model"
	"github.com/okian/payerlens/internal/domain/reputation"
)

// Neutral defaults for absent inputs.
const (
	// NeutralPhysicianQuality is used for practices with no physicians.
	NeutralPhysicianQuality = 50.0
	// NeutralOperationalEfficiency is used when no overhead ratio is known.
	NeutralOperationalEfficiency = 70.0
	// NeutralMarketPosition is used when no market position is supplied.
	NeutralMarketPosition = 50.0
	// DefaultServiceCount estimates distinct services for a physician whose
	// service count is unknown.
	DefaultServiceCount = 4
)

// Physician score constants.
const (
	maxScore          = 100.0
	trainingFactor    = 0.6
	pointsPerService  = 5.0
	maxServicePoints  = 40.0
	subspecialtyBonus = 10.0
	experiencePerYear = 0.5
	maxExperience     = 10.0
	boardBonus        = 5.0
)

// DefaultTrainingPoints returns the point value for each training kind.
func DefaultTrainingPoints() map[model.TrainingKind]float64 {
	return map[model.TrainingKind]float64{
		model.TrainingFellowship:    40,
		model.TrainingResidency:     25,
		model.TrainingMedSchool:     20,
		model.TrainingCertification: 15,
		model.TrainingContinuingEd:  5,
	}
}

// DefaultOverheadReference is the overhead-ratio distribution that
// operational efficiency is tiered against.
func DefaultOverheadReference() benchmark.Reference {
	return benchmark.Reference{
		Average:      0.60,
		Median:       0.59,
		Percentile25: 0.52,
		Percentile75: 0.66,
		SampleSize:   500,
	}
}

// operationalScores maps an overhead-ratio tier to efficiency. Lower
// overhead is better.
var operationalScores = map[benchmark.Tier]float64{ //nolint:gochecknoglobals // read-only lookup
	benchmark.TierLow:          90,
	benchmark.TierBelowAverage: 75,
	benchmark.TierAboveAverage: 60,
	benchmark.TierHigh:         45,
}

// TrainingScore sums points for each record kind and caps the result at
// 100. Unknown kinds contribute nothing, so adding a record never lowers
// the score.
func TrainingScore(records []model.TrainingRecord, points map[model.TrainingKind]float64) float64 {
	var total float64
	for _, r := range records {
		total += math.Max(0, points[r.Kind])
	}
	return clamp(total)
}

// PhysicianScore is a physician's composite with its components.
type PhysicianScore struct {
	PhysicianID           string  `json:"physician_id"`
	Training              float64 `json:"training"`
	ServicePoints         float64 `json:"service_points"`
	ServiceCount          int     `json:"service_count"`
	ServiceCountEstimated bool    `json:"service_count_estimated"`
	SubspecialtyBonus     float64 `json:"subspecialty_bonus"`
	ExperienceBonus       float64 `json:"experience_bonus"`
	BoardBonus            float64 `json:"board_bonus"`
	Score                 float64 `json:"score"`
}

// Scorer computes physician and practice scores from its tables.
type Scorer struct {
	now                 func() time.Time
	trainingPoints      map[model.TrainingKind]float64
	defaultServiceCount int
	weights             Weights
	reputationWeights   reputation.Weights
	overheadReference   benchmark.Reference
}

// NewScorer creates a Scorer with default tables, overridden by opts.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		now:                 time.Now,
		trainingPoints:      DefaultTrainingPoints(),
		defaultServiceCount: DefaultServiceCount,
		weights:             DefaultWeights(),
		reputationWeights:   reputation.DefaultWeights(),
		overheadReference:   DefaultOverheadReference(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TrainingScore scores records with the scorer's point table.
func (s *Scorer) TrainingScore(records []model.TrainingRecord) float64 {
	return TrainingScore(records, s.trainingPoints)
}

// ScorePhysician computes
// trainingScore*0.6 + min(services*5, 40) + subspecialty + experience + board,
// clamped to 100.
func (s *Scorer) ScorePhysician(p model.Physician) PhysicianScore {
	out := PhysicianScore{
		PhysicianID:  p.ID,
		Training:     s.TrainingScore(p.TrainingRecords),
		ServiceCount: s.defaultServiceCount,
	}
	if p.ServiceCount != nil && *p.ServiceCount >= 0 {
		out.ServiceCount = *p.ServiceCount
	} else {
		out.ServiceCountEstimated = true
	}
	out.ServicePoints = math.Min(float64(out.ServiceCount)*pointsPerService, maxServicePoints)
	if p.HasSubspecialty() {
		out.SubspecialtyBonus = subspecialtyBonus
	}
	out.ExperienceBonus = math.Min(float64(p.YearsExperience(s.now()))*experiencePerYear, maxExperience)
	if p.BoardCertified {
		out.BoardBonus = boardBonus
	}

	out.Score = clamp(out.Training*trainingFactor + out.ServicePoints +
		out.SubspecialtyBonus + out.ExperienceBonus + out.BoardBonus)
	return out
}

// ScoreReputation scores metrics with the scorer's source weights.
func (s *Scorer) ScoreReputation(metrics []model.ReputationMetric) float64 {
	return reputation.Score(metrics, s.reputationWeights)
}

// OperationalEfficiency tiers an overhead ratio against the overhead
// reference. A nil ratio is neutral.
func (s *Scorer) OperationalEfficiency(overheadRatio *float64) float64 {
	if overheadRatio == nil || math.IsNaN(*overheadRatio) {
		return NeutralOperationalEfficiency
	}
	return operationalScores[benchmark.Classify(*overheadRatio, s.overheadReference)]
}

// ScorePractice averages physician scores and blends the four clamped
// sub-scores with the composite weights.
func (s *Scorer) ScorePractice(p model.Practice) model.PracticeScoreComponents {
	quality := NeutralPhysicianQuality
	if len(p.Physicians) > 0 {
		var sum float64
		for _, ph := range p.Physicians {
			sum += s.ScorePhysician(ph).Score
		}
		quality = sum / float64(len(p.Physicians))
	}

	position := NeutralMarketPosition
	if p.MarketPosition != nil && !math.IsNaN(*p.MarketPosition) {
		position = *p.MarketPosition
	}

	out := model.PracticeScoreComponents{
		PracticeID:            p.ID,
		PhysicianQuality:      clamp(quality),
		ReputationScore:       clamp(s.ScoreReputation(p.ReputationMetrics)),
		OperationalEfficiency: clamp(s.OperationalEfficiency(p.OverheadRatio)),
		MarketPosition:        clamp(position),
	}
	out.OverallScore = clamp(Composite(out, s.weights))
	return out
}

// Composite returns the weighted sum of the four sub-scores.
func Composite(c model.PracticeScoreComponents, w Weights) float64 {
	return c.PhysicianQuality*w.PhysicianQuality +
		c.ReputationScore*w.Reputation +
		c.OperationalEfficiency*w.OperationalEfficiency +
		c.MarketPosition*w.MarketPosition
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(maxScore, v))
}
