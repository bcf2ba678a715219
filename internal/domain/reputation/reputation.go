// Package reputation aggregates multi-source rating snapshots into one
// normalized 0-100 score.
package reputation

import (
	"math"
	"sort"
	"strings"

	"github.com/okian/payerlens/internal/domain/model"
)

// NeutralScore is returned when no metrics are available.
const NeutralScore = 75.0

// Scale and bonus constants.
const (
	maxStars          = 5.0
	maxScore          = 100.0
	reviewsPerBonus   = 100.0
	maxReviewFraction = 0.1
	reviewBonusScale  = 10.0
)

// Weights maps a lower-cased source name to its relative weight. Sources
// not listed use Other.
type Weights struct {
	Sources map[string]float64
	Other   float64
}

// DefaultWeights returns google 0.4, healthgrades 0.3, yelp 0.2 and 0.1 for
// any other source.
func DefaultWeights() Weights {
	return Weights{
		Sources: map[string]float64{"google": 0.4, "healthgrades": 0.3, "yelp": 0.2},
		Other:   0.1,
	}
}

// For returns the configured weight for source.
func (w Weights) For(source string) float64 {
	if v, ok := w.Sources[normalizeSource(source)]; ok {
		return v
	}
	return w.Other
}

// SourceScore is the contribution of one deduplicated source.
type SourceScore struct {
	Source      string  `json:"source"`
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"` // normalized over present sources
	ReviewCount int     `json:"review_count"`
}

// Breakdown is a reputation score with its per-source detail.
type Breakdown struct {
	Score   float64       `json:"score"`
	Neutral bool          `json:"neutral"`
	Sources []SourceScore `json:"sources,omitempty"`
}

// Score returns the weighted reputation score for metrics. An empty input
// yields NeutralScore.
func Score(metrics []model.ReputationMetric, w Weights) float64 {
	return Explain(metrics, w).Score
}

// Explain computes the reputation score and reports each source's share.
// Only the most recent metric per source is used. Weights are renormalized
// over the sources present; if every present weight is zero the sources are
// weighted equally.
func Explain(metrics []model.ReputationMetric, w Weights) Breakdown {
	latest := latestBySource(metrics)
	if len(latest) == 0 {
		return Breakdown{Score: NeutralScore, Neutral: true}
	}

	sources := make([]string, 0, len(latest))
	for s := range latest {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	var total float64
	for _, s := range sources {
		total += math.Max(0, w.For(s))
	}

	out := Breakdown{Sources: make([]SourceScore, 0, len(sources))}
	var weighted float64
	for _, s := range sources {
		m := latest[s]
		weight := 1 / float64(len(sources))
		if total > 0 {
			weight = math.Max(0, w.For(s)) / total
		}
		score := metricScore(m)
		weighted += score * weight
		out.Sources = append(out.Sources, SourceScore{
			Source:      s,
			Score:       score,
			Weight:      weight,
			ReviewCount: m.ReviewCount,
		})
	}
	out.Score = clamp(weighted)
	return out
}

// metricScore normalizes a 0-5 rating to 0-100 and adds a review volume
// bonus of min(reviews/100, 0.1)*10.
func metricScore(m model.ReputationMetric) float64 {
	stars := math.Max(0, math.Min(maxStars, m.Value))
	reviews := math.Max(0, float64(m.ReviewCount))
	bonus := math.Min(reviews/reviewsPerBonus, maxReviewFraction) * reviewBonusScale
	return clamp(stars/maxStars*maxScore + bonus)
}

func latestBySource(metrics []model.ReputationMetric) map[string]model.ReputationMetric {
	latest := make(map[string]model.ReputationMetric, len(metrics))
	for _, m := range metrics {
		s := normalizeSource(m.Source)
		cur, ok := latest[s]
		if !ok || m.CapturedAt.After(cur.CapturedAt) {
			latest[s] = m
		}
	}
	return latest
}

func normalizeSource(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(maxScore, v))
}
