// Package positioning estimates a practice's competitive position against
// a peer set from their composite scores.
package positioning

import (
	"math"

	"github.com/okian/payerlens/internal/domain/benchmark"
	"github.com/okian/payerlens/internal/domain/model"
)

// Strength classifies competitive strength by peer percentile rank.
type Strength string

// Strength levels, strongest first.
const (
	StrengthDominant   Strength = "dominant"
	StrengthStrong     Strength = "strong"
	StrengthAverage    Strength = "average"
	StrengthWeak       Strength = "weak"
	StrengthStruggling Strength = "struggling"
)

// Quadrant places a practice on quality versus market position.
type Quadrant string

// Strategic quadrants.
const (
	QuadrantLeader     Quadrant = "leader"     // high quality, strong position
	QuadrantChallenger Quadrant = "challenger" // high quality, weak position
	QuadrantIncumbent  Quadrant = "incumbent"  // lower quality, strong position
	QuadrantFollower   Quadrant = "follower"   // lower quality, weak position
)

// Thresholds and defaults.
const (
	// NeutralPercentile is the rank reported when there are no peers.
	NeutralPercentile = 50.0
	// NeutralAxis is the quadrant split used when there are no peers.
	NeutralAxis = 50.0
	// DimensionMargin is how far a sub-score must sit from the peer mean to
	// be reported as a strength or weakness.
	DimensionMargin = 5.0
)

var strengthFloors = []struct { //nolint:gochecknoglobals // read-only decision table
	min      float64
	strength Strength
}{
	{90, StrengthDominant},
	{70, StrengthStrong},
	{40, StrengthAverage},
	{20, StrengthWeak},
	{math.Inf(-1), StrengthStruggling},
}

// CompetitiveAnalysis is the outcome of comparing a practice to its peers.
type CompetitiveAnalysis struct {
	PracticeID     string                   `json:"practice_id,omitempty"`
	PeerCount      int                      `json:"peer_count"`
	MarketShare    float64                  `json:"market_share"`
	PercentileRank float64                  `json:"percentile_rank"`
	Strength       Strength                 `json:"strength"`
	Quadrant       Quadrant                 `json:"quadrant"`
	PeerBenchmark  benchmark.RateComparison `json:"peer_benchmark"`
	Strengths      []string                 `json:"strengths,omitempty"`
	Weaknesses     []string                 `json:"weaknesses,omitempty"`
}

// Analyze compares target to peers.
//
// MarketShare is the target's share of the summed overall scores (equal
// shares when every score is zero). PercentileRank counts peers strictly
// below the target plus half the ties. With no peers the rank is neutral
// and the quadrant splits at 50 on both axes.
func Analyze(target model.PracticeScoreComponents, peers []model.PracticeScoreComponents) CompetitiveAnalysis {
	out := CompetitiveAnalysis{
		PracticeID:     target.PracticeID,
		PeerCount:      len(peers),
		MarketShare:    marketShare(target, peers),
		PercentileRank: percentileRank(target.OverallScore, peers),
	}
	out.Strength = StrengthFor(out.PercentileRank)

	overall := make([]float64, len(peers))
	quality := make([]float64, len(peers))
	position := make([]float64, len(peers))
	for i, p := range peers {
		overall[i] = p.OverallScore
		quality[i] = p.PhysicianQuality
		position[i] = p.MarketPosition
	}

	qualitySplit, positionSplit := NeutralAxis, NeutralAxis
	if len(peers) > 0 {
		qualitySplit = benchmark.FromSamples(quality).Median
		positionSplit = benchmark.FromSamples(position).Median
	}
	out.Quadrant = QuadrantFor(target.PhysicianQuality >= qualitySplit, target.MarketPosition >= positionSplit)

	out.PeerBenchmark = benchmark.CompareRate(target.OverallScore, benchmark.FromSamples(overall))
	if len(peers) > 0 {
		out.Strengths, out.Weaknesses = dimensions(target, peers)
	}
	return out
}

// StrengthFor maps a percentile rank to a strength level.
func StrengthFor(percentile float64) Strength {
	for _, f := range strengthFloors {
		if percentile >= f.min {
			return f.strength
		}
	}
	return StrengthStruggling
}

// QuadrantFor returns the quadrant for the two axis outcomes.
func QuadrantFor(highQuality, strongPosition bool) Quadrant {
	switch {
	case highQuality && strongPosition:
		return QuadrantLeader
	case highQuality:
		return QuadrantChallenger
	case strongPosition:
		return QuadrantIncumbent
	default:
		return QuadrantFollower
	}
}

func marketShare(target model.PracticeScoreComponents, peers []model.PracticeScoreComponents) float64 {
	total := math.Max(0, target.OverallScore)
	for _, p := range peers {
		total += math.Max(0, p.OverallScore)
	}
	if total == 0 {
		return 100 / float64(len(peers)+1)
	}
	return math.Max(0, target.OverallScore) / total * 100
}

func percentileRank(score float64, peers []model.PracticeScoreComponents) float64 {
	if len(peers) == 0 {
		return NeutralPercentile
	}
	var below, ties float64
	for _, p := range peers {
		switch {
		case p.OverallScore < score:
			below++
		case p.OverallScore == score:
			ties++
		}
	}
	return (below + ties/2) / float64(len(peers)) * 100
}

// dimensions reports sub-scores at least DimensionMargin above or below the
// peer mean, in a fixed dimension order.
func dimensions(target model.PracticeScoreComponents, peers []model.PracticeScoreComponents) (strengths, weaknesses []string) {
	type dim struct {
		name string
		get  func(model.PracticeScoreComponents) float64
	}
	dims := []dim{
		{"physician_quality", func(c model.PracticeScoreComponents) float64 { return c.PhysicianQuality }},
		{"reputation", func(c model.PracticeScoreComponents) float64 { return c.ReputationScore }},
		{"operational_efficiency", func(c model.PracticeScoreComponents) float64 { return c.OperationalEfficiency }},
		{"market_position", func(c model.PracticeScoreComponents) float64 { return c.MarketPosition }},
	}
	for _, d := range dims {
		var sum float64
		for _, p := range peers {
			sum += d.get(p)
		}
		diff := d.get(target) - sum/float64(len(peers))
		switch {
		case diff >= DimensionMargin:
			strengths = append(strengths, d.name)
		case diff <= -DimensionMargin:
			weaknesses = append(weaknesses, d.name)
		}
	}
	return strengths, weaknesses
}
