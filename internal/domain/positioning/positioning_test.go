package positioning_test

import (
	"testing"

	"github.com/okian/payerlens/internal/domain/benchmark"
	"github.com/okian/payerlens/internal/domain/model"
	"github.com/okian/payerlens/internal/domain/positioning"
	. "github.com/smartystreets/goconvey/convey"
)

func practice(id string, quality, rep, ops, pos, overall float64) model.PracticeScoreComponents {
	return model.PracticeScoreComponents{
		PracticeID:            id,
		PhysicianQuality:      quality,
		ReputationScore:       rep,
		OperationalEfficiency: ops,
		MarketPosition:        pos,
		OverallScore:          overall,
	}
}

func TestAnalyze(t *testing.T) {
	Convey("Given a target and three weaker peers", t, func() {
		target := practice("me", 80, 85, 70, 60, 80)
		peers := []model.PracticeScoreComponents{
			practice("a", 60, 70, 70, 70, 60),
			practice("b", 50, 70, 72, 50, 50),
			practice("c", 40, 70, 68, 30, 50),
		}

		Convey("When analyzing", func() {
			got := positioning.Analyze(target, peers)

			Convey("Then share, rank and strength reflect dominance", func() {
				So(got.PracticeID, ShouldEqual, "me")
				So(got.PeerCount, ShouldEqual, 3)
				So(got.MarketShare, ShouldAlmostEqual, 80.0/240*100, 1e-9)
				So(got.PercentileRank, ShouldEqual, 100)
				So(got.Strength, ShouldEqual, positioning.StrengthDominant)
			})

			Convey("And the quadrant compares against peer medians", func() {
				So(got.Quadrant, ShouldEqual, positioning.QuadrantLeader)
			})

			Convey("And the peer benchmark places the target in the high tier", func() {
				So(got.PeerBenchmark.Tier, ShouldEqual, benchmark.TierHigh)
				So(got.PeerBenchmark.Reference.SampleSize, ShouldEqual, 3)
			})

			Convey("And strengths and weaknesses use the peer mean", func() {
				So(got.Strengths, ShouldResemble, []string{"physician_quality", "reputation", "market_position"})
				So(got.Weaknesses, ShouldBeEmpty)
			})
		})
	})

	Convey("Given ties with every peer", t, func() {
		target := practice("me", 50, 50, 50, 50, 50)
		peers := []model.PracticeScoreComponents{target, target}

		Convey("Then the rank counts half the ties", func() {
			got := positioning.Analyze(target, peers)
			So(got.PercentileRank, ShouldEqual, 50)
			So(got.Strength, ShouldEqual, positioning.StrengthAverage)
		})
	})

	Convey("Given high quality but a weak market position", t, func() {
		target := practice("me", 90, 50, 50, 10, 40)
		peers := []model.PracticeScoreComponents{
			practice("a", 60, 50, 50, 60, 70),
			practice("b", 70, 50, 50, 80, 75),
		}

		Convey("Then the target is a challenger with a weakness in position", func() {
			got := positioning.Analyze(target, peers)
			So(got.Quadrant, ShouldEqual, positioning.QuadrantChallenger)
			So(got.Weaknesses, ShouldContain, "market_position")
			So(got.Strength, ShouldEqual, positioning.StrengthStruggling)
		})
	})

	Convey("Given no peers", t, func() {
		Convey("Then neutral defaults apply", func() {
			got := positioning.Analyze(practice("me", 40, 70, 70, 60, 55), nil)
			So(got.PercentileRank, ShouldEqual, positioning.NeutralPercentile)
			So(got.MarketShare, ShouldEqual, 100)
			So(got.Quadrant, ShouldEqual, positioning.QuadrantIncumbent)
			So(got.Strengths, ShouldBeNil)
		})
	})

	Convey("Given every score is zero", t, func() {
		zero := practice("z", 0, 0, 0, 0, 0)

		Convey("Then the market is split equally", func() {
			got := positioning.Analyze(zero, []model.PracticeScoreComponents{zero, zero, zero})
			So(got.MarketShare, ShouldEqual, 25)
		})
	})
}

func TestStrengthFor(t *testing.T) {
	Convey("Given percentile boundaries", t, func() {
		Convey("Then each floor is inclusive", func() {
			So(positioning.StrengthFor(90), ShouldEqual, positioning.StrengthDominant)
			So(positioning.StrengthFor(89.9), ShouldEqual, positioning.StrengthStrong)
			So(positioning.StrengthFor(70), ShouldEqual, positioning.StrengthStrong)
			So(positioning.StrengthFor(40), ShouldEqual, positioning.StrengthAverage)
			So(positioning.StrengthFor(20), ShouldEqual, positioning.StrengthWeak)
			So(positioning.StrengthFor(19.9), ShouldEqual, positioning.StrengthStruggling)
			So(positioning.StrengthFor(-5), ShouldEqual, positioning.StrengthStruggling)
		})
	})
}
