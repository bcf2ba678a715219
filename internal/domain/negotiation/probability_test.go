package negotiation_test

import (
	"math"
	"testing"

	"github.com/okian/payerlens/internal/domain/model"
	"github.com/okian/payerlens/internal/domain/negotiation"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSuccessProbability(t *testing.T) {
	Convey("Given gap bands", t, func() {
		Convey("Then each band's upper limit is exclusive", func() {
			So(negotiation.GapAdjustment(0.0499), ShouldEqual, 30)
			So(negotiation.GapAdjustment(0.05), ShouldEqual, 20)
			So(negotiation.GapAdjustment(0.10), ShouldEqual, 10)
			So(negotiation.GapAdjustment(0.15), ShouldEqual, -10)
		})
	})

	Convey("Given extreme profiles", t, func() {
		Convey("Then the estimate is clamped to [10, 95]", func() {
			strong := model.PracticeProfile{CompetitiveRating: 10, PatientVolume: 5000}
			So(negotiation.SuccessProbability(1, strong), ShouldEqual, 95)
			So(negotiation.SuccessProbability(-60, model.PracticeProfile{}), ShouldEqual, 40)
		})
	})
}

func TestOutcome(t *testing.T) {
	Convey("Given a market rate below the current rate", t, func() {
		o := negotiation.Outcome(150, 120)

		Convey("Then the range collapses to the worst case instead of inverting", func() {
			So(o.WorstCase, ShouldEqual, 153)
			So(o.MostLikely, ShouldEqual, 153)
			So(o.BestCase, ShouldEqual, 153)
		})
	})

	Convey("Given a market rate only slightly above the current rate", t, func() {
		o := negotiation.Outcome(100, 101)

		Convey("Then most likely is lifted to the worst case", func() {
			So(o.WorstCase, ShouldEqual, 102)
			So(o.MostLikely, ShouldEqual, 102)
			So(o.BestCase, ShouldEqual, 106.05)
		})
	})

	Convey("Given a market rate at the float64 limit", t, func() {
		Convey("Then the outcome is computed without panicking", func() {
			var o negotiation.ExpectedOutcome
			So(func() { o = negotiation.Outcome(100, math.MaxFloat64) }, ShouldNotPanic)
			So(math.IsInf(o.BestCase, 1), ShouldBeTrue)
			So(o.WorstCase, ShouldEqual, 102)
			So(o.MostLikely, ShouldBeGreaterThan, o.WorstCase)
		})
	})
}
