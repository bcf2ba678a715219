package benchmark_test

import (
	"math"
	"testing"

	"github.com/okian/payerlens/internal/domain/benchmark"
	. "github.com/smartystreets/goconvey/convey"
)

var quartiles = benchmark.Reference{
	Average:      100,
	Median:       98,
	Percentile25: 80,
	Percentile75: 120,
	SampleSize:   40,
}

func TestClassify(t *testing.T) {
	Convey("Given a reference with distinct quartiles", t, func() {
		Convey("When classifying values at and around each boundary", func() {
			cases := []struct {
				value float64
				want  benchmark.Tier
			}{
				{-1000, benchmark.TierLow},
				{79.999, benchmark.TierLow},
				{80, benchmark.TierLow},
				{80.001, benchmark.TierBelowAverage},
				{98, benchmark.TierBelowAverage},
				{98.001, benchmark.TierAboveAverage},
				{120, benchmark.TierAboveAverage},
				{120.001, benchmark.TierHigh},
				{1e9, benchmark.TierHigh},
			}

			Convey("Then each value lands in exactly one tier", func() {
				for _, c := range cases {
					So(benchmark.Classify(c.value, quartiles), ShouldEqual, c.want)
				}
			})
		})

		Convey("When sweeping values across the range", func() {
			order := map[benchmark.Tier]int{
				benchmark.TierLow:          0,
				benchmark.TierBelowAverage: 1,
				benchmark.TierAboveAverage: 2,
				benchmark.TierHigh:         3,
			}

			Convey("Then the tier never decreases", func() {
				prev := -1
				for v := 50.0; v <= 150; v += 0.5 {
					cur := order[benchmark.Classify(v, quartiles)]
					So(cur, ShouldBeGreaterThanOrEqualTo, prev)
					prev = cur
				}
			})
		})
	})
}

func TestBandFor(t *testing.T) {
	Convey("Given the variance decision table", t, func() {
		Convey("Then the bands are contiguous and cover the real line", func() {
			So(math.IsInf(benchmark.Bands[0].Lower, -1), ShouldBeTrue)
			So(math.IsInf(benchmark.Bands[len(benchmark.Bands)-1].Upper, 1), ShouldBeTrue)
			for i := 1; i < len(benchmark.Bands); i++ {
				So(benchmark.Bands[i].Lower, ShouldEqual, benchmark.Bands[i-1].Upper)
			}
		})

		Convey("When the variance is exactly on a boundary", func() {
			Convey("Then the lower bound is inclusive", func() {
				So(benchmark.BandFor(-15).Name, ShouldEqual, "below-market")
				So(benchmark.BandFor(-5).Name, ShouldEqual, "at-market")
				So(benchmark.BandFor(5).Name, ShouldEqual, "above-market")
				So(benchmark.BandFor(15).Name, ShouldEqual, "far-above-market")
			})

			Convey("And values just below a boundary stay in the lower band", func() {
				So(benchmark.BandFor(-15.0001).Name, ShouldEqual, "far-below-market")
				So(benchmark.BandFor(4.9999).Name, ShouldEqual, "at-market")
			})
		})

		Convey("When the variance is NaN", func() {
			Convey("Then the at-market band is used", func() {
				So(benchmark.BandFor(math.NaN()).Name, ShouldEqual, "at-market")
			})
		})
	})
}

func TestCompareRate(t *testing.T) {
	Convey("Given a reference averaging 100", t, func() {
		Convey("When comparing a rate of 80", func() {
			got := benchmark.CompareRate(80, quartiles)

			Convey("Then the variance is -20% and tier is low", func() {
				So(got.VariancePercent, ShouldAlmostEqual, -20, 1e-9)
				So(got.Tier, ShouldEqual, benchmark.TierLow)
				So(got.Band, ShouldEqual, "far-below-market")
				So(got.Recommendation, ShouldNotBeEmpty)
				So(got.Reference, ShouldResemble, quartiles)
			})
		})

		Convey("When comparing a rate of 85 (exactly -15%)", func() {
			got := benchmark.CompareRate(85, quartiles)

			Convey("Then it falls into the below-market band", func() {
				So(got.Band, ShouldEqual, "below-market")
			})
		})

		Convey("When the reference average is zero", func() {
			got := benchmark.CompareRate(10, benchmark.Reference{})

			Convey("Then variance is zero rather than infinite", func() {
				So(got.VariancePercent, ShouldEqual, 0)
				So(got.Band, ShouldEqual, "at-market")
				So(got.Tier, ShouldEqual, benchmark.TierHigh)
			})
		})
	})
}

func TestFromSamples(t *testing.T) {
	Convey("Given a sample of five values", t, func() {
		ref := benchmark.FromSamples([]float64{50, 10, 40, 20, 30})

		Convey("Then the summary uses interpolated quartiles", func() {
			So(ref.SampleSize, ShouldEqual, 5)
			So(ref.Average, ShouldAlmostEqual, 30, 1e-9)
			So(ref.Median, ShouldAlmostEqual, 30, 1e-9)
			So(ref.Percentile25, ShouldAlmostEqual, 20, 1e-9)
			So(ref.Percentile75, ShouldAlmostEqual, 40, 1e-9)
		})
	})

	Convey("Given a sample of four values", t, func() {
		ref := benchmark.FromSamples([]float64{1, 2, 3, 4})

		Convey("Then quartiles interpolate between ranks", func() {
			So(ref.Median, ShouldAlmostEqual, 2.5, 1e-9)
			So(ref.Percentile25, ShouldAlmostEqual, 1.75, 1e-9)
			So(ref.Percentile75, ShouldAlmostEqual, 3.25, 1e-9)
		})
	})

	Convey("Given no samples", t, func() {
		Convey("Then the zero reference is returned", func() {
			So(benchmark.FromSamples(nil), ShouldResemble, benchmark.Reference{})
		})
	})

	Convey("Given a single sample", t, func() {
		ref := benchmark.FromSamples([]float64{7})

		Convey("Then every statistic equals that sample", func() {
			So(ref.Median, ShouldEqual, 7)
			So(ref.Percentile25, ShouldEqual, 7)
			So(ref.Percentile75, ShouldEqual, 7)
		})
	})
}

func TestTableLookup(t *testing.T) {
	Convey("Given a table with regional and category-wide rows", t, func() {
		national := benchmark.Reference{Average: 140, Median: 138}
		west := benchmark.Reference{Average: 150, Median: 149}
		fallback := benchmark.Reference{Average: 100, Median: 100}
		table := benchmark.NewTable([]benchmark.Row{
			{Category: "Vision Care", Reference: national},
			{Category: "vision care", Region: "West", Reference: west},
		}, fallback)

		Convey("When looking up an exact key with different casing", func() {
			ref, ok := table.Lookup(" VISION CARE ", "west")

			Convey("Then the regional row is returned", func() {
				So(ok, ShouldBeTrue)
				So(ref, ShouldResemble, west)
			})
		})

		Convey("When the region is unknown", func() {
			ref, ok := table.Lookup("Vision Care", "Midwest")

			Convey("Then the category-wide row is returned", func() {
				So(ok, ShouldBeTrue)
				So(ref, ShouldResemble, national)
			})
		})

		Convey("When the category is unknown", func() {
			ref, ok := table.Lookup("Dental", "West")

			Convey("Then the default row is returned and flagged", func() {
				So(ok, ShouldBeFalse)
				So(ref, ShouldResemble, fallback)
				So(table.Fallback(), ShouldResemble, fallback)
				So(table.Len(), ShouldEqual, 2)
			})
		})

		Convey("When the table is nil", func() {
			var nilTable *benchmark.Table
			ref, ok := nilTable.Lookup("x", "y")

			Convey("Then a zero reference is returned without panicking", func() {
				So(ok, ShouldBeFalse)
				So(ref, ShouldResemble, benchmark.Reference{})
			})
		})
	})
}

func TestFairMarketValue(t *testing.T) {
	Convey("Given a pricer with one category and specialty multipliers", t, func() {
		table := benchmark.NewTable([]benchmark.Row{
			{Category: "Vision Care", Reference: benchmark.Reference{Average: 142, Median: 140}},
		}, benchmark.Reference{Average: 100, Median: 100})
		pricer := benchmark.NewPricer(table, map[string]float64{
			"Retina":   1.3,
			"glaucoma": 1.1,
			"ignored":  0,
		})

		Convey("When pricing mid volume for a known specialty", func() {
			Convey("Then median times multiplier is returned in cents", func() {
				So(pricer.FairMarketValue("Vision Care", "", "retina", 500), ShouldEqual, 182)
			})
		})

		Convey("When pricing low volume", func() {
			Convey("Then a 5% premium applies", func() {
				So(pricer.FairMarketValue("Vision Care", "", "", 50), ShouldEqual, 147)
			})
		})

		Convey("When the category and specialty are unknown", func() {
			Convey("Then the default row and neutral multiplier are used", func() {
				So(pricer.FairMarketValue("Dental", "South", "podiatry", 2000), ShouldEqual, 95)
			})
		})

		Convey("When a multiplier is non-positive", func() {
			Convey("Then it is ignored", func() {
				So(pricer.SpecialtyMultiplier("ignored"), ShouldEqual, 1.0)
				So(pricer.SpecialtyMultiplier("GLAUCOMA"), ShouldEqual, 1.1)
			})
		})

		Convey("When checking the volume step function boundaries", func() {
			Convey("Then 100 and 1000 are neutral", func() {
				So(benchmark.VolumeAdjustment(99), ShouldEqual, 1.05)
				So(benchmark.VolumeAdjustment(100), ShouldEqual, 1.0)
				So(benchmark.VolumeAdjustment(1000), ShouldEqual, 1.0)
				So(benchmark.VolumeAdjustment(1001), ShouldEqual, 0.95)
			})
		})
	})
}

func TestFairMarketValueNonFinite(t *testing.T) {
	Convey("Given a reference row with an infinite median", t, func() {
		table := benchmark.NewTable([]benchmark.Row{
			{Category: "X", Reference: benchmark.Reference{Average: 100, Median: math.Inf(1)}},
		}, benchmark.Reference{Average: 100, Median: 100})
		pricer := benchmark.NewPricer(table, nil)

		Convey("Then pricing returns the value without panicking", func() {
			var v float64
			So(func() { v = pricer.FairMarketValue("X", "", "", 500) }, ShouldNotPanic)
			So(math.IsInf(v, 1), ShouldBeTrue)
		})
	})
}
