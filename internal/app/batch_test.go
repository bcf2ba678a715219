package app_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/okian/payerlens/internal/app"
	"github.com/okian/payerlens/internal/domain/model"
	"github.com/okian/payerlens/internal/domain/negotiation"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func TestScoreBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	Convey("Given a batch of practices", t, func() {
		ctx := context.Background()
		eng := newEngine(app.WithWorkers(3))
		practices := make([]model.Practice, 25)
		for i := range practices {
			practices[i] = samplePractice(fmt.Sprintf("prc-%02d", i), 3.0+float64(i%5)*0.4)
		}

		Convey("When scoring concurrently", func() {
			got, err := eng.ScoreBatch(ctx, practices)

			Convey("Then results keep input order and match single scoring", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, len(practices))
				for i, p := range practices {
					So(got[i].PracticeID, ShouldEqual, p.ID)
					So(got[i], ShouldResemble, eng.ScorePractice(ctx, p))
				}
			})
		})

		Convey("When the batch is empty", func() {
			got, err := eng.ScoreBatch(ctx, nil)

			Convey("Then the result is empty", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			got, err := eng.ScoreBatch(cctx, practices)

			Convey("Then the cancellation is returned", func() {
				So(err, ShouldEqual, context.Canceled)
				So(got, ShouldBeNil)
			})
		})
	})
}

func TestPlaybookBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	Convey("Given a mix of valid and invalid requests", t, func() {
		ctx := context.Background()
		eng := newEngine(app.WithWorkers(2))
		reqs := []negotiation.Request{
			{PayerName: "Aetna", ContractType: "Vision Care", CurrentRate: 125.5},
			{PayerName: "", ContractType: "Vision Care", CurrentRate: 125.5},
			{PayerName: "Cigna", ContractType: "Medical Services", CurrentRate: 170},
			{PayerName: "Humana", ContractType: "Vision Care", CurrentRate: -1},
		}

		Convey("When building the batch", func() {
			got, err := eng.PlaybookBatch(ctx, reqs)

			Convey("Then failures are reported per item", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 4)
				for i, r := range got {
					So(r.Index, ShouldEqual, i)
				}
				So(got[0].Playbook, ShouldNotBeNil)
				So(got[0].Error, ShouldBeEmpty)
				So(got[1].Playbook, ShouldBeNil)
				So(got[1].Error, ShouldContainSubstring, "payer_name")
				So(got[2].Playbook.MarketRate, ShouldEqual, 185)
				So(got[3].Error, ShouldContainSubstring, "current_rate")
			})

			Convey("And each playbook equals the single-request result", func() {
				single, _ := eng.BuildNegotiationPlaybook(ctx, reqs[0])
				So(*got[0].Playbook, ShouldResemble, single)
			})
		})
	})
}
