package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/okian/payerlens/internal/domain/model"
	"github.com/okian/payerlens/internal/domain/negotiation"
	"github.com/okian/payerlens/pkg/logger"
	"github.com/okian/payerlens/pkg/metrics"
)

// Batch kinds and outcomes for metrics.
const (
	batchScore    = "score"
	batchPlaybook = "playbook"
	outcomeOK     = "ok"
	outcomeError  = "error"
)

// PlaybookResult is one item of a playbook batch. Exactly one of Playbook
// and Error is set.
type PlaybookResult struct {
	Index    int                   `json:"index"`
	Playbook *negotiation.Playbook `json:"playbook,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// ScoreBatch scores practices concurrently. Results keep input order. The
// only error is ctx's.
func (e *Engine) ScoreBatch(ctx context.Context, practices []model.Practice) ([]model.PracticeScoreComponents, error) {
	out := make([]model.PracticeScoreComponents, len(practices))
	err := e.fanOut(ctx, batchScore, len(practices), func(ctx context.Context, i int) bool {
		out[i] = e.ScorePractice(ctx, practices[i])
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PlaybookBatch builds playbooks concurrently. Invalid requests are
// reported per item and do not stop the batch. The only error is ctx's.
func (e *Engine) PlaybookBatch(ctx context.Context, reqs []negotiation.Request) ([]PlaybookResult, error) {
	out := make([]PlaybookResult, len(reqs))
	err := e.fanOut(ctx, batchPlaybook, len(reqs), func(ctx context.Context, i int) bool {
		out[i].Index = i
		pb, err := e.BuildNegotiationPlaybook(ctx, reqs[i])
		if err != nil {
			out[i].Error = err.Error()
			return false
		}
		out[i].Playbook = &pb
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// fanOut runs fn for indexes [0, n) on at most e.workers goroutines. fn
// reports item success; only cancellation aborts the run.
func (e *Engine) fanOut(ctx context.Context, kind string, n int, fn func(context.Context, int) bool) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	e.logger.Debug(ctx, "batch started",
		logger.String("kind", kind),
		logger.Int("items", n),
		logger.Int("workers", e.workers),
	)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			metrics.AddBatchInFlight(1)
			defer metrics.AddBatchInFlight(-1)

			outcome := outcomeOK
			if !fn(gctx, i) {
				outcome = outcomeError
			}
			metrics.RecordBatchItem(kind, outcome)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		e.logger.Warn(ctx, "batch cancelled", logger.String("kind", kind), logger.Error(err))
		return err
	}
	e.logger.Debug(ctx, "batch finished", logger.String("kind", kind), logger.Int("items", n))
	return nil
}
