// Package app wires the domain packages to the reference tables, logging
// and metrics. Engine is the entry point used by the CLI.
package app

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/okian/payerlens/internal/domain/benchmark"
	"github.com/okian/payerlens/internal/domain/capability"
	"github.com/okian/payerlens/internal/domain/model"
	"github.com/okian/payerlens/internal/domain/negotiation"
	"github.com/okian/payerlens/internal/domain/positioning"
	"github.com/okian/payerlens/internal/domain/reputation"
	"github.com/okian/payerlens/internal/refdata"
	"github.com/okian/payerlens/pkg/logger"
	"github.com/okian/payerlens/pkg/metrics"
)

// Operation names used in logs and metrics.
const (
	opScorePhysician  = "score_physician"
	opScorePractice   = "score_practice"
	opScoreReputation = "score_reputation"
	opCompareRate     = "compare_rate"
	opFMV             = "fair_market_value"
	opPosition        = "competitive_position"
	opPlaybook        = "playbook"
	opContracts       = "prioritize_contracts"
)

// Engine serves every scoring, benchmark and negotiation operation against
// the active reference tables snapshot.
type Engine struct {
	store               *refdata.Store
	logger              logger.Logger
	now                 func() time.Time
	workers             int
	seed                int64
	defaultServiceCount int

	compiled atomic.Pointer[compiled]
}

// compiled holds the domain services built from one snapshot.
type compiled struct {
	snap      *refdata.Snapshot
	scorer    *capability.Scorer
	generator *negotiation.Generator
}

// New constructs an Engine on the built-in tables unless WithStore is given.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:              logger.Nop(),
		now:                 time.Now,
		workers:             runtime.NumCPU(),
		seed:                negotiation.DefaultSeed,
		defaultServiceCount: capability.DefaultServiceCount,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = refdata.NewStore(nil)
	}
	metrics.SetReferenceTables(e.store.Current().Tables.Version)
	return e
}

// current returns the services for the active snapshot, rebuilding them
// after a swap.
func (e *Engine) current() *compiled {
	snap := e.store.Current()
	if c := e.compiled.Load(); c != nil && c.snap == snap {
		return c
	}
	t := snap.Tables
	c := &compiled{
		snap: snap,
		scorer: capability.NewScorer(
			capability.WithClock(e.now),
			capability.WithTrainingPoints(t.TrainingPoints),
			capability.WithDefaultServiceCount(e.defaultServiceCount),
			capability.WithWeights(t.CompositeWeights),
			capability.WithReputationWeights(t.Reputation()),
			capability.WithOverheadReference(t.OverheadBenchmark),
		),
		generator: negotiation.NewGenerator(
			negotiation.WithClock(e.now),
			negotiation.WithReferences(snap.References),
			negotiation.WithMarketRates(t.MarketRates),
			negotiation.WithCatalog(t.Strategies),
			negotiation.WithRisks(t.Risks),
			negotiation.WithSeed(e.seed),
		),
	}
	e.compiled.Store(c)
	return c
}

// Snapshot returns the active reference tables.
func (e *Engine) Snapshot() *refdata.Snapshot {
	return e.store.Current()
}

// Reload loads the reference tables at path and swaps them in. The
// previous tables stay active on error.
func (e *Engine) Reload(ctx context.Context, path string) error {
	next, err := e.store.Reload(path)
	if err != nil {
		metrics.RecordError("refdata", "reload")
		e.logger.Warn(ctx, "reference tables reload failed", logger.String("path", path), logger.Error(err))
		return err
	}
	metrics.SetReferenceTables(next.Tables.Version)
	e.logger.Info(ctx, "reference tables loaded",
		logger.String("path", path),
		logger.String("version", next.Tables.Version),
		logger.Int("benchmarks", next.References.Len()),
	)
	return nil
}

// Stats reports the engine's configuration and active tables.
func (e *Engine) Stats() map[string]any {
	snap := e.store.Current()
	return map[string]any{
		"tables_version":        snap.Tables.Version,
		"benchmark_rows":        snap.References.Len(),
		"workers":               e.workers,
		"seed":                  e.seed,
		"default_service_count": e.defaultServiceCount,
	}
}

// ScorePhysician scores one physician.
func (e *Engine) ScorePhysician(ctx context.Context, p model.Physician) capability.PhysicianScore {
	defer e.observe(opScorePhysician, e.now())
	out := e.current().scorer.ScorePhysician(p)
	if out.ServiceCountEstimated {
		e.logger.Debug(ctx, "service count estimated",
			logger.String("physician", p.ID),
			logger.Int("assumed", out.ServiceCount),
		)
	}
	metrics.RecordScoring(metrics.KindPhysician)
	return out
}

// ScorePractice scores a practice's four sub-scores and composite.
func (e *Engine) ScorePractice(ctx context.Context, p model.Practice) model.PracticeScoreComponents {
	defer e.observe(opScorePractice, e.now())
	out := e.current().scorer.ScorePractice(p)
	e.logger.Debug(ctx, "practice scored",
		logger.String("practice", p.ID),
		logger.Int("physicians", len(p.Physicians)),
		logger.Float64("overall", out.OverallScore),
	)
	metrics.RecordScoring(metrics.KindPractice)
	return out
}

// ScoreReputation scores rating snapshots and explains each source.
func (e *Engine) ScoreReputation(ctx context.Context, ms []model.ReputationMetric) reputation.Breakdown {
	defer e.observe(opScoreReputation, e.now())
	out := reputation.Explain(ms, e.current().snap.Tables.Reputation())
	if out.Neutral {
		e.logger.Debug(ctx, "no reputation metrics, neutral score")
	}
	metrics.RecordScoring(metrics.KindReputation)
	return out
}

// RateBenchmark is a rate comparison against a resolved reference row.
type RateBenchmark struct {
	Category string `json:"category"`
	Region   string `json:"region,omitempty"`
	Resolved bool   `json:"reference_resolved"`
	benchmark.RateComparison
}

// CompareRate compares value with the reference row for category and
// region. Unknown categories use the default row.
func (e *Engine) CompareRate(ctx context.Context, category, region string, value float64) RateBenchmark {
	defer e.observe(opCompareRate, e.now())
	ref, ok := e.current().snap.References.Lookup(category, region)
	if !ok {
		e.fallback(ctx, opCompareRate, category, region)
	}
	metrics.RecordScoring(metrics.KindCompare)
	return RateBenchmark{
		Category:       category,
		Region:         region,
		Resolved:       ok,
		RateComparison: benchmark.CompareRate(value, ref),
	}
}

// FMVQuote is a fair market value with its inputs.
type FMVQuote struct {
	Category         string  `json:"category"`
	Region           string  `json:"region,omitempty"`
	Specialty        string  `json:"specialty,omitempty"`
	Volume           int     `json:"volume"`
	Median           float64 `json:"median"`
	Multiplier       float64 `json:"specialty_multiplier"`
	VolumeAdjustment float64 `json:"volume_adjustment"`
	Resolved         bool    `json:"reference_resolved"`
	Value            float64 `json:"fair_market_value"`
}

// FairMarketValue prices a service category for a specialty and volume.
func (e *Engine) FairMarketValue(ctx context.Context, category, region, specialty string, volume int) FMVQuote {
	defer e.observe(opFMV, e.now())
	snap := e.current().snap
	ref, ok := snap.References.Lookup(category, region)
	if !ok {
		e.fallback(ctx, opFMV, category, region)
	}
	metrics.RecordScoring(metrics.KindFMV)
	return FMVQuote{
		Category:         category,
		Region:           region,
		Specialty:        specialty,
		Volume:           volume,
		Median:           ref.Median,
		Multiplier:       snap.Pricer.SpecialtyMultiplier(specialty),
		VolumeAdjustment: benchmark.VolumeAdjustment(volume),
		Resolved:         ok,
		Value:            snap.Pricer.FairMarketValue(category, region, specialty, volume),
	}
}

// AnalyzeCompetitivePosition places target among peers.
func (e *Engine) AnalyzeCompetitivePosition(ctx context.Context, target model.PracticeScoreComponents, peers []model.PracticeScoreComponents) positioning.CompetitiveAnalysis {
	defer e.observe(opPosition, e.now())
	out := positioning.Analyze(target, peers)
	e.logger.Debug(ctx, "competitive position",
		logger.String("practice", target.PracticeID),
		logger.Int("peers", len(peers)),
		logger.String("quadrant", string(out.Quadrant)),
	)
	metrics.RecordScoring(metrics.KindPosition)
	return out
}

// BuildNegotiationPlaybook builds a playbook for one contract. Invalid
// input is the only error and wraps negotiation.ErrInvalidInput.
func (e *Engine) BuildNegotiationPlaybook(ctx context.Context, req negotiation.Request) (negotiation.Playbook, error) {
	defer e.observe(opPlaybook, e.now())
	pb, err := e.current().generator.Build(req)
	if err != nil {
		if errors.Is(err, negotiation.ErrInvalidInput) {
			metrics.RecordInvalidInput(opPlaybook)
		}
		e.logger.Warn(ctx, "playbook rejected",
			logger.String("payer", req.PayerName),
			logger.String("contract_type", req.ContractType),
			logger.Error(err),
		)
		return negotiation.Playbook{}, err
	}
	if !pb.ReferenceResolved {
		e.fallback(ctx, opPlaybook, req.ContractType, req.Region)
	}
	metrics.RecordPlaybook(pb.SuccessProbability)
	e.logger.Debug(ctx, "playbook built",
		logger.String("id", pb.ID),
		logger.Float64("gap_percentage", pb.GapPercentage),
		logger.Int("strategies", len(pb.Strategies)),
		logger.Float64("success_probability", pb.SuccessProbability),
	)
	return pb, nil
}

// PrioritizeContracts ranks a contract portfolio by renewal urgency and
// rate gap.
func (e *Engine) PrioritizeContracts(ctx context.Context, contracts []model.PayerContract) []negotiation.ContractPriority {
	defer e.observe(opContracts, e.now())
	out := e.current().generator.PrioritizeContracts(contracts)
	e.logger.Debug(ctx, "contracts prioritized", logger.Int("contracts", len(out)))
	return out
}

func (e *Engine) fallback(ctx context.Context, op, category, region string) {
	metrics.RecordReferenceFallback(op)
	e.logger.Debug(ctx, "no reference row, using default",
		logger.String("operation", op),
		logger.String("category", category),
		logger.String("region", region),
	)
}

func (e *Engine) observe(op string, start time.Time) {
	metrics.RecordOperationLatency(op, float64(e.now().Sub(start))/float64(time.Millisecond))
}
