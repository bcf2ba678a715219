// Package negotiation builds payer-contract negotiation playbooks.
//
// A playbook request runs through a fixed sequence of stages:
//
//	INPUT_VALIDATION -> BENCHMARK_LOOKUP -> STRATEGY_SELECTION ->
//	TIMELINE_SYNTHESIS -> RISK_ASSESSMENT -> SUCCESS_PROBABILITY -> ASSEMBLY
//
// Each stage reads the output of the previous ones. Only input validation
// can fail; every later stage resolves to a documented default instead.
// The generator holds read-only tables and a clock and is safe for
// concurrent use.
package negotiation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/payerlens/internal/domain/benchmark"
	"github.com/okian/payerlens/internal/domain/model"
	"github.com/okian/payerlens/internal/domain/positioning"
)

// Stage names one step of playbook generation.
type Stage int

// Stages in execution order.
const (
	StageInputValidation Stage = iota
	StageBenchmarkLookup
	StageStrategySelection
	StageTimelineSynthesis
	StageRiskAssessment
	StageSuccessProbability
	StageAssembly
)

var stageNames = [...]string{ //nolint:gochecknoglobals // read-only
	"INPUT_VALIDATION",
	"BENCHMARK_LOOKUP",
	"STRATEGY_SELECTION",
	"TIMELINE_SYNTHESIS",
	"RISK_ASSESSMENT",
	"SUCCESS_PROBABILITY",
	"ASSEMBLY",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Profile validation bounds.
const (
	maxCompetitiveRating = 10.0
	// LeverageGapThreshold is the gap percentage above which competitive
	// leverage is added to the strategy list.
	LeverageGapThreshold = 10.0
)

// playbookNamespace scopes name-based playbook IDs.
var playbookNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:payerlens:playbook")) //nolint:gochecknoglobals // constant namespace

// Request is one playbook request.
type Request struct {
	PayerName    string                `json:"payer_name" yaml:"payer_name"`
	ContractType string                `json:"contract_type" yaml:"contract_type"`
	CurrentRate  float64               `json:"current_rate" yaml:"current_rate"`
	Region       string                `json:"region,omitempty" yaml:"region,omitempty"`
	Profile      model.PracticeProfile `json:"practice_profile" yaml:"practice_profile"`
}

// ExpectedOutcome is the projected negotiated rate range. WorstCase <=
// MostLikely <= BestCase always holds.
type ExpectedOutcome struct {
	BestCase   float64 `json:"best_case"`
	MostLikely float64 `json:"most_likely"`
	WorstCase  float64 `json:"worst_case"`
}

// Playbook is the assembled negotiation plan.
type Playbook struct {
	ID                 string                           `json:"id"`
	PayerName          string                           `json:"payer_name"`
	ContractType       string                           `json:"contract_type"`
	GeneratedAt        time.Time                        `json:"generated_at"`
	CurrentRate        float64                          `json:"current_rate"`
	MarketRate         float64                          `json:"market_rate"`
	GapPercentage      float64                          `json:"gap_percentage"`
	ReferenceResolved  bool                             `json:"reference_resolved"`
	Benchmark          benchmark.RateComparison         `json:"benchmark"`
	Strategies         []Strategy                       `json:"strategies"`
	Timeline           Timeline                         `json:"timeline"`
	Risks              []Risk                           `json:"risks"`
	SuccessProbability float64                          `json:"success_probability"`
	ExpectedOutcome    ExpectedOutcome                  `json:"expected_outcome"`
	Outlook            MarketOutlook                    `json:"market_outlook"`
	Position           *positioning.CompetitiveAnalysis `json:"competitive_position,omitempty"`
}

// Generator builds playbooks from static tables and an injected clock.
type Generator struct {
	now         func() time.Time
	references  *benchmark.Table
	marketRates map[string]float64
	catalog     Catalog
	risks       []Risk
	seed        int64
}

// Default generator settings.
const (
	DefaultSeed = 42
)

// NewGenerator creates a Generator with the default catalog and risks and
// an empty reference table, overridden by opts.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		now:         time.Now,
		references:  benchmark.NewTable(nil, benchmark.Reference{}),
		marketRates: map[string]float64{},
		catalog:     DefaultCatalog(),
		risks:       DefaultRisks(),
		seed:        DefaultSeed,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// state carries stage outputs through one request.
type state struct {
	req         Request
	now         time.Time
	marketRate  float64
	reference   benchmark.Reference
	resolved    bool
	gap         float64
	strategies  []Strategy
	timeline    Timeline
	risks       []Risk
	probability float64
	playbook    Playbook
}

// Build runs every stage for req and returns the assembled playbook. The
// only error is one wrapping ErrInvalidInput.
func (g *Generator) Build(req Request) (Playbook, error) {
	st := &state{req: req, now: g.now()}
	stages := []struct {
		stage Stage
		run   func(*state) error
	}{
		{StageInputValidation, validate},
		{StageBenchmarkLookup, g.lookupBenchmark},
		{StageStrategySelection, g.selectStrategies},
		{StageTimelineSynthesis, synthesizeTimeline},
		{StageRiskAssessment, g.assessRisks},
		{StageSuccessProbability, estimateProbability},
		{StageAssembly, g.assemble},
	}
	for _, s := range stages {
		if err := s.run(st); err != nil {
			return Playbook{}, fmt.Errorf("%s: %w", s.stage, err)
		}
	}
	return st.playbook, nil
}

// Validate checks req without building a playbook.
func Validate(req Request) error {
	return validate(&state{req: req})
}

func validate(st *state) error {
	r := st.req
	var errs []error
	if strings.TrimSpace(r.PayerName) == "" {
		errs = append(errs, invalid("payer_name", "must not be empty"))
	}
	if strings.TrimSpace(r.ContractType) == "" {
		errs = append(errs, invalid("contract_type", "must not be empty"))
	}
	switch {
	case !finite(r.CurrentRate) || r.CurrentRate < 0:
		errs = append(errs, invalid("current_rate", "must be a finite value >= 0, got %v", r.CurrentRate))
	case !finite(r.CurrentRate * bestCaseFactor):
		errs = append(errs, invalid("current_rate", "too large to project an outcome, got %v", r.CurrentRate))
	}
	p := r.Profile
	if !finite(p.Revenue) || p.Revenue < 0 {
		errs = append(errs, invalid("revenue", "must be a finite value >= 0, got %v", p.Revenue))
	}
	if !finite(p.PatientVolume) || p.PatientVolume < 0 {
		errs = append(errs, invalid("patient_volume", "must be a finite value >= 0, got %v", p.PatientVolume))
	}
	if !finite(p.CompetitiveRating) || p.CompetitiveRating < 0 || p.CompetitiveRating > maxCompetitiveRating {
		errs = append(errs, invalid("competitive_rating", "must be within [0, 10], got %v", p.CompetitiveRating))
	}
	return errors.Join(errs...)
}

// lookupBenchmark resolves the reference row and market rate. An unknown
// contract type uses the default row; the market rate table takes
// precedence over the row average.
func (g *Generator) lookupBenchmark(st *state) error {
	st.reference, st.resolved = g.references.Lookup(st.req.ContractType, st.req.Region)
	st.marketRate = g.MarketRate(st.req.ContractType, st.req.Region)
	st.gap = GapPercentage(st.req.CurrentRate, st.marketRate)
	return nil
}

// MarketRate resolves the market rate for a contract type.
func (g *Generator) MarketRate(contractType, region string) float64 {
	if rate, ok := g.marketRates[normalize(contractType)]; ok {
		return rate
	}
	ref, _ := g.references.Lookup(contractType, region)
	return ref.Average
}

// GapPercentage is (market - current) / current * 100. A zero current rate
// reports 100 when the market rate is positive and 0 otherwise.
func GapPercentage(current, market float64) float64 {
	if current == 0 {
		if market > 0 {
			return 100
		}
		return 0
	}
	return (market - current) / current * 100
}

// selectStrategies always includes market-rate analysis and quality
// demonstration, and adds competitive leverage when the gap exceeds 10%.
// Strategies are ranked by effectiveness, highest first.
func (g *Generator) selectStrategies(st *state) error {
	selected := []Strategy{
		cloneStrategy(g.catalog.MarketRateAnalysis),
		cloneStrategy(g.catalog.QualityDemonstration),
	}
	if st.gap > LeverageGapThreshold {
		selected = append(selected, cloneStrategy(g.catalog.CompetitiveLeverage))
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Effectiveness > selected[j].Effectiveness
	})
	st.strategies = selected
	return nil
}

func synthesizeTimeline(st *state) error {
	st.timeline = BuildTimeline(st.now)
	return nil
}

// assessRisks returns the static register. The register does not vary with
// the request; every payer and contract gets the same three risks.
func (g *Generator) assessRisks(st *state) error {
	st.risks = append([]Risk(nil), g.risks...)
	return nil
}

func estimateProbability(st *state) error {
	st.probability = SuccessProbability(st.gap, st.req.Profile)
	return nil
}

func (g *Generator) assemble(st *state) error {
	r := st.req
	pb := Playbook{
		ID:                 playbookID(r, st.now),
		PayerName:          r.PayerName,
		ContractType:       r.ContractType,
		GeneratedAt:        st.now,
		CurrentRate:        r.CurrentRate,
		MarketRate:         st.marketRate,
		GapPercentage:      st.gap,
		ReferenceResolved:  st.resolved,
		Benchmark:          benchmark.CompareRate(r.CurrentRate, st.reference),
		Strategies:         st.strategies,
		Timeline:           st.timeline,
		Risks:              st.risks,
		SuccessProbability: st.probability,
		ExpectedOutcome:    Outcome(r.CurrentRate, st.marketRate),
		Outlook:            g.Outlook(r.PayerName, r.ContractType, st.marketRate),
	}
	if r.Profile.Scores != nil {
		analysis := positioning.Analyze(*r.Profile.Scores, r.Profile.Peers)
		pb.Position = &analysis
	}
	st.playbook = pb
	return nil
}

func playbookID(r Request, now time.Time) string {
	name := fmt.Sprintf("%s|%s|%s|%.6f|%s",
		normalize(r.PayerName), normalize(r.ContractType), normalize(r.Region),
		r.CurrentRate, now.UTC().Format(time.RFC3339Nano))
	return uuid.NewSHA1(playbookNamespace, []byte(name)).String()
}

func cloneStrategy(s Strategy) Strategy {
	s.Tactics = append([]string(nil), s.Tactics...)
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
