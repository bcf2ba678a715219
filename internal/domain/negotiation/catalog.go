package negotiation

// Strategy identifiers in the default catalog.
const (
	StrategyMarketRateAnalysis   = "market-rate-analysis"
	StrategyQualityDemonstration = "quality-value-demonstration"
	StrategyCompetitiveLeverage  = "competitive-leverage"
)

// Difficulty tiers.
const (
	DifficultyLow    = "low"
	DifficultyMedium = "medium"
	DifficultyHigh   = "high"
)

// Strategy is one static catalog entry. Effectiveness, difficulty and
// timeline are fixed per entry, not computed.
type Strategy struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Effectiveness float64  `json:"effectiveness" yaml:"effectiveness"`
	Difficulty    string   `json:"difficulty" yaml:"difficulty"`
	Timeline      string   `json:"timeline" yaml:"timeline"`
	Tactics       []string `json:"tactics,omitempty" yaml:"tactics,omitempty"`
}

// Catalog holds the strategies the selector draws from.
type Catalog struct {
	MarketRateAnalysis   Strategy `json:"market_rate_analysis" yaml:"market_rate_analysis"`
	QualityDemonstration Strategy `json:"quality_demonstration" yaml:"quality_demonstration"`
	CompetitiveLeverage  Strategy `json:"competitive_leverage" yaml:"competitive_leverage"`
}

// DefaultCatalog returns the built-in strategy catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		MarketRateAnalysis: Strategy{
			ID:            StrategyMarketRateAnalysis,
			Name:          "Market Rate Analysis",
			Description:   "Present benchmark data showing the contracted rate against regional market rates.",
			Effectiveness: 85,
			Difficulty:    DifficultyLow,
			Timeline:      "2-3 weeks",
			Tactics: []string{
				"Compile regional rate benchmarks for the contract category",
				"Quantify the revenue impact of the rate gap",
				"Share the analysis with the payer's provider relations lead",
			},
		},
		QualityDemonstration: Strategy{
			ID:            StrategyQualityDemonstration,
			Name:          "Quality & Value Demonstration",
			Description:   "Document outcomes, patient satisfaction and cost efficiency to justify a premium.",
			Effectiveness: 78,
			Difficulty:    DifficultyMedium,
			Timeline:      "4-6 weeks",
			Tactics: []string{
				"Summarize quality metrics and reputation scores",
				"Highlight physician credentials and subspecialty coverage",
				"Show total cost of care versus network peers",
			},
		},
		CompetitiveLeverage: Strategy{
			ID:            StrategyCompetitiveLeverage,
			Name:          "Competitive Leverage",
			Description:   "Use the practice's market position and alternative payer options to strengthen the ask.",
			Effectiveness: 72,
			Difficulty:    DifficultyHigh,
			Timeline:      "3-4 weeks",
			Tactics: []string{
				"Identify network adequacy gaps the practice fills",
				"Reference competing payer offers where available",
				"Set a clear walk-away position before the first meeting",
			},
		},
	}
}

// Risk is one static risk register entry.
type Risk struct {
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	Impact      string `json:"impact" yaml:"impact"`
	Probability string `json:"probability" yaml:"probability"`
	Mitigation  string `json:"mitigation" yaml:"mitigation"`
}

// DefaultRisks returns the fixed risk register. It does not vary with the
// request.
func DefaultRisks() []Risk {
	return []Risk{
		{
			Category:    "relationship",
			Description: "Aggressive negotiation strains the payer relationship.",
			Impact:      "medium",
			Probability: "low",
			Mitigation:  "Frame requests around shared quality goals and keep communication collaborative.",
		},
		{
			Category:    "timing",
			Description: "Negotiation runs past the renewal date and the current terms roll over.",
			Impact:      "high",
			Probability: "medium",
			Mitigation:  "Start preparation at least 90 days before renewal and agree on a decision date.",
		},
		{
			Category:    "market",
			Description: "Market rates shift during negotiation and weaken the benchmark argument.",
			Impact:      "medium",
			Probability: "medium",
			Mitigation:  "Refresh benchmark data before each round and anchor on multi-year trends.",
		},
	}
}
