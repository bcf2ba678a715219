package negotiation

import (
	"math"
	"sort"

	"github.com/okian/payerlens/internal/domain/model"
)

// Priority ranks a contract for renegotiation.
type Priority string

// Priorities, most pressing first.
const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

var priorityRank = map[Priority]int{ //nolint:gochecknoglobals // read-only
	PriorityUrgent: 0,
	PriorityHigh:   1,
	PriorityNormal: 2,
	PriorityLow:    3,
}

// Renewal window thresholds.
const (
	urgentWindowDays = 60
	highWindowDays   = 180
	urgentGapPercent = 5.0
	highGapPercent   = 10.0
)

// ContractPriority is one contract's place in the renegotiation queue.
type ContractPriority struct {
	ContractID    string   `json:"contract_id"`
	PayerName     string   `json:"payer_name"`
	ContractType  string   `json:"contract_type"`
	CurrentRate   float64  `json:"current_rate"`
	MarketRate    float64  `json:"market_rate"`
	GapPercentage float64  `json:"gap_percentage"`
	DaysToRenewal int      `json:"days_to_renewal"`
	Priority      Priority `json:"priority"`
}

// PrioritizeContracts orders contracts by renegotiation priority, then by
// days to renewal, then by ID. A contract's own market rate wins over the
// resolved market rate. Contracts that are neither active nor negotiating
// are low priority.
func (g *Generator) PrioritizeContracts(contracts []model.PayerContract) []ContractPriority {
	now := g.now()
	out := make([]ContractPriority, 0, len(contracts))
	for _, c := range contracts {
		market := g.MarketRate(c.ContractType, "")
		if c.MarketRate != nil {
			market = *c.MarketRate
		}
		cp := ContractPriority{
			ContractID:    c.ID,
			PayerName:     c.PayerName,
			ContractType:  c.ContractType,
			CurrentRate:   c.CurrentRate,
			MarketRate:    market,
			GapPercentage: GapPercentage(c.CurrentRate, market),
			DaysToRenewal: int(math.Floor(c.RenewalDate.Sub(now).Hours() / 24)),
		}
		cp.Priority = classifyPriority(c.Status, cp.DaysToRenewal, cp.GapPercentage)
		out = append(out, cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if priorityRank[a.Priority] != priorityRank[b.Priority] {
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		}
		if a.DaysToRenewal != b.DaysToRenewal {
			return a.DaysToRenewal < b.DaysToRenewal
		}
		return a.ContractID < b.ContractID
	})
	return out
}

func classifyPriority(status model.ContractStatus, days int, gap float64) Priority {
	switch {
	case status != model.ContractActive && status != model.ContractNegotiating:
		return PriorityLow
	case days <= urgentWindowDays && gap > urgentGapPercent:
		return PriorityUrgent
	case gap > highGapPercent, days <= highWindowDays && gap > 0:
		return PriorityHigh
	default:
		return PriorityNormal
	}
}
