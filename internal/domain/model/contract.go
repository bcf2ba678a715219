package model

import "time"

// ContractStatus is the lifecycle state of a payer contract.
type ContractStatus string

// Known contract statuses.
const (
	ContractActive      ContractStatus = "active"
	ContractNegotiating ContractStatus = "negotiating"
	ContractExpired     ContractStatus = "expired"
	ContractTerminated  ContractStatus = "terminated"
)

// PayerContract is a reimbursement agreement with a single payer.
type PayerContract struct {
	ID           string         `json:"id" yaml:"id"`
	PayerName    string         `json:"payer_name" yaml:"payer_name"`
	ContractType string         `json:"contract_type" yaml:"contract_type"`
	CurrentRate  float64        `json:"current_rate" yaml:"current_rate"`
	MarketRate   *float64       `json:"market_rate,omitempty" yaml:"market_rate,omitempty"`
	RenewalDate  time.Time      `json:"renewal_date" yaml:"renewal_date"`
	Status       ContractStatus `json:"status" yaml:"status"`
}

// PracticeScoreComponents is the per-dimension breakdown of a practice score.
type PracticeScoreComponents struct {
	PracticeID            string  `json:"practice_id,omitempty" yaml:"practice_id,omitempty"`
	PhysicianQuality      float64 `json:"physician_quality" yaml:"physician_quality"`
	ReputationScore       float64 `json:"reputation_score" yaml:"reputation_score"`
	OperationalEfficiency float64 `json:"operational_efficiency" yaml:"operational_efficiency"`
	MarketPosition        float64 `json:"market_position" yaml:"market_position"`
	OverallScore          float64 `json:"overall_score" yaml:"overall_score"`
}

// PracticeProfile is the practice context supplied to the playbook generator.
type PracticeProfile struct {
	Revenue           float64 `json:"revenue" yaml:"revenue"`
	PatientVolume     float64 `json:"patient_volume" yaml:"patient_volume"`
	CompetitiveRating float64 `json:"competitive_rating" yaml:"competitive_rating"` // 0-10

	// Scores and Peers are optional; when Scores is set the playbook
	// embeds a competitive analysis against Peers.
	Scores *PracticeScoreComponents  `json:"scores,omitempty" yaml:"scores,omitempty"`
	Peers  []PracticeScoreComponents `json:"peers,omitempty" yaml:"peers,omitempty"`
}
