// Package model contains domain records passed between layers.
//
// Records are read-only snapshots supplied by the caller. Scoring and
// negotiation code never mutates them.
package model

import (
	"strings"
	"time"
)

// TrainingKind identifies a training or credential record type.
type TrainingKind string

// Known training kinds.
const (
	TrainingMedSchool     TrainingKind = "MED_SCHOOL"
	TrainingResidency     TrainingKind = "RESIDENCY"
	TrainingFellowship    TrainingKind = "FELLOWSHIP"
	TrainingCertification TrainingKind = "CERTIFICATION"
	TrainingContinuingEd  TrainingKind = "CONTINUING_ED"
)

// TrainingRecord is a single training or credential entry for a physician.
type TrainingRecord struct {
	Kind TrainingKind `json:"kind" yaml:"kind"`
}

// Physician is a clinician attached to a practice.
type Physician struct {
	ID              string           `json:"id" yaml:"id"`
	Subspecialty    *string          `json:"subspecialty,omitempty" yaml:"subspecialty,omitempty"`
	GraduationYear  *int             `json:"graduation_year,omitempty" yaml:"graduation_year,omitempty"`
	BoardCertified  bool             `json:"board_certified" yaml:"board_certified"`
	TrainingRecords []TrainingRecord `json:"training_records,omitempty" yaml:"training_records,omitempty"`
	// ServiceCount is the number of distinct clinical services offered.
	// Nil means unknown; scorers substitute their configured estimate.
	ServiceCount *int `json:"service_count,omitempty" yaml:"service_count,omitempty"`
}

// HasSubspecialty reports whether a non-blank subspecialty is recorded.
func (p Physician) HasSubspecialty() bool {
	return p.Subspecialty != nil && strings.TrimSpace(*p.Subspecialty) != ""
}

// YearsExperience returns years since graduation as of now. Missing or
// future graduation years yield 0.
func (p Physician) YearsExperience(now time.Time) int {
	if p.GraduationYear == nil {
		return 0
	}
	years := now.Year() - *p.GraduationYear
	if years < 0 {
		return 0
	}
	return years
}

// ReputationMetric is one rating snapshot from a review source.
type ReputationMetric struct {
	Source      string    `json:"source" yaml:"source"`
	Value       float64   `json:"value" yaml:"value"` // 0-5 stars
	ReviewCount int       `json:"review_count" yaml:"review_count"`
	CapturedAt  time.Time `json:"captured_at" yaml:"captured_at"`
}

// Practice is the aggregate root for scoring. It owns its physicians and
// reputation metrics for the duration of a call.
type Practice struct {
	ID                string             `json:"id" yaml:"id"`
	Name              string             `json:"name" yaml:"name"`
	City              string             `json:"city" yaml:"city"`
	State             string             `json:"state" yaml:"state"`
	Zip               string             `json:"zip" yaml:"zip"`
	Lat               float64            `json:"lat" yaml:"lat"`
	Lng               float64            `json:"lng" yaml:"lng"`
	Physicians        []Physician        `json:"physicians,omitempty" yaml:"physicians,omitempty"`
	ReputationMetrics []ReputationMetric `json:"reputation_metrics,omitempty" yaml:"reputation_metrics,omitempty"`

	// OverheadRatio is operating cost divided by revenue, when known.
	OverheadRatio *float64 `json:"overhead_ratio,omitempty" yaml:"overhead_ratio,omitempty"`
	// MarketPosition is an externally supplied 0-100 market presence signal.
	MarketPosition *float64 `json:"market_position,omitempty" yaml:"market_position,omitempty"`
}
