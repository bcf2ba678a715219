package negotiation

import "time"

const day = 24 * time.Hour

// Phase durations.
const (
	preparationDuration = 21 * day
	executionStep       = 14 * day
	firstFollowUp       = 30 * day
	secondFollowUp      = 90 * day
)

// Phase is one scheduled block of work.
type Phase struct {
	Name       string    `json:"name"`
	Duration   string    `json:"duration"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Activities []string  `json:"activities,omitempty"`
	SubPhases  []Phase   `json:"sub_phases,omitempty"`
}

// Checkpoint is a dated follow-up review.
type Checkpoint struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// Timeline is the phased negotiation schedule.
type Timeline struct {
	Preparation Phase        `json:"preparation"`
	Execution   Phase        `json:"execution"`
	FollowUps   []Checkpoint `json:"follow_ups"`
}

// BuildTimeline lays out three weeks of preparation starting at now, a
// 4-6 week execution split into three two-week sub-phases, and follow-up
// checkpoints 30 and 90 days after preparation ends.
func BuildTimeline(now time.Time) Timeline {
	prepEnd := now.Add(preparationDuration)

	names := []struct {
		name       string
		activities []string
	}{
		{"Initial proposal", []string{"Submit rate proposal with benchmark package", "Schedule first payer meeting"}},
		{"Negotiation rounds", []string{"Respond to counter-offers", "Escalate quality evidence as needed"}},
		{"Finalization", []string{"Agree on terms and effective date", "Review contract language"}},
	}
	subs := make([]Phase, len(names))
	start := prepEnd
	for i, n := range names {
		subs[i] = Phase{
			Name:       n.name,
			Duration:   "2 weeks",
			Start:      start,
			End:        start.Add(executionStep),
			Activities: n.activities,
		}
		start = subs[i].End
	}

	return Timeline{
		Preparation: Phase{
			Name:     "Preparation",
			Duration: "3 weeks",
			Start:    now,
			End:      prepEnd,
			Activities: []string{
				"Gather claims and reimbursement history",
				"Assemble market benchmarks",
				"Document quality and reputation metrics",
			},
		},
		Execution: Phase{
			Name:      "Execution",
			Duration:  "4-6 weeks",
			Start:     prepEnd,
			End:       start,
			SubPhases: subs,
		},
		FollowUps: []Checkpoint{
			{Name: "30-day implementation review", Date: prepEnd.Add(firstFollowUp)},
			{Name: "90-day performance review", Date: prepEnd.Add(secondFollowUp)},
		},
	}
}
