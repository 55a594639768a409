// Package recommend evaluates a referral snapshot against fixed SLA
// thresholds and emits prioritized proactive-outreach recommendations,
// plus the aggregate risk rating derived from them.
//
// Rule sets are origin-specific strategies; both are deterministic for
// identical (input, now) and emit each recommendation id at most once
// per evaluation.
package recommend

import (
	"sort"
	"time"

	"github.com/loganlgraham/referralcrm-sub001/internal/milestone"
	"github.com/loganlgraham/referralcrm-sub001/internal/referral"
	"github.com/loganlgraham/referralcrm-sub001/internal/sladur"
)

// Priority orders recommendations for the operator task list.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort position of p; unknown priorities sink last.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Category groups recommendations for display filters.
type Category string

const (
	CategoryAssignment Category = "assignment"
	CategoryEngagement Category = "engagement"
	CategoryPipeline   Category = "pipeline"
	CategoryPayment    Category = "payment"
	CategoryCompliance Category = "compliance"
)

// Recommendation is one proactive-outreach action. ID is stable across
// evaluations for dedup and display.
type Recommendation struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Priority Priority   `json:"priority"`
	Category Category   `json:"category"`
	DueBy    *time.Time `json:"due_by,omitempty"`
	Metric   string     `json:"metric,omitempty"` // supporting figure, e.g. "26h since creation"
}

// Input is the fully materialized evaluation context.
type Input struct {
	Referral   *referral.Referral
	Milestones milestone.Set
	Durations  []sladur.Entry
	Now        time.Time
}

// RuleSet is one origin's threshold strategy.
type RuleSet interface {
	// Origin identifies which workflow variant the rules apply to.
	Origin() referral.Origin
	// Evaluate returns raw recommendations in rule order.
	Evaluate(in Input) []Recommendation
}

// ForOrigin selects the rule set for a workflow variant. Unknown
// origins get the standard rules.
func ForOrigin(o referral.Origin) RuleSet {
	if o == referral.OriginSelfGenerated {
		return selfGeneratedRules{}
	}
	return standardRules{}
}

// Evaluate runs the origin's rule set, drops duplicate ids, and sorts
// by priority, then soonest due-by (nil last), then rule order.
func Evaluate(in Input) []Recommendation {
	raw := ForOrigin(in.Referral.Origin).Evaluate(in)

	seen := make(map[string]bool, len(raw))
	recs := raw[:0]
	for _, rec := range raw {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if a, b := recs[i].Priority.Rank(), recs[j].Priority.Rank(); a != b {
			return a < b
		}
		di, dj := recs[i].DueBy, recs[j].DueBy
		switch {
		case di == nil && dj == nil:
			return false // keep rule order
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})
	return recs
}

// due returns base+d as a due-by pointer.
func due(base time.Time, d time.Duration) *time.Time {
	t := base.Add(d)
	return &t
}

// lastTouchAt is the most recent human touchpoint: the later of the
// last note and the last status change.
func lastTouchAt(r *referral.Referral) time.Time {
	touch := r.StatusUpdatedAt
	if touch.IsZero() {
		touch = r.CreatedAt
	}
	if note := r.LastNoteAt(); note != nil && note.After(touch) {
		touch = *note
	}
	return touch
}

// noteStaleFor reports how long the referral has gone without a note,
// measured from creation when no note exists.
func noteStaleFor(r *referral.Referral, now time.Time) time.Duration {
	if note := r.LastNoteAt(); note != nil {
		return now.Sub(*note)
	}
	return now.Sub(r.CreatedAt)
}
