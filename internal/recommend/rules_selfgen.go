package recommend

import (
	"fmt"
	"time"

	"github.com/loganlgraham/referralcrm-sub001/internal/milestone"
	"github.com/loganlgraham/referralcrm-sub001/internal/referral"
)

// Self-generated-variant thresholds. Brokerage leads cool fast, so the
// front of the funnel runs on a tighter clock than agent referrals.
const (
	selfAssignSLA         = 1 * time.Hour
	selfFirstContactSLA   = 4 * time.Hour
	selfNoteStall         = 48 * time.Hour
	selfConversationStall = 72 * time.Hour
)

// selfGeneratedRules is the threshold set for brokerage-generated
// leads: no sending side, no referral-fee payout.
type selfGeneratedRules struct{}

func (selfGeneratedRules) Origin() referral.Origin { return referral.OriginSelfGenerated }

func (selfGeneratedRules) Evaluate(in Input) []Recommendation {
	r := in.Referral
	now := in.Now
	var recs []Recommendation

	if !r.HasReceivingAgent {
		recs = append(recs, Recommendation{
			ID:       "assign-lead-agent",
			Title:    "Assign an agent to the lead",
			Message:  "A brokerage-generated lead is unassigned. These cool within the hour; hand it to an agent now.",
			Priority: PriorityUrgent,
			Category: CategoryAssignment,
			DueBy:    due(r.CreatedAt, selfAssignSLA),
			Metric:   fmt.Sprintf("%s since creation", age(now.Sub(r.CreatedAt))),
		})
	}

	if r.HasReceivingAgent && firstContactUnconfirmed(in) {
		base := r.CreatedAt
		if r.AgentAssignedAt != nil && !r.AgentAssignedAt.IsZero() {
			base = *r.AgentAssignedAt
		}
		recs = append(recs, Recommendation{
			ID:       "confirm-first-contact",
			Title:    "Confirm first contact with the lead",
			Message:  "The lead is assigned but no first contact is on record. The agent has four hours from assignment.",
			Priority: PriorityHigh,
			Category: CategoryEngagement,
			DueBy:    due(base, selfFirstContactSLA),
			Metric:   fmt.Sprintf("%s since assignment", age(now.Sub(base))),
		})
	}

	if r.HasReceivingAgent && r.Status != referral.StatusLost {
		if stale := noteStaleFor(r, now); stale >= selfNoteStall {
			recs = append(recs, Recommendation{
				ID:       "log-touchpoint",
				Title:    "Log a touchpoint note",
				Message:  "Nothing documented in 48 hours. Record the latest contact so the file reflects reality.",
				Priority: PriorityMedium,
				Category: CategoryCompliance,
				Metric:   fmt.Sprintf("%s since last note", age(stale)),
			})
		}
	}

	if r.Status == referral.StatusInCommunication && !r.StatusUpdatedAt.IsZero() &&
		now.Sub(r.StatusUpdatedAt) >= selfConversationStall {
		recs = append(recs, Recommendation{
			ID:       "revive-stalled-conversation",
			Title:    "Conversation has stalled",
			Message:  "In communication for 72+ hours with no movement. Nudge the agent to restart the conversation.",
			Priority: PriorityMedium,
			Category: CategoryEngagement,
			Metric:   fmt.Sprintf("%s without a status change", age(now.Sub(r.StatusUpdatedAt))),
		})
	}

	return recs
}

// firstContactUnconfirmed: no note on file and the pipeline has not
// reached In Communication, by milestone or by current status.
func firstContactUnconfirmed(in Input) bool {
	r := in.Referral
	if r.LastNoteAt() != nil {
		return false
	}
	if in.Milestones[milestone.InCommunication] != nil {
		return false
	}
	return !r.Status.AtLeast(referral.StatusInCommunication)
}
