package recommend

import (
	"fmt"
	"time"

	"github.com/loganlgraham/referralcrm-sub001/internal/milestone"
	"github.com/loganlgraham/referralcrm-sub001/internal/referral"
)

// Standard-variant thresholds (agent referrals).
const (
	stdAssignSLA        = 2 * time.Hour
	stdNewStatusSLA     = 2 * time.Hour
	stdPairedSilence    = 24 * time.Hour
	stdTouchpointStall  = 72 * time.Hour
	stdNoteStall        = 48 * time.Hour
	stdContractSLA      = 14 * 24 * time.Hour
	stdClosingSLA       = 45 * 24 * time.Hour
	stdPaymentSLA       = 10 * 24 * time.Hour
	stdLostReasonWindow = 24 * time.Hour
)

// standardRules is the threshold set for referrals received from a
// sending agent.
type standardRules struct{}

func (standardRules) Origin() referral.Origin { return referral.OriginAgentReferral }

func (standardRules) Evaluate(in Input) []Recommendation {
	r := in.Referral
	now := in.Now
	var recs []Recommendation

	if !r.HasReceivingAgent {
		recs = append(recs, Recommendation{
			ID:       "assign-receiving-agent",
			Title:    "Assign a receiving agent",
			Message:  "This referral has no receiving agent. Pair it so the SLA clock stops running against the brokerage.",
			Priority: PriorityUrgent,
			Category: CategoryAssignment,
			DueBy:    due(r.CreatedAt, stdAssignSLA),
			Metric:   fmt.Sprintf("%s since creation", age(now.Sub(r.CreatedAt))),
		})
	}

	if r.HasReceivingAgent && r.Status == referral.StatusNew && now.Sub(r.CreatedAt) > stdNewStatusSLA {
		recs = append(recs, Recommendation{
			ID:       "advance-new-referral",
			Title:    "Move the referral out of New",
			Message:  "The referral is assigned but still sits in New past the 2-hour SLA. Confirm the agent has accepted it.",
			Priority: PriorityHigh,
			Category: CategoryPipeline,
			Metric:   fmt.Sprintf("%s in New", age(now.Sub(r.CreatedAt))),
		})
	}

	if r.Status == referral.StatusPaired && in.Milestones[milestone.InCommunication] == nil {
		pairedAt := r.StatusUpdatedAt
		if at := in.Milestones[milestone.Paired]; at != nil {
			pairedAt = *at
		}
		if !pairedAt.IsZero() && now.Sub(pairedAt) >= stdPairedSilence {
			recs = append(recs, Recommendation{
				ID:       "start-conversation",
				Title:    "No conversation since pairing",
				Message:  "Paired over 24 hours with no communication milestone logged. Get the agent and client talking.",
				Priority: PriorityHigh,
				Category: CategoryEngagement,
				Metric:   fmt.Sprintf("%s since pairing", age(now.Sub(pairedAt))),
			})
		} else {
			recs = append(recs, Recommendation{
				ID:       "schedule-intro-call",
				Title:    "Schedule the introduction call",
				Message:  "No communication milestone logged yet. Confirm the intro call is on the calendar.",
				Priority: PriorityMedium,
				Category: CategoryEngagement,
			})
		}
	}

	houseHunting := r.Status == referral.StatusInCommunication || r.Status == referral.StatusShowing
	if houseHunting {
		if touch := lastTouchAt(r); now.Sub(touch) >= stdTouchpointStall {
			recs = append(recs, Recommendation{
				ID:       "re-engage-client",
				Title:    "Re-engage the client",
				Message:  "No touchpoint in three or more days while actively house-hunting. Check in before the lead cools.",
				Priority: PriorityMedium,
				Category: CategoryEngagement,
				Metric:   fmt.Sprintf("%s since last touchpoint", age(now.Sub(touch))),
			})
		}
		if stale := noteStaleFor(r, now); stale >= stdNoteStall {
			recs = append(recs, Recommendation{
				ID:       "log-touchpoint",
				Title:    "Log a touchpoint note",
				Message:  "Nothing documented in 48 hours. Record the latest contact so the file reflects reality.",
				Priority: PriorityLow,
				Category: CategoryCompliance,
				Metric:   fmt.Sprintf("%s since last note", age(stale)),
			})
		}
		commAt := r.StatusUpdatedAt
		if at := in.Milestones[milestone.InCommunication]; at != nil {
			commAt = *at
		}
		if in.Milestones[milestone.UnderContract] == nil && !commAt.IsZero() && now.Sub(commAt) >= stdContractSLA {
			recs = append(recs, Recommendation{
				ID:       "push-toward-contract",
				Title:    "Two weeks hunting without a contract",
				Message:  "Active house-hunting has gone 14+ days without an executed contract. Review fit and urgency with the agent.",
				Priority: PriorityMedium,
				Category: CategoryPipeline,
				Metric:   fmt.Sprintf("%s in communication", age(now.Sub(commAt))),
			})
		}
	}

	if r.Status == referral.StatusUnderContract && in.Milestones[milestone.Closed] == nil {
		if at := in.Milestones[milestone.UnderContract]; at != nil && now.Sub(*at) >= stdClosingSLA {
			recs = append(recs, Recommendation{
				ID:       "chase-closing",
				Title:    "Contract aging without a closing",
				Message:  "Under contract 45+ days with no closing recorded. Confirm the transaction is still on schedule.",
				Priority: PriorityHigh,
				Category: CategoryPipeline,
				Metric:   fmt.Sprintf("%s under contract", age(now.Sub(*at))),
			})
		}
	}

	if r.Status == referral.StatusClosed && in.Milestones[milestone.Paid] == nil {
		if at := in.Milestones[milestone.Closed]; at != nil && now.Sub(*at) >= stdPaymentSLA {
			recs = append(recs, Recommendation{
				ID:       "confirm-referral-fee",
				Title:    "Referral fee not confirmed",
				Message:  "Closed 10+ days ago with no payment confirmation. Follow up on the referral fee.",
				Priority: PriorityMedium,
				Category: CategoryPayment,
				Metric:   fmt.Sprintf("%s since closing", age(now.Sub(*at))),
			})
		}
	}

	if r.Status == referral.StatusLost && r.LostReason == "" {
		lostAt := r.StatusUpdatedAt
		if !lostAt.IsZero() && now.Sub(lostAt) >= stdLostReasonWindow {
			recs = append(recs, Recommendation{
				ID:       "document-lost-reason",
				Title:    "Document why the referral was lost",
				Message:  "The referral was marked lost over 24 hours ago with no reason recorded.",
				Priority: PriorityMedium,
				Category: CategoryCompliance,
				Metric:   fmt.Sprintf("%s since marked lost", age(now.Sub(lostAt))),
			})
		}
	}

	return recs
}

// age renders an elapsed wall-clock duration as "26h" or "16d" for
// metric strings. Whole units keep the output stable across runs with
// the same now.
func age(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	if hours < 48 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dd", hours/24)
}
