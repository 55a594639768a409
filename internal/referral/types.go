// Package referral defines the immutable case snapshot the SLA engine
// evaluates: pipeline and deal status enums, the append-only audit log,
// deals, notes, and carry-forward minutes.
//
// Everything here is input. The engine never mutates a snapshot;
// carry-forward values are written by the surrounding system at cycle
// reset, never by this module.
package referral

import "time"

// Status is the referral's coarse-grained pipeline stage.
type Status string

const (
	StatusNew             Status = "new"
	StatusPaired          Status = "paired"
	StatusInCommunication Status = "in_communication"
	StatusShowing         Status = "showing"
	StatusUnderContract   Status = "under_contract"
	StatusClosed          Status = "closed"
	StatusPaid            Status = "paid"
	StatusLost            Status = "lost" // terminal, off-pipeline
)

// statusRank orders the pipeline. Lost and unknown codes rank -1 so
// they never count as having reached a stage.
var statusRank = map[Status]int{
	StatusNew:             0,
	StatusPaired:          1,
	StatusInCommunication: 2,
	StatusShowing:         3,
	StatusUnderContract:   4,
	StatusClosed:          5,
	StatusPaid:            6,
}

// Rank returns the pipeline position of s, or -1 for lost/unknown.
func (s Status) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether s has reached stage min in pipeline order.
func (s Status) AtLeast(min Status) bool {
	r := s.Rank()
	return r >= 0 && r >= min.Rank()
}

// DealStatus is one deal's position in the contract-to-payout lifecycle.
type DealStatus string

const (
	DealOfferDrafted  DealStatus = "offer_drafted"
	DealUnderContract DealStatus = "under_contract"
	DealClosing       DealStatus = "closing"
	DealClosed        DealStatus = "closed"
	DealPaymentSent   DealStatus = "payment_sent"
	DealPaid          DealStatus = "paid"
	DealFellThrough   DealStatus = "fell_through" // terminated attempt
)

// PostContract reports whether the deal has an executed contract.
// Unknown codes report false (treated as "no match", not an error).
func (d DealStatus) PostContract() bool {
	switch d {
	case DealUnderContract, DealClosing, DealClosed, DealPaymentSent, DealPaid:
		return true
	}
	return false
}

// Settled reports whether the deal reached closing or beyond.
func (d DealStatus) Settled() bool {
	switch d {
	case DealClosed, DealPaymentSent, DealPaid:
		return true
	}
	return false
}

// Active reports whether the deal still counts as live progress.
func (d DealStatus) Active() bool { return d != DealFellThrough }

// Origin tags which workflow variant created the referral.
type Origin string

const (
	// OriginAgentReferral is the standard variant: a referral received
	// from a sending agent, with a referral fee paid after closing.
	OriginAgentReferral Origin = "agent_referral"
	// OriginSelfGenerated is a brokerage-generated lead: no sending
	// side, no referral-fee payout step.
	OriginSelfGenerated Origin = "self_generated"
)

// AuditEntry is one append-only field change. Only Field == "status"
// entries are consulted by the milestone resolver.
type AuditEntry struct {
	Field    string    `json:"field"`
	NewValue string    `json:"new_value"`
	At       time.Time `json:"at"`
}

// Deal is one contract-to-payout attempt. A referral accumulates deals
// across fallthroughs; only non-terminated ones count as active.
type Deal struct {
	Status    DealStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

// Note records a human touchpoint; only its instant matters here.
type Note struct {
	CreatedAt time.Time `json:"created_at"`
}

// Referral is the case snapshot the engine evaluates.
type Referral struct {
	ID                string         `json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	Status            Status         `json:"status"`
	StatusUpdatedAt   time.Time      `json:"status_updated_at"`
	Origin            Origin         `json:"origin"`
	HasReceivingAgent bool           `json:"has_receiving_agent"`
	AgentAssignedAt   *time.Time     `json:"agent_assigned_at,omitempty"`
	LostReason        string         `json:"lost_reason,omitempty"`
	Notes             []Note         `json:"notes,omitempty"`
	Deals             []Deal         `json:"deals,omitempty"`
	Audit             []AuditEntry   `json:"audit,omitempty"`
	CarryForward      map[string]int `json:"carry_forward,omitempty"` // minutes by duration key
}

// LastNoteAt returns the most recent note instant, or nil when no
// notes exist.
func (r *Referral) LastNoteAt() *time.Time {
	var last *time.Time
	for i := range r.Notes {
		at := r.Notes[i].CreatedAt
		if at.IsZero() {
			continue
		}
		if last == nil || at.After(*last) {
			t := at
			last = &t
		}
	}
	return last
}
