// Package milestone resolves when a referral first reached each
// pipeline milestone, from the status audit log and the deal records.
//
// Resolution is first-occurrence and tolerant: zero or missing
// timestamps are treated as absent, unknown status codes match nothing,
// and nothing here errors. The resolver does not enforce that later
// milestones resolve to later instants; the duration chain guards
// against inverted intervals itself.
package milestone

import (
	"time"

	"github.com/loganlgraham/referralcrm-sub001/internal/referral"
)

// Milestone names a first-reached pipeline event.
type Milestone string

const (
	Paired          Milestone = "paired"
	InCommunication Milestone = "in_communication"
	UnderContract   Milestone = "under_contract"
	Closed          Milestone = "closed"
	Paid            Milestone = "paid"
)

// Set holds the resolved first-occurrence instant per milestone.
// A nil entry means the milestone has not been reached.
type Set map[Milestone]*time.Time

// ResolveAll resolves every milestone for one referral snapshot.
func ResolveAll(r *referral.Referral) Set {
	return Set{
		Paired:          Resolve(r, Paired),
		InCommunication: Resolve(r, InCommunication),
		UnderContract:   Resolve(r, UnderContract),
		Closed:          Resolve(r, Closed),
		Paid:            Resolve(r, Paid),
	}
}

// Resolve returns the instant the milestone was first reached, or nil.
func Resolve(r *referral.Referral, m Milestone) *time.Time {
	switch m {
	case Paired:
		return statusMilestone(r, referral.StatusPaired)
	case InCommunication:
		return statusMilestone(r, referral.StatusInCommunication)
	case UnderContract:
		return contractMilestone(r)
	case Closed:
		return closedMilestone(r)
	case Paid:
		return paidMilestone(r)
	}
	return nil
}

// statusMilestone scans the audit log for the first transition into
// target. When no audit entry exists but the referral currently sits in
// target, the status-updated instant stands in, then creation.
func statusMilestone(r *referral.Referral, target referral.Status) *time.Time {
	if at := auditFirst(r, string(target)); at != nil {
		return at
	}
	if r.Status != target {
		return nil
	}
	if !r.StatusUpdatedAt.IsZero() {
		return ptr(r.StatusUpdatedAt)
	}
	if !r.CreatedAt.IsZero() {
		return ptr(r.CreatedAt)
	}
	return nil
}

// contractMilestone: earliest creation instant among deals holding an
// executed contract. The minimum is taken across all qualifying deals
// as recorded, even when manual corrections put a later deal's creation
// before an earlier one's. Fallback chain: audit under_contract, audit
// paired, creation.
func contractMilestone(r *referral.Referral) *time.Time {
	var earliest *time.Time
	for i := range r.Deals {
		d := &r.Deals[i]
		if !d.Status.PostContract() || d.CreatedAt.IsZero() {
			continue
		}
		if earliest == nil || d.CreatedAt.Before(*earliest) {
			earliest = ptr(d.CreatedAt)
		}
	}
	if earliest != nil {
		return earliest
	}
	if at := auditFirst(r, string(referral.StatusUnderContract)); at != nil {
		return at
	}
	if at := auditFirst(r, string(referral.StatusPaired)); at != nil {
		return at
	}
	if !r.CreatedAt.IsZero() {
		return ptr(r.CreatedAt)
	}
	return nil
}

// closedMilestone: earliest last-update instant among settled deals,
// falling back to the audit closed transition.
func closedMilestone(r *referral.Referral) *time.Time {
	var earliest *time.Time
	for i := range r.Deals {
		d := &r.Deals[i]
		if !d.Status.Settled() || d.UpdatedAt.IsZero() {
			continue
		}
		if earliest == nil || d.UpdatedAt.Before(*earliest) {
			earliest = ptr(d.UpdatedAt)
		}
	}
	if earliest != nil {
		return earliest
	}
	return auditFirst(r, string(referral.StatusClosed))
}

// paidMilestone: earliest paid instant among paid deals. No fallback;
// payment exists only when a deal records it.
func paidMilestone(r *referral.Referral) *time.Time {
	var earliest *time.Time
	for i := range r.Deals {
		d := &r.Deals[i]
		if d.Status != referral.DealPaid || d.PaidAt == nil || d.PaidAt.IsZero() {
			continue
		}
		if earliest == nil || d.PaidAt.Before(*earliest) {
			earliest = ptr(*d.PaidAt)
		}
	}
	return earliest
}

// auditFirst returns the earliest status audit entry whose new value
// equals target. The log is append-only and timestamp-ordered, but the
// scan still takes the minimum in case of manual corrections.
func auditFirst(r *referral.Referral, target string) *time.Time {
	var earliest *time.Time
	for i := range r.Audit {
		e := &r.Audit[i]
		if e.Field != "status" || e.NewValue != target || e.At.IsZero() {
			continue
		}
		if earliest == nil || e.At.Before(*earliest) {
			earliest = ptr(e.At)
		}
	}
	return earliest
}

func ptr(t time.Time) *time.Time { return &t }
