package milestone

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/loganlgraham/referralcrm-sub001/internal/referral"
)

var t0 = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

func min(m int) time.Time { return t0.Add(time.Duration(m) * time.Minute) }

func statusAudit(value string, at time.Time) referral.AuditEntry {
	return referral.AuditEntry{Field: "status", NewValue: value, At: at}
}

func TestResolve_StatusMilestoneFromAudit(t *testing.T) {
	r := &referral.Referral{
		CreatedAt: t0,
		Status:    referral.StatusInCommunication,
		Audit: []referral.AuditEntry{
			statusAudit("paired", min(30)),
			statusAudit("in_communication", min(90)),
		},
	}
	if got := Resolve(r, Paired); got == nil || !got.Equal(min(30)) {
		t.Errorf("Paired = %v, want %v", got, min(30))
	}
	if got := Resolve(r, InCommunication); got == nil || !got.Equal(min(90)) {
		t.Errorf("InCommunication = %v, want %v", got, min(90))
	}
}

func TestResolve_StatusMilestoneFirstOccurrenceWins(t *testing.T) {
	// A corrected log can repeat a transition; the earliest instant wins.
	r := &referral.Referral{
		CreatedAt: t0,
		Status:    referral.StatusPaired,
		Audit: []referral.AuditEntry{
			statusAudit("paired", min(120)),
			statusAudit("paired", min(15)),
		},
	}
	if got := Resolve(r, Paired); got == nil || !got.Equal(min(15)) {
		t.Errorf("Paired = %v, want %v", got, min(15))
	}
}

func TestResolve_StatusFallbackToStatusUpdatedAt(t *testing.T) {
	r := &referral.Referral{
		CreatedAt:       t0,
		Status:          referral.StatusPaired,
		StatusUpdatedAt: min(45),
	}
	if got := Resolve(r, Paired); got == nil || !got.Equal(min(45)) {
		t.Errorf("Paired = %v, want %v (status-updated fallback)", got, min(45))
	}
	if got := Resolve(r, InCommunication); got != nil {
		t.Errorf("InCommunication = %v, want nil (never reached)", got)
	}
}

func TestResolve_StatusFallbackToCreation(t *testing.T) {
	r := &referral.Referral{CreatedAt: t0, Status: referral.StatusPaired}
	if got := Resolve(r, Paired); got == nil || !got.Equal(t0) {
		t.Errorf("Paired = %v, want creation %v", got, t0)
	}
}

func TestResolve_ContractFromEarliestQualifyingDeal(t *testing.T) {
	// The second deal's creation precedes the first's (manual
	// correction); the minimum across qualifying deals is preserved.
	r := &referral.Referral{
		CreatedAt: t0,
		Status:    referral.StatusUnderContract,
		Deals: []referral.Deal{
			{Status: referral.DealUnderContract, CreatedAt: min(500)},
			{Status: referral.DealClosing, CreatedAt: min(200)},
			{Status: referral.DealFellThrough, CreatedAt: min(10)}, // not post-contract
			{Status: referral.DealOfferDrafted, CreatedAt: min(5)}, // not post-contract
		},
	}
	if got := Resolve(r, UnderContract); got == nil || !got.Equal(min(200)) {
		t.Errorf("UnderContract = %v, want %v", got, min(200))
	}
}

func TestResolve_ContractFallbackChain(t *testing.T) {
	audit := []referral.AuditEntry{
		statusAudit("paired", min(30)),
		statusAudit("under_contract", min(300)),
	}
	cases := []struct {
		name string
		r    *referral.Referral
		want time.Time
	}{
		{
			"audit under_contract",
			&referral.Referral{CreatedAt: t0, Status: referral.StatusUnderContract, Audit: audit},
			min(300),
		},
		{
			"audit paired",
			&referral.Referral{CreatedAt: t0, Status: referral.StatusUnderContract, Audit: audit[:1]},
			min(30),
		},
		{
			"creation",
			&referral.Referral{CreatedAt: t0, Status: referral.StatusUnderContract},
			t0,
		},
	}
	for _, tc := range cases {
		if got := Resolve(tc.r, UnderContract); got == nil || !got.Equal(tc.want) {
			t.Errorf("%s: UnderContract = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestResolve_ClosedFromSettledDeals(t *testing.T) {
	r := &referral.Referral{
		CreatedAt: t0,
		Status:    referral.StatusClosed,
		Deals: []referral.Deal{
			{Status: referral.DealPaymentSent, CreatedAt: min(100), UpdatedAt: min(900)},
			{Status: referral.DealClosed, CreatedAt: min(150), UpdatedAt: min(800)},
			{Status: referral.DealUnderContract, CreatedAt: min(50), UpdatedAt: min(60)}, // not settled
		},
	}
	if got := Resolve(r, Closed); got == nil || !got.Equal(min(800)) {
		t.Errorf("Closed = %v, want %v", got, min(800))
	}
}

func TestResolve_ClosedAuditFallbackOnly(t *testing.T) {
	r := &referral.Referral{
		CreatedAt:       t0,
		Status:          referral.StatusClosed,
		StatusUpdatedAt: min(999),
		Audit:           []referral.AuditEntry{statusAudit("closed", min(700))},
	}
	if got := Resolve(r, Closed); got == nil || !got.Equal(min(700)) {
		t.Errorf("Closed = %v, want %v", got, min(700))
	}
	// No audit entry and no settled deal: closed stays unresolved even
	// though the current status says closed.
	bare := &referral.Referral{CreatedAt: t0, Status: referral.StatusClosed, StatusUpdatedAt: min(999)}
	if got := Resolve(bare, Closed); got != nil {
		t.Errorf("Closed = %v, want nil without audit or deals", got)
	}
}

func TestResolve_PaidNeedsPaidInstant(t *testing.T) {
	paidAt := min(1200)
	r := &referral.Referral{
		CreatedAt: t0,
		Status:    referral.StatusPaid,
		Deals: []referral.Deal{
			{Status: referral.DealPaid, CreatedAt: min(100), UpdatedAt: min(1100), PaidAt: &paidAt},
			{Status: referral.DealPaid, CreatedAt: min(100), UpdatedAt: min(1100)}, // no PaidAt
		},
	}
	if got := Resolve(r, Paid); got == nil || !got.Equal(paidAt) {
		t.Errorf("Paid = %v, want %v", got, paidAt)
	}
	r.Deals[0].PaidAt = nil
	if got := Resolve(r, Paid); got != nil {
		t.Errorf("Paid = %v, want nil when no deal records a paid instant", got)
	}
}

func TestResolve_UnknownValuesMatchNothing(t *testing.T) {
	r := &referral.Referral{
		CreatedAt: t0,
		Status:    referral.Status("escalated_to_mars"),
		Audit:     []referral.AuditEntry{statusAudit("warp_drive", min(10))},
		Deals:     []referral.Deal{{Status: referral.DealStatus("quantum"), CreatedAt: min(5)}},
	}
	if got := Resolve(r, Paired); got != nil {
		t.Errorf("Paired = %v, want nil", got)
	}
	if got := Resolve(r, Closed); got != nil {
		t.Errorf("Closed = %v, want nil", got)
	}
	if got := Resolve(r, Milestone("bogus")); got != nil {
		t.Errorf("bogus milestone = %v, want nil", got)
	}
}

func TestResolveAll(t *testing.T) {
	paidAt := min(2000)
	r := &referral.Referral{
		CreatedAt: t0,
		Status:    referral.StatusPaid,
		Audit: []referral.AuditEntry{
			statusAudit("paired", min(30)),
			statusAudit("in_communication", min(90)),
		},
		Deals: []referral.Deal{
			{Status: referral.DealPaid, CreatedAt: min(400), UpdatedAt: min(1500), PaidAt: &paidAt},
		},
	}
	got := ResolveAll(r)
	want := Set{
		Paired:          ptr(min(30)),
		InCommunication: ptr(min(90)),
		UnderContract:   ptr(min(400)),
		Closed:          ptr(min(1500)),
		Paid:            ptr(min(2000)),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveAll mismatch (-want +got):\n%s", diff)
	}
}
