package sladur

import (
	"time"

	"github.com/loganlgraham/referralcrm-sub001/internal/bizcal"
	"github.com/loganlgraham/referralcrm-sub001/internal/milestone"
	"github.com/loganlgraham/referralcrm-sub001/internal/referral"
)

// Duration chain keys, in pipeline order.
const (
	KeyCreationToPaired        = "creation_to_paired"
	KeyPairedToCommunication   = "paired_to_communication"
	KeyCommunicationToContract = "communication_to_contract"
	KeyContractToClose         = "contract_to_close"
	KeyCloseToPaid             = "close_to_paid"
)

// link describes one milestone-to-milestone span of the chain.
type link struct {
	key, label string
	from, to   milestone.Milestone // from == "" means the creation instant
	dealCycle  bool                // gated while the referral is pre-contract
}

var chain = []link{
	{KeyCreationToPaired, "Lead → Paired", "", milestone.Paired, false},
	{KeyPairedToCommunication, "Paired → In Communication", milestone.Paired, milestone.InCommunication, false},
	{KeyCommunicationToContract, "In Communication → Under Contract", milestone.InCommunication, milestone.UnderContract, false},
	{KeyContractToClose, "Under Contract → Closed", milestone.UnderContract, milestone.Closed, true},
	{KeyCloseToPaid, "Closed → Paid", milestone.Closed, milestone.Paid, true},
}

// Builder composes the milestone resolver output and the business
// calendar into the ordered duration chain.
type Builder struct {
	cal *bizcal.Calendar
}

// NewBuilder returns a Builder computing on the given calendar.
func NewBuilder(cal *bizcal.Calendar) *Builder {
	return &Builder{cal: cal}
}

// Build produces the duration chain for one referral snapshot.
//
// Deal-cycle spans (contract→close, close→paid) are forced pending
// while the referral sits in a pre-contract status, regardless of stale
// deal data: a prior attempt fell through and the new cycle has not
// produced fresh milestones. Stored carry-forward minutes then surface
// as history. Self-generated leads have no referral-fee payout, so
// close→paid is omitted for them.
func (b *Builder) Build(r *referral.Referral, ms milestone.Set) []Entry {
	preContract := !r.Status.AtLeast(referral.StatusUnderContract)

	entries := make([]Entry, 0, len(chain))
	for _, l := range chain {
		if l.key == KeyCloseToPaid && r.Origin == referral.OriginSelfGenerated {
			continue
		}

		var v Value
		if l.dealCycle && preContract {
			v = Pending()
		} else {
			v = b.span(r, ms, l)
		}
		if v.Kind == KindPending {
			if prev, ok := r.CarryForward[l.key]; ok {
				v = PendingWithHistory(prev)
			}
		}
		entries = append(entries, Entry{
			Key:       l.key,
			Label:     l.label,
			Value:     v,
			Formatted: v.Format(),
		})
	}
	return entries
}

// span computes one link's business minutes. Any missing endpoint or an
// inverted interval yields pending, never zero or a negative count.
func (b *Builder) span(r *referral.Referral, ms milestone.Set, l link) Value {
	var from *time.Time
	if l.from == "" {
		if !r.CreatedAt.IsZero() {
			t := r.CreatedAt
			from = &t
		}
	} else {
		from = ms[l.from]
	}
	to := ms[l.to]
	if from == nil || to == nil {
		return Pending()
	}
	minutes, ok := b.cal.BusinessMinutes(*from, *to)
	if !ok {
		return Pending()
	}
	return Known(minutes)
}
