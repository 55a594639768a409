// Package sladur builds the ordered business-time duration chain
// between a referral's pipeline milestones.
package sladur

import "fmt"

// Kind tags a duration value: known, pending with no history, or
// pending with a carry-forward value from a prior deal cycle. Keeping
// the three cases explicit stops a pending duration from ever
// collapsing into a zero.
type Kind int

const (
	KindKnown Kind = iota
	KindPending
	KindPendingWithHistory
)

// Value is a tagged duration variant. Minutes is meaningful only for
// KindKnown, PrevMinutes only for KindPendingWithHistory.
type Value struct {
	Kind        Kind `json:"kind"`
	Minutes     int  `json:"minutes,omitempty"`
	PrevMinutes int  `json:"prev_minutes,omitempty"`
}

// Known returns a resolved duration of m business-minutes.
func Known(m int) Value { return Value{Kind: KindKnown, Minutes: m} }

// Pending returns an unreached duration with no historical value.
func Pending() Value { return Value{Kind: KindPending} }

// PendingWithHistory returns an unreached duration carrying the minutes
// from a prior cycle for display.
func PendingWithHistory(prev int) Value {
	return Value{Kind: KindPendingWithHistory, PrevMinutes: prev}
}

// IsKnown reports whether the duration resolved to actual minutes.
func (v Value) IsKnown() bool { return v.Kind == KindKnown }

// Format renders the value for an operator: "3h 25m", "Pending", or
// "Pending (prev 3h 25m)".
func (v Value) Format() string {
	switch v.Kind {
	case KindKnown:
		return formatMinutes(v.Minutes)
	case KindPendingWithHistory:
		return fmt.Sprintf("Pending (prev %s)", formatMinutes(v.PrevMinutes))
	default:
		return "Pending"
	}
}

// formatMinutes renders business-minutes as "Xh Ym" / "Ym".
func formatMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}

// Entry is one named link of the duration chain.
type Entry struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Value     Value  `json:"value"`
	Formatted string `json:"formatted"`
}
