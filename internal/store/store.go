// Package store persists carry-forward minutes across deal-cycle
// resets. The engine only ever reads these values off a snapshot; the
// surrounding system writes them here when a deal falls through and a
// new cycle begins.
package store

import "time"

// DefaultDBPath is the default relative path for the SQLite DB.
// Resolve against cwd; Open() creates the parent dir (.referralsla).
const DefaultDBPath = ".referralsla/referrals.db"

// Entry is one recorded carry-forward value.
type Entry struct {
	ID          string // uuid
	ReferralID  string
	DurationKey string // e.g. "contract_to_close"
	Minutes     int
	RecordedAt  time.Time
}

// Store is the carry-forward persistence facade. The CLI and any
// surrounding service use only this interface; the implementation is
// SQLite or in-memory.
type Store interface {
	// RecordCycleReset appends one entry per duration key. Called when
	// a deal falls through and the cycle restarts.
	RecordCycleReset(referralID string, minutes map[string]int, at time.Time) ([]Entry, error)

	// CarryForward returns the most recently recorded minutes per
	// duration key for a referral, in snapshot form.
	CarryForward(referralID string) (map[string]int, error)

	// History returns every recorded entry for a referral, oldest first.
	History(referralID string) ([]Entry, error)

	Close() error
}
