package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is the in-memory Store twin, for tests and dry runs.
type MemStore struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

// RecordCycleReset implements Store.
func (m *MemStore) RecordCycleReset(referralID string, minutes map[string]int, at time.Time) ([]Entry, error) {
	if referralID == "" {
		return nil, fmt.Errorf("record cycle reset: referral id is empty")
	}
	keys := make([]string, 0, len(minutes))
	for k := range minutes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m.mu.Lock()
	defer m.mu.Unlock()
	added := make([]Entry, 0, len(keys))
	for _, k := range keys {
		e := Entry{
			ID:          uuid.NewString(),
			ReferralID:  referralID,
			DurationKey: k,
			Minutes:     minutes[k],
			RecordedAt:  at.UTC(),
		}
		m.entries = append(m.entries, e)
		added = append(added, e)
	}
	return added, nil
}

// CarryForward implements Store.
func (m *MemStore) CarryForward(referralID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int)
	for _, e := range m.entries {
		if e.ReferralID == referralID {
			out[e.DurationKey] = e.Minutes // insertion order: last write wins
		}
	}
	return out, nil
}

// History implements Store.
func (m *MemStore) History(referralID string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for _, e := range m.entries {
		if e.ReferralID == referralID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Close implements Store.
func (m *MemStore) Close() error { return nil }
