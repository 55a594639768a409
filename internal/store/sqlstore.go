package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS carry_forward (
	id           TEXT PRIMARY KEY,
	referral_id  TEXT NOT NULL,
	duration_key TEXT NOT NULL,
	minutes      INTEGER NOT NULL,
	recorded_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_carry_forward_referral
	ON carry_forward(referral_id, recorded_at);
`

// SQLStore implements Store with SQLite.
type SQLStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and applies the schema.
// Creates the parent directory (e.g. .referralsla) if needed.
func Open(path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error { return s.db.Close() }

// RecordCycleReset implements Store. Keys are written in sorted order
// so repeated resets produce a stable row order.
func (s *SQLStore) RecordCycleReset(referralID string, minutes map[string]int, at time.Time) ([]Entry, error) {
	if referralID == "" {
		return nil, fmt.Errorf("record cycle reset: referral id is empty")
	}
	keys := make([]string, 0, len(minutes))
	for k := range minutes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		e := Entry{
			ID:          uuid.NewString(),
			ReferralID:  referralID,
			DurationKey: k,
			Minutes:     minutes[k],
			RecordedAt:  at.UTC(),
		}
		_, err := tx.Exec(
			`INSERT INTO carry_forward (id, referral_id, duration_key, minutes, recorded_at)
			 VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.ReferralID, e.DurationKey, e.Minutes, e.RecordedAt.Format(time.RFC3339),
		)
		if err != nil {
			return nil, fmt.Errorf("insert carry_forward: %w", err)
		}
		entries = append(entries, e)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return entries, nil
}

// CarryForward implements Store: the latest recorded value per key.
func (s *SQLStore) CarryForward(referralID string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT duration_key, minutes FROM carry_forward
		 WHERE referral_id = ?
		 ORDER BY recorded_at ASC, rowid ASC`,
		referralID,
	)
	if err != nil {
		return nil, fmt.Errorf("query carry_forward: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var minutes int
		if err := rows.Scan(&key, &minutes); err != nil {
			return nil, fmt.Errorf("scan carry_forward: %w", err)
		}
		out[key] = minutes // ascending scan: last write per key wins
	}
	return out, rows.Err()
}

// History implements Store.
func (s *SQLStore) History(referralID string) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, referral_id, duration_key, minutes, recorded_at FROM carry_forward
		 WHERE referral_id = ?
		 ORDER BY recorded_at ASC, rowid ASC`,
		referralID,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var recorded string
		if err := rows.Scan(&e.ID, &e.ReferralID, &e.DurationKey, &e.Minutes, &recorded); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, recorded); err == nil {
			e.RecordedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
