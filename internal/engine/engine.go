// Package engine wires the SLA pipeline end to end: milestone
// resolution → duration chain → recommendations → risk rating. One
// synchronous, allocation-only pass per referral; no I/O, no mutation
// of the snapshot, deterministic for identical (snapshot, now).
package engine

import (
	"time"

	"github.com/loganlgraham/referralcrm-sub001/internal/bizcal"
	"github.com/loganlgraham/referralcrm-sub001/internal/milestone"
	"github.com/loganlgraham/referralcrm-sub001/internal/recommend"
	"github.com/loganlgraham/referralcrm-sub001/internal/referral"
	"github.com/loganlgraham/referralcrm-sub001/internal/sladur"
)

// Report is the full evaluation output for one referral.
type Report struct {
	ReferralID      string                     `json:"referral_id"`
	EvaluatedAt     time.Time                  `json:"evaluated_at"`
	Durations       []sladur.Entry             `json:"durations"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Risk            recommend.RiskSummary      `json:"risk"`
}

// Engine evaluates referral snapshots against one business calendar.
// Safe for concurrent use; the only shared state is the calendar's
// read-mostly holiday cache.
type Engine struct {
	cal    *bizcal.Calendar
	series *sladur.Builder
}

// New returns an Engine computing on the given calendar.
func New(cal *bizcal.Calendar) *Engine {
	return &Engine{cal: cal, series: sladur.NewBuilder(cal)}
}

// Default returns an Engine on the production calendar.
func Default() *Engine { return New(bizcal.Default()) }

// Evaluate runs the full pipeline for one snapshot at the given instant.
func (e *Engine) Evaluate(r *referral.Referral, now time.Time) Report {
	ms := milestone.ResolveAll(r)
	durations := e.series.Build(r, ms)
	recs := recommend.Evaluate(recommend.Input{
		Referral:   r,
		Milestones: ms,
		Durations:  durations,
		Now:        now,
	})
	return Report{
		ReferralID:      r.ID,
		EvaluatedAt:     now,
		Durations:       durations,
		Recommendations: recs,
		Risk:            recommend.Summarize(recs),
	}
}
