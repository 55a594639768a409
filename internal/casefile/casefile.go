// Package casefile loads referral snapshots from YAML or JSON files.
//
// Parsing is tolerant by design: unparseable or missing timestamps
// become absent instants and unknown status codes pass through
// untouched, so the engine can degrade them to "no match" instead of
// failing the whole file.
package casefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/loganlgraham/referralcrm-sub001/internal/referral"
)

// doc is the on-disk shape. Timestamps stay strings here so a bad one
// degrades to an absent instant instead of a decode error.
type doc struct {
	ID                string         `json:"id" yaml:"id"`
	CreatedAt         string         `json:"created_at" yaml:"created_at"`
	Status            string         `json:"status" yaml:"status"`
	StatusUpdatedAt   string         `json:"status_updated_at" yaml:"status_updated_at"`
	Origin            string         `json:"origin" yaml:"origin"`
	HasReceivingAgent bool           `json:"has_receiving_agent" yaml:"has_receiving_agent"`
	AgentAssignedAt   string         `json:"agent_assigned_at" yaml:"agent_assigned_at"`
	LostReason        string         `json:"lost_reason" yaml:"lost_reason"`
	Notes             []noteDoc      `json:"notes" yaml:"notes"`
	Deals             []dealDoc      `json:"deals" yaml:"deals"`
	Audit             []auditDoc     `json:"audit" yaml:"audit"`
	CarryForward      map[string]int `json:"carry_forward" yaml:"carry_forward"`
}

type noteDoc struct {
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

type dealDoc struct {
	Status    string `json:"status" yaml:"status"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	UpdatedAt string `json:"updated_at" yaml:"updated_at"`
	PaidAt    string `json:"paid_at" yaml:"paid_at"`
}

type auditDoc struct {
	Field    string `json:"field" yaml:"field"`
	NewValue string `json:"new_value" yaml:"new_value"`
	At       string `json:"at" yaml:"at"`
}

// Load reads one snapshot file. YAML for .yaml/.yml, JSON otherwise.
func Load(path string) (*referral.Referral, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseYAML decodes a YAML snapshot.
func ParseYAML(data []byte) (*referral.Referral, error) {
	var d doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode yaml case: %w", err)
	}
	return d.toReferral(), nil
}

// ParseJSON decodes a JSON snapshot.
func ParseJSON(data []byte) (*referral.Referral, error) {
	var d doc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode json case: %w", err)
	}
	return d.toReferral(), nil
}

func (d *doc) toReferral() *referral.Referral {
	r := &referral.Referral{
		ID:                d.ID,
		CreatedAt:         instant(d.CreatedAt),
		Status:            referral.Status(d.Status),
		StatusUpdatedAt:   instant(d.StatusUpdatedAt),
		Origin:            referral.Origin(d.Origin),
		HasReceivingAgent: d.HasReceivingAgent,
		AgentAssignedAt:   optInstant(d.AgentAssignedAt),
		LostReason:        d.LostReason,
		CarryForward:      d.CarryForward,
	}
	for _, n := range d.Notes {
		r.Notes = append(r.Notes, referral.Note{CreatedAt: instant(n.CreatedAt)})
	}
	for _, dl := range d.Deals {
		r.Deals = append(r.Deals, referral.Deal{
			Status:    referral.DealStatus(dl.Status),
			CreatedAt: instant(dl.CreatedAt),
			UpdatedAt: instant(dl.UpdatedAt),
			PaidAt:    optInstant(dl.PaidAt),
		})
	}
	for _, a := range d.Audit {
		r.Audit = append(r.Audit, referral.AuditEntry{
			Field:    a.Field,
			NewValue: a.NewValue,
			At:       instant(a.At),
		})
	}
	return r
}

// instant parses an RFC3339 timestamp; anything else is the zero
// instant, which the engine treats as absent.
func instant(s string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// optInstant is instant for optional fields: absent stays nil.
func optInstant(s string) *time.Time {
	t := instant(s)
	if t.IsZero() {
		return nil
	}
	return &t
}
