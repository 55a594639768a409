package casefile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/loganlgraham/referralcrm-sub001/internal/referral"
)

const yamlCase = `
id: ref-42
created_at: 2025-03-03T10:00:00-07:00
status: in_communication
status_updated_at: 2025-03-03T11:30:00-07:00
origin: agent_referral
has_receiving_agent: true
notes:
  - created_at: 2025-03-04T09:15:00-07:00
deals:
  - status: fell_through
    created_at: 2025-03-10T12:00:00-07:00
    updated_at: 2025-03-20T12:00:00-07:00
audit:
  - field: status
    new_value: paired
    at: 2025-03-03T10:30:00-07:00
  - field: notes
    new_value: "called client"
    at: not-a-timestamp
carry_forward:
  contract_to_close: 480
`

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	if err := os.WriteFile(path, []byte(yamlCase), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.ID != "ref-42" {
		t.Errorf("ID = %q, want ref-42", r.ID)
	}
	if r.Status != referral.StatusInCommunication {
		t.Errorf("Status = %q, want in_communication", r.Status)
	}
	if !r.HasReceivingAgent {
		t.Error("HasReceivingAgent = false, want true")
	}
	if len(r.Notes) != 1 || r.Notes[0].CreatedAt.IsZero() {
		t.Errorf("Notes = %+v, want one dated note", r.Notes)
	}
	if len(r.Deals) != 1 || r.Deals[0].Status != referral.DealFellThrough {
		t.Errorf("Deals = %+v, want one fell_through deal", r.Deals)
	}
	if r.Deals[0].PaidAt != nil {
		t.Errorf("PaidAt = %v, want nil when absent", r.Deals[0].PaidAt)
	}
	if got := r.CarryForward["contract_to_close"]; got != 480 {
		t.Errorf("carry_forward = %d, want 480", got)
	}
	// The malformed audit timestamp degrades to absent, not an error.
	if !r.Audit[1].At.IsZero() {
		t.Errorf("Audit[1].At = %v, want zero for unparseable timestamp", r.Audit[1].At)
	}
	want := time.Date(2025, time.March, 3, 10, 30, 0, 0, time.FixedZone("", -7*3600))
	if !r.Audit[0].At.Equal(want) {
		t.Errorf("Audit[0].At = %v, want %v", r.Audit[0].At, want)
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"id": "ref-7",
		"created_at": "2025-03-03T10:00:00Z",
		"status": "new",
		"origin": "self_generated",
		"agent_assigned_at": "2025-03-03T10:20:00Z"
	}`)
	r, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.Origin != referral.OriginSelfGenerated {
		t.Errorf("Origin = %q, want self_generated", r.Origin)
	}
	if r.AgentAssignedAt == nil {
		t.Fatal("AgentAssignedAt = nil, want parsed instant")
	}
	if r.StatusUpdatedAt != (time.Time{}) {
		t.Errorf("StatusUpdatedAt = %v, want zero when omitted", r.StatusUpdatedAt)
	}
}

func TestParseYAML_UnknownStatusPassesThrough(t *testing.T) {
	r, err := ParseYAML([]byte("id: x\nstatus: teleported\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if r.Status != referral.Status("teleported") {
		t.Errorf("Status = %q, want raw pass-through", r.Status)
	}
	if r.Status.Rank() != -1 {
		t.Errorf("Rank = %d, want -1 for unknown status", r.Status.Rank())
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Error("ParseJSON on malformed input: err = nil, want error")
	}
}
