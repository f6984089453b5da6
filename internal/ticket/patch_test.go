package ticket

import (
	"encoding/json"
	"testing"
)

func TestPatchMarshalOnlyChangedFields(t *testing.T) {
	b, err := json.Marshal(StartPatch())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(m) != 1 {
		t.Fatalf("expected only the status field, got %v", m)
	}
	if string(m["status"]) != `"In Progress"` {
		t.Fatalf("expected status %q, got %s", StatusInProgress, m["status"])
	}
}

func TestAcceptPatchEmitsExplicitNullReason(t *testing.T) {
	b, err := json.Marshal(AcceptPatch())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	raw, ok := m["rejected_reason"]
	if !ok {
		t.Fatalf("expected rejected_reason to be present, got %v", m)
	}
	if string(raw) != "null" {
		t.Fatalf("expected rejected_reason null, got %s", raw)
	}
	if string(m["accepted"]) != "true" {
		t.Fatalf("expected accepted true, got %s", m["accepted"])
	}
	if string(m["status"]) != `"Accepted"` {
		t.Fatalf("expected status %q, got %s", StatusAccepted, m["status"])
	}
}

func TestDeclinePatchCarriesReason(t *testing.T) {
	b, err := json.Marshal(DeclinePatch("customer unavailable"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if string(m["rejected_reason"]) != `"customer unavailable"` {
		t.Fatalf("expected reason, got %s", m["rejected_reason"])
	}
	if string(m["accepted"]) != "false" {
		t.Fatalf("expected accepted false, got %s", m["accepted"])
	}
}

func TestPatchApply(t *testing.T) {
	base := Ticket{
		ID:             "abc",
		TicketID:       "TCK-1",
		Status:         StatusDeclined,
		RejectedReason: "wrong area",
	}

	got := AcceptPatch().Apply(base)
	if got.Status != StatusAccepted || !got.Accepted {
		t.Fatalf("expected accepted ticket, got %+v", got)
	}
	if got.RejectedReason != "" {
		t.Fatalf("expected reason cleared, got %q", got.RejectedReason)
	}

	// Untouched fields survive.
	if got.ID != "abc" || got.TicketID != "TCK-1" {
		t.Fatalf("expected identity fields unchanged, got %+v", got)
	}

	got = DeclinePatch("no access").Apply(base)
	if got.Status != StatusDeclined || got.Accepted {
		t.Fatalf("expected declined ticket, got %+v", got)
	}
	if got.RejectedReason != "no access" {
		t.Fatalf("expected reason %q, got %q", "no access", got.RejectedReason)
	}
}

func TestPatchIsZero(t *testing.T) {
	if !(Patch{}).IsZero() {
		t.Fatalf("expected empty patch to be zero")
	}
	if StartPatch().IsZero() {
		t.Fatalf("expected start patch not to be zero")
	}
	if (Patch{ClearReason: true}).IsZero() {
		t.Fatalf("expected clear-reason patch not to be zero")
	}
}
