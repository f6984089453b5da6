package ticket

import "encoding/json"

// Patch is the partial update sent to PATCH /tickets/{id}. Only fields that
// actually changed are present on the wire. ClearReason emits an explicit
// rejected_reason null so the server drops a stale decline reason.
type Patch struct {
	Accepted    *bool
	Status      *string
	Reason      *string
	ClearReason bool
}

func (p Patch) IsZero() bool {
	return p.Accepted == nil && p.Status == nil && p.Reason == nil && !p.ClearReason
}

func (p Patch) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 3)
	if p.Accepted != nil {
		m["accepted"] = *p.Accepted
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	switch {
	case p.ClearReason:
		m["rejected_reason"] = nil
	case p.Reason != nil:
		m["rejected_reason"] = *p.Reason
	}
	return json.Marshal(m)
}

// Apply merges the patch into t and returns the result. Both the in-memory
// store and the optimistic local apply after a successful server update go
// through here.
func (p Patch) Apply(t Ticket) Ticket {
	if p.Accepted != nil {
		t.Accepted = *p.Accepted
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.ClearReason {
		t.RejectedReason = ""
	} else if p.Reason != nil {
		t.RejectedReason = *p.Reason
	}
	return t
}

// Per-transition patch constructors. These are the only payload shapes the
// lifecycle machine sends.

func AcceptPatch() Patch {
	accepted := true
	status := StatusAccepted
	return Patch{Accepted: &accepted, Status: &status, ClearReason: true}
}

func DeclinePatch(reason string) Patch {
	accepted := false
	status := StatusDeclined
	return Patch{Accepted: &accepted, Status: &status, Reason: &reason}
}

func StartPatch() Patch {
	status := StatusInProgress
	return Patch{Status: &status}
}

func CompletePatch() Patch {
	status := StatusCompleted
	return Patch{Status: &status}
}
