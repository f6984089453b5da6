package events

import (
	"encoding/json"
	"strings"
	"time"
)

// Ticket lifecycle event types published on tickets.events.
const (
	TicketAccepted      = "ticket.accepted"
	TicketDeclined      = "ticket.declined"
	TicketStarted       = "ticket.started"
	TicketCompleted     = "ticket.completed"
	TicketStatusChanged = "ticket.status_changed"
)

// TypeForStatus maps a newly written status to its event type. Statuses the
// lifecycle machine never writes itself (Cancelled, On Hold) fall through to
// the generic status-changed type.
func TypeForStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "accepted":
		return TicketAccepted
	case "declined":
		return TicketDeclined
	case "in progress":
		return TicketStarted
	case "completed":
		return TicketCompleted
	}
	return TicketStatusChanged
}

type Envelope struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Aggregate   string          `json:"aggregate"`
	AggregateID string          `json:"aggregate_id"`
	RequestID   string          `json:"request_id,omitempty"`
	Payload     json.RawMessage `json:"payload"`
}
