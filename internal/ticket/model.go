package ticket

import (
	"strings"
	"time"
)

// Ticket is the unit of field-service work a technician drives through the
// lifecycle. JSON names match the backing service's wire format; TicketID is
// the human-facing code used as the cross-screen lookup key, ID the opaque
// persistent identifier.
type Ticket struct {
	ID             string    `json:"id"`
	TicketID       string    `json:"ticket_id"`
	CustomerName   string    `json:"customer_name"`
	CustomerMobile string    `json:"customer_mobile"`
	Product        string    `json:"product"`
	Address        string    `json:"address"`
	DateTime       time.Time `json:"date_time"`
	Status         string    `json:"status"`
	Accepted       bool      `json:"accepted"`
	RejectedReason string    `json:"rejected_reason,omitempty"`
}

// State derives the lifecycle state from the raw workflow fields.
func (t Ticket) State() State {
	return DeriveState(t.Status, t.Accepted)
}

type CreateTicketRequest struct {
	TicketID       string    `json:"ticket_id"`
	CustomerName   string    `json:"customer_name"`
	CustomerMobile string    `json:"customer_mobile"`
	Product        string    `json:"product"`
	Address        string    `json:"address"`
	DateTime       time.Time `json:"date_time"`
}

func (r CreateTicketRequest) Validate() error {
	if strings.TrimSpace(r.TicketID) == "" {
		return ValidationError("ticket_id is required")
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		return ValidationError("customer_name is required")
	}
	if r.DateTime.IsZero() {
		return ValidationError("date_time is required")
	}
	return nil
}
