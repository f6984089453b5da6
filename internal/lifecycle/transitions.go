package lifecycle

import "github.com/k1networth/fieldops/internal/ticket"

// Actions a ticket-detail session can drive.
const (
	ActionAccept         = "accept"
	ActionDecline        = "decline"
	ActionStart          = "start"
	ActionUploadEvidence = "upload_evidence"
	ActionComplete       = "complete"
)

// allowedFrom maps each action to the states it is legal from. Completed and
// declined/cancelled appear nowhere: they are terminal.
var allowedFrom = map[string][]ticket.State{
	ActionAccept:         {ticket.StateNew},
	ActionDecline:        {ticket.StateNew},
	ActionStart:          {ticket.StateAccepted},
	ActionUploadEvidence: {ticket.StateInProgress},
	ActionComplete:       {ticket.StateInProgress},
}

func allowed(action string, from ticket.State) bool {
	for _, s := range allowedFrom[action] {
		if s == from {
			return true
		}
	}
	return false
}
