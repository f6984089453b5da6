package lifecycle

import (
	"errors"
	"fmt"

	"github.com/k1networth/fieldops/internal/ticket"
)

// ErrUpdateInFlight: a transition is already running for this session.
// Actions are rejected outright rather than queued.
var ErrUpdateInFlight = errors.New("lifecycle: another update is in flight")

// ErrNoTicket: the session has not loaded a ticket yet.
var ErrNoTicket = errors.New("lifecycle: no ticket loaded")

// InvalidTransitionError: the action is not legal from the ticket's current
// state. Raised before any network call; a UI that only offers legal actions
// should never see it, but the machine rejects defensively rather than
// silently no-opping.
type InvalidTransitionError struct {
	Action string
	From   ticket.State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("lifecycle: %s is not permitted from state %s", e.Action, e.From)
}
