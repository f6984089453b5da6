package ticket

import "strings"

// State is the lifecycle state reconstructed from status plus the accepted
// flag. The server stores the two raw fields; this mapping lives here and
// nowhere else.
type State int

const (
	StateNew State = iota
	StateAccepted
	StateInProgress
	StateCompleted
	StateDeclinedOrCancelled
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateAccepted:
		return "accepted"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateDeclinedOrCancelled:
		return "declined_or_cancelled"
	}
	return "unknown"
}

// Terminal reports whether no further transition is permitted.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateDeclinedOrCancelled
}

// DeriveState maps the raw workflow fields to a lifecycle state. On Hold is
// an externally-set variant of In Progress and gates identically. A ticket
// claiming accepted=true with an unset or unknown working status falls back
// to StateNew rather than guessing a working state.
func DeriveState(status string, accepted bool) State {
	s := strings.ToLower(strings.TrimSpace(status))

	switch s {
	case "completed":
		return StateCompleted
	case "declined", "cancelled":
		return StateDeclinedOrCancelled
	}

	if !accepted {
		return StateNew
	}

	switch s {
	case "accepted":
		return StateAccepted
	case "in progress", "on hold":
		return StateInProgress
	}

	return StateNew
}
