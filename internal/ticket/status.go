package ticket

import "strings"

// Canonical status vocabulary, case-sensitive as written on the wire. The
// lifecycle machine only ever writes Accepted, In Progress, Completed and
// Declined; On Hold and Cancelled are set externally and read back.
const (
	StatusNew        = "New"
	StatusAccepted   = "Accepted"
	StatusInProgress = "In Progress"
	StatusOnHold     = "On Hold"
	StatusCompleted  = "Completed"
	StatusDeclined   = "Declined"
	StatusCancelled  = "Cancelled"
)

var statusVocabulary = []string{
	StatusNew,
	StatusAccepted,
	StatusInProgress,
	StatusOnHold,
	StatusCompleted,
	StatusDeclined,
	StatusCancelled,
}

// ValidStatus reports whether s is an exact member of the wire vocabulary.
func ValidStatus(s string) bool {
	for _, v := range statusVocabulary {
		if s == v {
			return true
		}
	}
	return false
}

// IsFinished reports whether a status excludes the ticket from active work
// queues. Read-side comparison, so case-insensitive.
func IsFinished(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed", "cancelled", "declined":
		return true
	}
	return false
}
