// Package classify derives the technician's work queues from the flat ticket
// list and the current moment. Pure functions of their inputs: no I/O, no
// hidden state, recomputed on every read.
package classify

import (
	"sort"
	"strings"
	"time"

	"github.com/k1networth/fieldops/internal/ticket"
)

// TodayActive selects tickets scheduled on now's calendar date (in now's
// location) that are not in a finished status. Input order is preserved.
func TodayActive(tickets []ticket.Ticket, now time.Time) []ticket.Ticket {
	y, m, d := now.Date()

	var out []ticket.Ticket
	for _, t := range tickets {
		if ticket.IsFinished(t.Status) {
			continue
		}
		ty, tm, td := t.DateTime.In(now.Location()).Date()
		if ty == y && tm == m && td == d {
			out = append(out, t)
		}
	}
	return out
}

// OverduePending selects accepted tickets scheduled strictly before local
// midnight of now's date that are not finished. A ticket scheduled exactly
// at today's midnight is today's work, not overdue, so the comparison is
// strict.
func OverduePending(tickets []ticket.Ticket, now time.Time) []ticket.Ticket {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var out []ticket.Ticket
	for _, t := range tickets {
		if !t.Accepted || ticket.IsFinished(t.Status) {
			continue
		}
		if t.DateTime.Before(midnight) {
			out = append(out, t)
		}
	}
	return out
}

// AcceptedOnly filters to tickets the technician has taken on; the "my
// tickets" list shows nothing else.
func AcceptedOnly(tickets []ticket.Ticket) []ticket.Ticket {
	var out []ticket.Ticket
	for _, t := range tickets {
		if t.Accepted {
			out = append(out, t)
		}
	}
	return out
}

// WithStatus filters by status, case-insensitively.
func WithStatus(tickets []ticket.Ticket, status string) []ticket.Ticket {
	want := strings.ToLower(strings.TrimSpace(status))

	var out []ticket.Ticket
	for _, t := range tickets {
		if strings.ToLower(strings.TrimSpace(t.Status)) == want {
			out = append(out, t)
		}
	}
	return out
}

// SortByDate returns a copy sorted by scheduled time. Stable, so same-moment
// tickets keep their input order.
func SortByDate(tickets []ticket.Ticket, asc bool) []ticket.Ticket {
	out := make([]ticket.Ticket, len(tickets))
	copy(out, tickets)

	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return out[i].DateTime.Before(out[j].DateTime)
		}
		return out[j].DateTime.Before(out[i].DateTime)
	})
	return out
}
