package classify

import (
	"testing"
	"time"

	"github.com/k1networth/fieldops/internal/ticket"
)

// A fixed "now" away from midnight keeps the boundary cases explicit.
var now = time.Date(2026, time.March, 10, 14, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

func at(offset time.Duration) time.Time { return now.Add(offset) }

func TestTodayActive(t *testing.T) {
	midnight := time.Date(2026, time.March, 10, 0, 0, 0, 0, now.Location())

	tickets := []ticket.Ticket{
		{TicketID: "T-1", DateTime: at(-2 * time.Hour), Status: ticket.StatusNew},
		{TicketID: "T-2", DateTime: at(3 * time.Hour), Status: ticket.StatusAccepted, Accepted: true},
		{TicketID: "T-3", DateTime: at(-time.Hour), Status: ticket.StatusCompleted, Accepted: true},
		{TicketID: "T-4", DateTime: at(-24 * time.Hour), Status: ticket.StatusNew},
		{TicketID: "T-5", DateTime: at(24 * time.Hour), Status: ticket.StatusNew},
		{TicketID: "T-6", DateTime: midnight, Status: ticket.StatusAccepted, Accepted: true},
	}

	got := TodayActive(tickets, now)

	want := []string{"T-1", "T-2", "T-6"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %+v", want, got)
	}
	for i, code := range want {
		if got[i].TicketID != code {
			t.Fatalf("expected %v in input order, got %+v", want, got)
		}
	}
}

func TestOverduePending(t *testing.T) {
	tickets := []ticket.Ticket{
		// Yesterday, accepted, still open: overdue.
		{TicketID: "T-1", DateTime: at(-24 * time.Hour), Status: ticket.StatusAccepted, Accepted: true},
		// Yesterday but never accepted: not the technician's backlog.
		{TicketID: "T-2", DateTime: at(-24 * time.Hour), Status: ticket.StatusNew},
		// Yesterday, accepted but already finished.
		{TicketID: "T-3", DateTime: at(-24 * time.Hour), Status: ticket.StatusCompleted, Accepted: true},
		// Today, accepted: today's work, never overdue.
		{TicketID: "T-4", DateTime: at(-time.Hour), Status: ticket.StatusAccepted, Accepted: true},
	}

	got := OverduePending(tickets, now)
	if len(got) != 1 || got[0].TicketID != "T-1" {
		t.Fatalf("expected only T-1, got %+v", got)
	}
}

func TestMidnightBoundaryIsTodayNotOverdue(t *testing.T) {
	midnight := time.Date(2026, time.March, 10, 0, 0, 0, 0, now.Location())
	tickets := []ticket.Ticket{
		{TicketID: "T-1", DateTime: midnight, Status: ticket.StatusAccepted, Accepted: true},
	}

	if got := OverduePending(tickets, now); len(got) != 0 {
		t.Fatalf("expected midnight ticket not to be overdue, got %+v", got)
	}
	if got := TodayActive(tickets, now); len(got) != 1 {
		t.Fatalf("expected midnight ticket in today's queue, got %+v", got)
	}
}

func TestQueuesAreDisjoint(t *testing.T) {
	tickets := []ticket.Ticket{
		{TicketID: "T-1", DateTime: at(-48 * time.Hour), Status: ticket.StatusInProgress, Accepted: true},
		{TicketID: "T-2", DateTime: at(-time.Hour), Status: ticket.StatusAccepted, Accepted: true},
		{TicketID: "T-3", DateTime: at(time.Hour), Status: ticket.StatusNew},
	}

	today := TodayActive(tickets, now)
	overdue := OverduePending(tickets, now)

	seen := make(map[string]bool, len(today))
	for _, t2 := range today {
		seen[t2.TicketID] = true
	}
	for _, t2 := range overdue {
		if seen[t2.TicketID] {
			t.Fatalf("ticket %s appears in both queues", t2.TicketID)
		}
	}
}

func TestAcceptedOnly(t *testing.T) {
	tickets := []ticket.Ticket{
		{TicketID: "T-1", Accepted: true},
		{TicketID: "T-2"},
		{TicketID: "T-3", Accepted: true},
	}

	got := AcceptedOnly(tickets)
	if len(got) != 2 || got[0].TicketID != "T-1" || got[1].TicketID != "T-3" {
		t.Fatalf("expected T-1 and T-3, got %+v", got)
	}
}

func TestWithStatusIsCaseInsensitive(t *testing.T) {
	tickets := []ticket.Ticket{
		{TicketID: "T-1", Status: "In Progress"},
		{TicketID: "T-2", Status: "in progress"},
		{TicketID: "T-3", Status: "Completed"},
	}

	got := WithStatus(tickets, "IN PROGRESS")
	if len(got) != 2 {
		t.Fatalf("expected two matches, got %+v", got)
	}
}

func TestSortByDate(t *testing.T) {
	tickets := []ticket.Ticket{
		{TicketID: "T-1", DateTime: at(time.Hour)},
		{TicketID: "T-2", DateTime: at(-time.Hour)},
		{TicketID: "T-3", DateTime: at(2 * time.Hour)},
	}

	asc := SortByDate(tickets, true)
	if asc[0].TicketID != "T-2" || asc[2].TicketID != "T-3" {
		t.Fatalf("expected ascending order, got %+v", asc)
	}

	desc := SortByDate(tickets, false)
	if desc[0].TicketID != "T-3" || desc[2].TicketID != "T-2" {
		t.Fatalf("expected descending order, got %+v", desc)
	}

	// Input untouched.
	if tickets[0].TicketID != "T-1" {
		t.Fatalf("expected input slice unchanged, got %+v", tickets)
	}
}
