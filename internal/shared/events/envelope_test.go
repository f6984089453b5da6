package events

import "testing"

func TestTypeForStatus(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{"Accepted", TicketAccepted},
		{"accepted", TicketAccepted},
		{"Declined", TicketDeclined},
		{"In Progress", TicketStarted},
		{"Completed", TicketCompleted},
		{"On Hold", TicketStatusChanged},
		{"Cancelled", TicketStatusChanged},
		{"", TicketStatusChanged},
	}

	for _, tc := range cases {
		if got := TypeForStatus(tc.status); got != tc.want {
			t.Fatalf("TypeForStatus(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}
