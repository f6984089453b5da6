package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/k1networth/fieldops/internal/profile"
	"github.com/k1networth/fieldops/internal/ticket"
)

// timeNow exists so the queue commands can be pinned in tests.
var timeNow = time.Now

func printTickets(w io.Writer, tickets []ticket.Ticket) error {
	if len(tickets) == 0 {
		fmt.Fprintln(w, "no tickets")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tCUSTOMER\tPRODUCT\tSCHEDULED\tSTATUS")
	for _, t := range tickets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			t.TicketID,
			t.CustomerName,
			t.Product,
			t.DateTime.Local().Format("2006-01-02 15:04"),
			t.Status,
		)
	}
	return tw.Flush()
}

func printTicketDetail(w io.Writer, t ticket.Ticket) {
	fmt.Fprintf(w, "Ticket    %s\n", t.TicketID)
	fmt.Fprintf(w, "Customer  %s (%s)\n", t.CustomerName, t.CustomerMobile)
	fmt.Fprintf(w, "Product   %s\n", t.Product)
	fmt.Fprintf(w, "Address   %s\n", t.Address)
	fmt.Fprintf(w, "Scheduled %s\n", t.DateTime.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Status    %s (%s)\n", t.Status, t.State())
	if t.RejectedReason != "" {
		fmt.Fprintf(w, "Declined  %s\n", t.RejectedReason)
	}
}

func printProfile(w io.Writer, u profile.User) {
	fmt.Fprintf(w, "Name     %s\n", u.Name)
	fmt.Fprintf(w, "Mobile   %s\n", u.Mobile)
	fmt.Fprintf(w, "Email    %s\n", u.Email)
	fmt.Fprintf(w, "Address  %s\n", u.Address)
}
