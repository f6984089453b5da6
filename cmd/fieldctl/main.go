// fieldctl is the technician's terminal for the ticket service: queue views,
// profile upkeep, and an interactive per-ticket work session.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/k1networth/fieldops/internal/apiclient"
	"github.com/k1networth/fieldops/internal/classify"
	"github.com/k1networth/fieldops/internal/shared/config"
	"github.com/k1networth/fieldops/internal/shared/logger"
)

const appName = "fieldctl"

func main() {
	cfg := config.Load()

	flags := flag.NewFlagSet(appName, flag.ContinueOnError)
	apiURL := flags.String("api", cfg.APIBaseURL, "ticket service base URL")
	status := flags.String("status", "", "filter list by status")
	acceptedOnly := flags.Bool("accepted", false, "only tickets you have accepted")
	asc := flags.Bool("asc", false, "sort oldest first (default newest first)")
	maxPhotoBytes := flags.Int64("max-photo-bytes", 0, "reject evidence photos larger than this (0 = no limit)")
	name := flags.String("name", "", "profile: set name")
	mobile := flags.String("mobile", "", "profile: set mobile")
	email := flags.String("email", "", "profile: set email")
	address := flags.String("address", "", "profile: set address")
	flags.Usage = func() { usage(flags) }

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	args := flags.Args()
	if len(args) == 0 {
		usage(flags)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Human-facing output goes to stdout; structured logs stay on stderr.
	log := logger.NewWithWriter(os.Stderr, appName, cfg.AppEnv)
	client := apiclient.New(apiclient.Config{BaseURL: *apiURL})

	var err error
	switch args[0] {
	case "today":
		err = cmdToday(ctx, client)
	case "overdue":
		err = cmdOverdue(ctx, client)
	case "list":
		err = cmdList(ctx, client, *status, *acceptedOnly, *asc)
	case "show":
		if len(args) < 2 {
			err = fmt.Errorf("usage: %s show <ticket-code>", appName)
			break
		}
		err = cmdShow(ctx, client, args[1])
	case "profile":
		upd := profileUpdate{flags: flags, name: *name, mobile: *mobile, email: *email, address: *address}
		err = cmdProfile(ctx, client, upd)
	case "work":
		if len(args) < 2 {
			err = fmt.Errorf("usage: %s work <ticket-code>", appName)
			break
		}
		err = cmdWork(ctx, log, client, args[1], cfg.VerifyCode, *maxPhotoBytes)
	default:
		usage(flags)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, appName+": "+userMessage(err))
		os.Exit(1)
	}
}

func usage(flags *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] <command>

Commands:
  today                 tickets scheduled today and still open
  overdue               accepted tickets that slipped past their date
  list                  all tickets (see --status, --accepted, --asc)
  show <ticket-code>    one ticket in detail
  profile               show the technician profile (set fields with --name etc.)
  work <ticket-code>    interactive session: accept, decline, start, photo, complete

Flags:
%s`, appName, flags.FlagUsages())
}

func cmdToday(ctx context.Context, client *apiclient.Client) error {
	all, err := client.ListTickets(ctx)
	if err != nil {
		return err
	}
	return printTickets(os.Stdout, classify.TodayActive(all, timeNow()))
}

func cmdOverdue(ctx context.Context, client *apiclient.Client) error {
	all, err := client.ListTickets(ctx)
	if err != nil {
		return err
	}
	return printTickets(os.Stdout, classify.OverduePending(all, timeNow()))
}

func cmdList(ctx context.Context, client *apiclient.Client, status string, acceptedOnly, asc bool) error {
	all, err := client.ListTickets(ctx)
	if err != nil {
		return err
	}
	if acceptedOnly {
		all = classify.AcceptedOnly(all)
	}
	if status != "" {
		all = classify.WithStatus(all, status)
	}
	return printTickets(os.Stdout, classify.SortByDate(all, asc))
}

func cmdShow(ctx context.Context, client *apiclient.Client, code string) error {
	t, err := client.GetTicket(ctx, code)
	if err != nil {
		return err
	}
	printTicketDetail(os.Stdout, t)
	return nil
}

type profileUpdate struct {
	flags                        *flag.FlagSet
	name, mobile, email, address string
}

func (u profileUpdate) empty() bool {
	return !u.flags.Changed("name") && !u.flags.Changed("mobile") &&
		!u.flags.Changed("email") && !u.flags.Changed("address")
}

// cmdProfile shows the profile, or updates it when any profile flag was set.
// Unset flags keep the current value.
func cmdProfile(ctx context.Context, client *apiclient.Client, upd profileUpdate) error {
	u, err := client.GetUser(ctx)
	if err != nil {
		return err
	}

	if upd.empty() {
		printProfile(os.Stdout, u)
		return nil
	}

	if upd.flags.Changed("name") {
		u.Name = upd.name
	}
	if upd.flags.Changed("mobile") {
		u.Mobile = upd.mobile
	}
	if upd.flags.Changed("email") {
		u.Email = upd.email
	}
	if upd.flags.Changed("address") {
		u.Address = upd.address
	}
	if err := u.Validate(); err != nil {
		return err
	}

	saved, err := client.PutUser(ctx, u)
	if err != nil {
		return err
	}
	fmt.Println("profile saved")
	printProfile(os.Stdout, saved)
	return nil
}
