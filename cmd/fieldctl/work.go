package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/k1networth/fieldops/internal/apiclient"
	"github.com/k1networth/fieldops/internal/evidence"
	"github.com/k1networth/fieldops/internal/lifecycle"
	"github.com/k1networth/fieldops/internal/profile"
	"github.com/k1networth/fieldops/internal/ticket"
	"github.com/k1networth/fieldops/internal/verify"
)

// cmdWork runs the interactive ticket session. The session holds the evidence
// photos and the verification gate in memory, so one ticket is worked start
// to finish within one invocation.
func cmdWork(ctx context.Context, log *slog.Logger, client *apiclient.Client, code, verifyCode string, maxPhotoBytes int64) error {
	session := lifecycle.NewSession(
		log,
		client,
		evidence.NewCollector(evidence.Policy{MaxBytes: maxPhotoBytes}),
		verify.NewGate(verifyCode, time.Second),
	)

	t, err := session.Load(ctx, code)
	if err != nil {
		return err
	}

	printTicketDetail(os.Stdout, t)
	fmt.Println()
	fmt.Println(`commands: accept, decline <reason>, start, photo <file>, complete <code>, show, help, quit`)

	sc := bufio.NewScanner(os.Stdin)
	for prompt(); sc.Scan(); prompt() {
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(sc.Text())
		cmd, rest, _ := strings.Cut(line, " ")

		var (
			updated ticket.Ticket
			err     error
		)

		switch cmd {
		case "":
			continue
		case "help":
			fmt.Println(`accept              take the ticket on
decline <reason>    turn it down (reason required)
start               begin work on an accepted ticket
photo <file>        record one evidence photo (3 needed, in order)
complete <code>     finish with the customer's 6-digit code
show                re-print the ticket
quit                leave the session`)
			continue
		case "show":
			if cur, ok := session.Ticket(); ok {
				printTicketDetail(os.Stdout, cur)
				printEvidence(session)
			}
			continue
		case "quit", "exit":
			return nil
		case "accept":
			updated, err = session.Accept(ctx)
		case "decline":
			updated, err = session.Decline(ctx, rest)
		case "start":
			updated, err = session.Start(ctx)
		case "photo":
			if err := addPhoto(session, strings.TrimSpace(rest)); err != nil {
				fmt.Println(userMessage(err))
			} else {
				printEvidence(session)
			}
			continue
		case "complete":
			updated, err = session.Complete(ctx, strings.TrimSpace(rest))
		default:
			fmt.Println("unknown command (try help)")
			continue
		}

		if err != nil {
			fmt.Println(userMessage(err))
			continue
		}

		fmt.Printf("ticket %s is now %s\n", updated.TicketID, updated.Status)
		if updated.State().Terminal() {
			return nil
		}
	}
	return sc.Err()
}

func prompt() { fmt.Print("> ") }

func addPhoto(session *lifecycle.Session, path string) error {
	if path == "" {
		return ticket.ValidationError("usage: photo <file>")
	}

	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if fi.IsDir() {
		return ticket.ValidationError(path + " is a directory")
	}

	_, err = session.AddPhoto(path, fi.Size())
	return err
}

func printEvidence(session *lifecycle.Session) {
	photos := session.Photos()
	fmt.Printf("evidence: %d/%d\n", len(photos), evidence.MaxPhotos)
	for _, p := range photos {
		fmt.Printf("  %-20s %s\n", p.Angle, p.Handle)
	}
}

// userMessage folds the error taxonomy into the line the technician sees.
func userMessage(err error) string {
	var (
		netErr   *apiclient.NetworkError
		srvErr   *apiclient.ServerError
		transErr *lifecycle.InvalidTransitionError
		sizeErr  *evidence.TooLargeError
		tValErr  ticket.ValidationError
		pValErr  profile.ValidationError
	)

	switch {
	case errors.Is(err, apiclient.ErrNotFound):
		return "no ticket found for that code"
	case errors.As(err, &netErr):
		return "network problem, check your connection and try again"
	case errors.As(err, &srvErr):
		return "the server rejected the request, try again later"
	case errors.As(err, &transErr):
		return "that action is not available in the ticket's current state"
	case errors.Is(err, lifecycle.ErrUpdateInFlight):
		return "an update is already in progress, wait for it to finish"
	case errors.Is(err, evidence.ErrQuotaExceeded):
		return fmt.Sprintf("all %d evidence photos are already recorded", evidence.MaxPhotos)
	case errors.As(err, &sizeErr):
		return fmt.Sprintf("photo is too large (%d bytes, limit %d)", sizeErr.Size, sizeErr.MaxBytes)
	case errors.Is(err, verify.ErrInvalidFormat):
		return "the completion code must be exactly 6 digits"
	case errors.Is(err, verify.ErrCodeMismatch):
		return "that completion code is incorrect, ask the customer again"
	case errors.As(err, &tValErr):
		return string(tValErr)
	case errors.As(err, &pValErr):
		return string(pValErr)
	}
	return err.Error()
}
