// Package lifecycle is the ticket lifecycle state machine. A Session drives
// one focused ticket through new → accepted/declined → in progress →
// completed, gated by the evidence quota and the verification code. Local
// state only moves after the repository accepts the update.
package lifecycle

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/k1networth/fieldops/internal/evidence"
	"github.com/k1networth/fieldops/internal/ticket"
	"github.com/k1networth/fieldops/internal/verify"
)

// Repository is the slice of the ticket service the machine needs.
type Repository interface {
	GetTicket(ctx context.Context, code string) (ticket.Ticket, error)
	PatchTicket(ctx context.Context, id string, p ticket.Patch) (ticket.Ticket, error)
}

// Session owns one ticket-detail flow. Each session has its own evidence
// collector and verification gate, discarded with it. All transitions are
// serialised by the in-flight flag: while a network call is outstanding,
// every other transition-triggering action fails with ErrUpdateInFlight.
type Session struct {
	log    *slog.Logger
	repo   Repository
	photos *evidence.Collector
	gate   *verify.Gate

	mu       sync.Mutex
	updating bool
	loaded   bool
	cur      ticket.Ticket
}

func NewSession(log *slog.Logger, repo Repository, photos *evidence.Collector, gate *verify.Gate) *Session {
	return &Session{
		log:    log,
		repo:   repo,
		photos: photos,
		gate:   gate,
	}
}

// Load fetches the ticket by code and focuses the session on it. Any
// previously collected evidence belongs to the old snapshot and is dropped.
func (s *Session) Load(ctx context.Context, code string) (ticket.Ticket, error) {
	if err := s.begin(); err != nil {
		return ticket.Ticket{}, err
	}
	defer s.end()

	t, err := s.repo.GetTicket(ctx, code)
	if err != nil {
		return ticket.Ticket{}, err
	}

	s.mu.Lock()
	s.cur = t
	s.loaded = true
	s.photos.Reset()
	s.mu.Unlock()

	return t, nil
}

// Ticket returns the current snapshot, false if nothing is loaded.
func (s *Session) Ticket() (ticket.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur, s.loaded
}

func (s *Session) PhotoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photos.Count()
}

func (s *Session) Photos() []evidence.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photos.Photos()
}

func (s *Session) Accept(ctx context.Context) (ticket.Ticket, error) {
	return s.transition(ctx, ActionAccept, ticket.AcceptPatch())
}

// Decline requires a non-empty trimmed reason; an empty one fails before any
// network call.
func (s *Session) Decline(ctx context.Context, reason string) (ticket.Ticket, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ticket.Ticket{}, ticket.ValidationError("decline reason is required")
	}
	return s.transition(ctx, ActionDecline, ticket.DeclinePatch(reason))
}

func (s *Session) Start(ctx context.Context) (ticket.Ticket, error) {
	return s.transition(ctx, ActionStart, ticket.StartPatch())
}

// AddPhoto validates and stores one evidence capture. Legal only while the
// ticket is in progress; the collector enforces the quota and size policy.
// Synchronous, no network side effect.
func (s *Session) AddPhoto(handle string, size int64) (evidence.Photo, error) {
	if err := s.begin(); err != nil {
		return evidence.Photo{}, err
	}
	defer s.end()

	cur, err := s.snapshot()
	if err != nil {
		return evidence.Photo{}, err
	}
	if from := cur.State(); !allowed(ActionUploadEvidence, from) {
		return evidence.Photo{}, &InvalidTransitionError{Action: ActionUploadEvidence, From: from}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photos.Add(handle, size)
}

// Complete is the terminal transition: requires the full evidence quota and
// an accepted verification code before the status write goes out.
func (s *Session) Complete(ctx context.Context, code string) (ticket.Ticket, error) {
	if err := s.begin(); err != nil {
		return ticket.Ticket{}, err
	}
	defer s.end()

	cur, err := s.snapshot()
	if err != nil {
		return ticket.Ticket{}, err
	}
	if from := cur.State(); !allowed(ActionComplete, from) {
		return ticket.Ticket{}, &InvalidTransitionError{Action: ActionComplete, From: from}
	}

	s.mu.Lock()
	count := s.photos.Count()
	s.mu.Unlock()
	if count < evidence.MaxPhotos {
		return ticket.Ticket{}, ticket.ValidationError("all 3 evidence photos are required before completion")
	}

	if err := s.gate.Verify(ctx, code); err != nil {
		return ticket.Ticket{}, err
	}

	return s.applyPatch(ctx, ActionComplete, cur, ticket.CompletePatch())
}

// transition runs the common accept/decline/start path: state check, server
// patch, optimistic local apply on success.
func (s *Session) transition(ctx context.Context, action string, p ticket.Patch) (ticket.Ticket, error) {
	if err := s.begin(); err != nil {
		return ticket.Ticket{}, err
	}
	defer s.end()

	cur, err := s.snapshot()
	if err != nil {
		return ticket.Ticket{}, err
	}
	if from := cur.State(); !allowed(action, from) {
		return ticket.Ticket{}, &InvalidTransitionError{Action: action, From: from}
	}

	return s.applyPatch(ctx, action, cur, p)
}

func (s *Session) applyPatch(ctx context.Context, action string, cur ticket.Ticket, p ticket.Patch) (ticket.Ticket, error) {
	updated, err := s.repo.PatchTicket(ctx, cur.ID, p)
	if err != nil {
		s.log.Warn("ticket_update_failed",
			slog.String("action", action),
			slog.String("ticket_id", cur.TicketID),
			slog.String("err", err.Error()),
		)
		return ticket.Ticket{}, err
	}

	// Stale-response guard: fold the result into local state only if the
	// session still focuses the originating ticket.
	s.mu.Lock()
	if s.loaded && s.cur.ID == cur.ID {
		s.cur = updated
	}
	s.mu.Unlock()

	s.log.Info("ticket_transition",
		slog.String("action", action),
		slog.String("ticket_id", updated.TicketID),
		slog.String("status", updated.Status),
	)
	return updated, nil
}

func (s *Session) snapshot() (ticket.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ticket.Ticket{}, ErrNoTicket
	}
	return s.cur, nil
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updating {
		return ErrUpdateInFlight
	}
	s.updating = true
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.updating = false
	s.mu.Unlock()
}
