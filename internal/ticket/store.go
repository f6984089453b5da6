package ticket

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("ticket not found")

type Store interface {
	List(ctx context.Context) ([]Ticket, error)
	// FindByCode returns every ticket whose human-facing code matches,
	// mirroring the GET /tickets?ticket_id= wire shape (possibly empty).
	FindByCode(ctx context.Context, code string) ([]Ticket, error)
	Create(ctx context.Context, t Ticket) (Ticket, error)
	// ApplyPatch applies the partial update atomically and returns the
	// merged ticket, or ErrNotFound without changing anything.
	ApplyPatch(ctx context.Context, id string, p Patch) (Ticket, error)
}

type InMemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]Ticket
	order []string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID: make(map[string]Ticket),
	}
}

func (s *InMemoryStore) List(ctx context.Context) ([]Ticket, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Ticket, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *InMemoryStore) FindByCode(ctx context.Context, code string) ([]Ticket, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Ticket
	for _, id := range s.order {
		if t := s.byID[id]; t.TicketID == code {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Create(ctx context.Context, t Ticket) (Ticket, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if _, exists := s.byID[t.ID]; !exists {
		s.order = append(s.order, t.ID)
	}
	s.byID[t.ID] = t
	return t, nil
}

func (s *InMemoryStore) ApplyPatch(ctx context.Context, id string, p Patch) (Ticket, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return Ticket{}, ErrNotFound
	}

	t = p.Apply(t)
	s.byID[id] = t
	return t, nil
}
