package ticket

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/k1networth/fieldops/internal/outbox"
	"github.com/k1networth/fieldops/internal/shared/events"
)

type Handler struct {
	Log   *slog.Logger
	Store Store

	// Events receives a lifecycle event whenever a patch writes a status.
	// Optional; nil disables event recording.
	Events outbox.Sink
}

// Collection serves GET /tickets (full list, or the ?ticket_id= filtered
// array the detail lookup uses) and POST /tickets.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		WriteErrorR(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// Item serves PATCH /tickets/{id}.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		WriteErrorR(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/tickets/"), "/")
	if id == "" || strings.Contains(id, "/") {
		WriteErrorR(w, r, http.StatusNotFound, "not_found", "not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req patchTicketRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		msg := "invalid json"
		if errors.Is(err, io.EOF) {
			msg = "empty body"
		}
		WriteErrorR(w, r, http.StatusBadRequest, "validation_error", msg)
		return
	}

	p, err := req.toPatch()
	if err != nil {
		WriteErrorR(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	updated, err := h.Store.ApplyPatch(r.Context(), id, p)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			WriteErrorR(w, r, http.StatusNotFound, "not_found", "not found")
			return
		}
		h.Log.Error("ticket_patch_failed", slog.String("id", id), slog.String("err", err.Error()))
		WriteErrorR(w, r, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if p.Status != nil {
		h.recordEvent(r, updated, *p.Status)
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		ts  []Ticket
		err error
	)

	if code := strings.TrimSpace(r.URL.Query().Get("ticket_id")); code != "" {
		ts, err = h.Store.FindByCode(r.Context(), code)
	} else {
		ts, err = h.Store.List(r.Context())
	}
	if err != nil {
		h.Log.Error("ticket_list_failed", slog.String("err", err.Error()))
		WriteErrorR(w, r, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if ts == nil {
		ts = []Ticket{}
	}
	writeJSON(w, http.StatusOK, ts)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateTicketRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		msg := "invalid json"
		if errors.Is(err, io.EOF) {
			msg = "empty body"
		}
		WriteErrorR(w, r, http.StatusBadRequest, "validation_error", msg)
		return
	}

	if err := req.Validate(); err != nil {
		WriteErrorR(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	t := Ticket{
		ID:             uuid.NewString(),
		TicketID:       strings.TrimSpace(req.TicketID),
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerMobile: strings.TrimSpace(req.CustomerMobile),
		Product:        strings.TrimSpace(req.Product),
		Address:        strings.TrimSpace(req.Address),
		DateTime:       req.DateTime,
		Status:         StatusNew,
	}

	created, err := h.Store.Create(r.Context(), t)
	if err != nil {
		h.Log.Error("ticket_create_failed", slog.String("err", err.Error()))
		WriteErrorR(w, r, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) recordEvent(r *http.Request, t Ticket, status string) {
	if h.Events == nil {
		return
	}

	payload, err := json.Marshal(t)
	if err != nil {
		h.Log.Error("event_payload_marshal_failed", slog.String("err", err.Error()))
		return
	}

	rec := outbox.Record{
		EventID:     uuid.NewString(),
		Aggregate:   "ticket",
		AggregateID: t.ID,
		EventType:   events.TypeForStatus(status),
		Payload:     payload,
	}
	if err := h.Events.Append(r.Context(), rec); err != nil {
		// The patch itself succeeded; event loss is logged, not surfaced.
		h.Log.Error("outbox_append_failed",
			slog.String("ticket_id", t.TicketID),
			slog.String("event_type", rec.EventType),
			slog.String("err", err.Error()),
		)
	}
}

type patchTicketRequest struct {
	Accepted       *bool   `json:"accepted"`
	Status         *string `json:"status"`
	RejectedReason *string `json:"rejected_reason"`
}

func (r patchTicketRequest) toPatch() (Patch, error) {
	p := Patch{
		Accepted: r.Accepted,
		Status:   r.Status,
		Reason:   r.RejectedReason,
	}

	// An explicit rejected_reason null decodes identically to an absent
	// field, so a lone null body lands here too.
	if p.Accepted == nil && p.Status == nil && p.Reason == nil {
		return Patch{}, ValidationError("no fields to update")
	}

	if p.Status != nil && !ValidStatus(*p.Status) {
		return Patch{}, ValidationError("unknown status " + *p.Status)
	}

	if p.Status != nil && *p.Status == StatusDeclined {
		if p.Reason == nil || strings.TrimSpace(*p.Reason) == "" {
			return Patch{}, ValidationError("rejected_reason is required when declining")
		}
	}

	// Accepting clears any stale decline reason.
	if p.Accepted != nil && *p.Accepted && p.Reason == nil {
		p.ClearReason = true
	}

	return p, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
