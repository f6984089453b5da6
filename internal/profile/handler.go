package profile

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/k1networth/fieldops/internal/ticket"
)

type Handler struct {
	Log   *slog.Logger
	Store Store
}

// Handle serves GET /user and PUT /user.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		ticket.WriteErrorR(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Store.Get(r.Context())
	if err != nil {
		h.Log.Error("user_get_failed", slog.String("err", err.Error()))
		ticket.WriteErrorR(w, r, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var u User
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&u); err != nil {
		msg := "invalid json"
		if errors.Is(err, io.EOF) {
			msg = "empty body"
		}
		ticket.WriteErrorR(w, r, http.StatusBadRequest, "validation_error", msg)
		return
	}

	u.Name = strings.TrimSpace(u.Name)
	u.Mobile = strings.TrimSpace(u.Mobile)
	u.Email = strings.TrimSpace(u.Email)
	u.Address = strings.TrimSpace(u.Address)

	if err := u.Validate(); err != nil {
		ticket.WriteErrorR(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	saved, err := h.Store.Put(r.Context(), u)
	if err != nil {
		h.Log.Error("user_put_failed", slog.String("err", err.Error()))
		ticket.WriteErrorR(w, r, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
