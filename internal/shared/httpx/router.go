package httpx

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/k1networth/fieldops/internal/profile"
	"github.com/k1networth/fieldops/internal/ticket"
)

// NewRouter wires the ticket and profile handlers behind the shared
// middleware chain: request id, access log, metrics.
func NewRouter(log *slog.Logger, reg *prometheus.Registry, ticketH *ticket.Handler, profileH *profile.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	mux.HandleFunc("/tickets", ticketH.Collection)
	mux.Handle("/tickets/", WithRoute("/tickets/{id}", http.HandlerFunc(ticketH.Item)))
	mux.HandleFunc("/user", profileH.Handle)

	var h http.Handler = mux
	h = NewMetrics(reg).Middleware(h)
	h = AccessLog(log)(h)
	h = RequestID(h)

	return h
}
