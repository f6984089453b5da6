package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/k1networth/fieldops/internal/outbox"
	"github.com/k1networth/fieldops/internal/profile"
	"github.com/k1networth/fieldops/internal/shared/config"
	"github.com/k1networth/fieldops/internal/shared/db"
	"github.com/k1networth/fieldops/internal/shared/env"
	"github.com/k1networth/fieldops/internal/shared/httpx"
	"github.com/k1networth/fieldops/internal/shared/logger"
	"github.com/k1networth/fieldops/internal/ticket"
)

const appName = "ticket-api"

func main() {
	cfg := config.Load()
	log := logger.New(appName, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store     ticket.Store
		userStore profile.Store
		sink      outbox.Sink
	)

	if cfg.DatabaseURL != "" {
		pg, err := db.OpenPostgres(ctx, db.PostgresConfig{DatabaseURL: cfg.DatabaseURL})
		if err != nil {
			log.Error("db_open_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer func() { _ = pg.Close() }()

		store = ticket.NewPostgresStore(pg)
		userStore = profile.NewPostgresStore(pg)
		sink = outbox.NewPostgresRepo(pg)
	} else {
		mem := ticket.NewInMemoryStore()
		if env.Bool("SEED_DEMO", false) {
			seedDemo(ctx, log, mem)
		}
		store = mem
		userStore = profile.NewInMemoryStore(profile.User{})
		sink = outbox.NewMemorySink()
		log.Warn("using_in_memory_store")
	}

	reg := prometheus.NewRegistry()

	ticketH := &ticket.Handler{Log: log, Store: store, Events: sink}
	profileH := &profile.Handler{Log: log, Store: userStore}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(log, reg, ticketH, profileH),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("http_listen", slog.String("addr", srv.Addr))

	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error("http_server_error", slog.String("err", err.Error()))
		}
	}()

	httpx.WaitAndShutdown(log, srv, 10*time.Second)
}

// seedDemo loads a small ticket set so the CLI has something to work against
// without a database.
func seedDemo(ctx context.Context, log *slog.Logger, store *ticket.InMemoryStore) {
	now := time.Now()

	demo := []ticket.Ticket{
		{
			TicketID:       "TCK-1001",
			CustomerName:   "Asha Verma",
			CustomerMobile: "9876543210",
			Product:        "Water Purifier RO-500",
			Address:        "14 Lakeview Road",
			DateTime:       time.Date(now.Year(), now.Month(), now.Day(), 10, 30, 0, 0, now.Location()),
			Status:         ticket.StatusNew,
		},
		{
			TicketID:       "TCK-1002",
			CustomerName:   "Rahul Nair",
			CustomerMobile: "9123456780",
			Product:        "Split AC 1.5T",
			Address:        "3rd Cross, Green Park",
			DateTime:       time.Date(now.Year(), now.Month(), now.Day(), 15, 0, 0, 0, now.Location()),
			Status:         ticket.StatusAccepted,
			Accepted:       true,
		},
		{
			TicketID:       "TCK-0993",
			CustomerName:   "Meera Joshi",
			CustomerMobile: "9012345678",
			Product:        "Geyser 25L",
			Address:        "Flat 7B, Sunrise Towers",
			DateTime:       time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location()).AddDate(0, 0, -2),
			Status:         ticket.StatusInProgress,
			Accepted:       true,
		},
	}

	for _, t := range demo {
		if _, err := store.Create(ctx, t); err != nil {
			log.Error("seed_failed", slog.String("ticket_id", t.TicketID), slog.String("err", err.Error()))
		}
	}
	log.Info("seeded_demo_tickets", slog.Int("count", len(demo)))
}
