package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/k1networth/fieldops/internal/outbox"
	"github.com/k1networth/fieldops/internal/shared/config"
	"github.com/k1networth/fieldops/internal/shared/db"
	"github.com/k1networth/fieldops/internal/shared/events"
	"github.com/k1networth/fieldops/internal/shared/kafkax"
	"github.com/k1networth/fieldops/internal/shared/logger"
)

const appName = "outbox-relay"

func main() {
	cfg := config.Load()
	log := logger.New(appName, cfg.AppEnv)

	if cfg.DatabaseURL == "" {
		log.Error("missing_database_url")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := db.OpenPostgres(ctx, db.PostgresConfig{DatabaseURL: cfg.DatabaseURL})
	if err != nil {
		log.Error("db_open_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = pg.Close() }()

	repo := outbox.NewPostgresRepo(pg)

	producer := kafkax.NewProducer(kafkax.ProducerConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaTopic,
		ClientID: appName,
	})
	defer func() { _ = producer.Close() }()

	reg := prometheus.NewRegistry()
	m := outbox.NewMetrics(reg)

	go serveMetrics(log, cfg.MetricsAddr, reg)

	log.Info("relay_started",
		slog.String("topic", cfg.KafkaTopic),
		slog.Int("batch_size", cfg.OutboxBatchSize),
		slog.Duration("poll_interval", cfg.OutboxPollInterval),
	)

	ticker := time.NewTicker(cfg.OutboxPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("relay_stopped")
			return
		case <-ticker.C:
			runCycle(ctx, log, cfg, repo, producer, m)
		}
	}
}

func runCycle(ctx context.Context, log *slog.Logger, cfg config.Config, repo *outbox.PostgresRepo, producer *kafkax.Producer, m *outbox.Metrics) {
	requeued, err := repo.RequeueStuck(ctx, cfg.OutboxProcessingTimeout)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("outbox_requeue_failed", slog.String("err", err.Error()))
	} else if requeued > 0 {
		m.RequeuedTotal.Add(float64(requeued))
		log.Warn("outbox_requeued_stuck", slog.Int64("count", requeued))
	}

	recs, err := repo.ClaimPending(ctx, cfg.OutboxBatchSize)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error("outbox_claim_failed", slog.String("err", err.Error()))
		}
		return
	}
	if len(recs) == 0 {
		m.LagSeconds.Set(0)
		return
	}

	m.LagSeconds.Set(time.Since(recs[0].CreatedAt).Seconds())

	for _, rec := range recs {
		if err := publish(ctx, producer, rec); err != nil {
			m.FailedTotal.WithLabelValues(rec.EventType).Inc()
			log.Error("outbox_publish_failed",
				slog.Int64("outbox_id", rec.ID),
				slog.String("event_id", rec.EventID),
				slog.String("event_type", rec.EventType),
				slog.Int("attempts", rec.Attempts),
				slog.String("err", err.Error()),
			)
			if err := repo.MarkPending(ctx, rec.ID); err != nil {
				log.Error("outbox_mark_pending_failed", slog.Int64("outbox_id", rec.ID), slog.String("err", err.Error()))
			}
			continue
		}

		if err := repo.MarkSent(ctx, rec.ID); err != nil {
			// Published but not marked: the row will be requeued and the
			// consumer's idempotency guard absorbs the duplicate.
			log.Error("outbox_mark_sent_failed", slog.Int64("outbox_id", rec.ID), slog.String("err", err.Error()))
			continue
		}

		m.PublishedTotal.WithLabelValues(rec.EventType).Inc()
		log.Info("outbox_published",
			slog.Int64("outbox_id", rec.ID),
			slog.String("event_id", rec.EventID),
			slog.String("event_type", rec.EventType),
		)
	}
}

func publish(ctx context.Context, producer *kafkax.Producer, rec outbox.Record) error {
	env := events.Envelope{
		EventID:     rec.EventID,
		EventType:   rec.EventType,
		OccurredAt:  rec.CreatedAt.UTC(),
		Aggregate:   rec.Aggregate,
		AggregateID: rec.AggregateID,
		Payload:     rec.Payload,
	}

	value, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return producer.Produce(ctx, []byte(rec.AggregateID), value)
}

func serveMetrics(log *slog.Logger, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("metrics_listen", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("metrics_server_error", slog.String("err", err.Error()))
	}
}
