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
	"github.com/robfig/cron/v3"

	"github.com/k1networth/fieldops/internal/classify"
	"github.com/k1networth/fieldops/internal/notify"
	"github.com/k1networth/fieldops/internal/shared/config"
	"github.com/k1networth/fieldops/internal/shared/db"
	"github.com/k1networth/fieldops/internal/shared/events"
	"github.com/k1networth/fieldops/internal/shared/kafkax"
	"github.com/k1networth/fieldops/internal/shared/logger"
	"github.com/k1networth/fieldops/internal/ticket"
)

const appName = "notify-worker"

type worker struct {
	log     *slog.Logger
	store   *notify.Store
	tickets *ticket.PostgresStore

	processedTotal *prometheus.CounterVec
	overdueGauge   prometheus.Gauge
}

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

	reg := prometheus.NewRegistry()
	w := &worker{
		log:     log,
		store:   notify.NewStore(pg),
		tickets: ticket.NewPostgresStore(pg),
		processedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "notify_events_total", Help: "Consumed ticket events by outcome."},
			[]string{"event_type", "outcome"},
		),
		overdueGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "notify_overdue_pending_tickets", Help: "Overdue pending tickets at the last reminder scan."},
		),
	}
	reg.MustRegister(w.processedTotal, w.overdueGauge)

	go serveMetrics(log, cfg.MetricsAddr, reg)

	consumer := kafkax.NewConsumer(kafkax.ConsumerConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaTopic,
		GroupID:     cfg.KafkaGroupID,
		StartOffset: "first",
	})
	defer func() { _ = consumer.Close() }()

	sched := cron.New()
	if _, err := sched.AddFunc(cfg.ReminderCronSpec, func() { w.overdueScan(ctx) }); err != nil {
		log.Error("cron_spec_invalid", slog.String("spec", cfg.ReminderCronSpec), slog.String("err", err.Error()))
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	log.Info("worker_started",
		slog.String("topic", cfg.KafkaTopic),
		slog.String("group_id", cfg.KafkaGroupID),
		slog.String("reminder_cron", cfg.ReminderCronSpec),
	)

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("worker_stopped")
				return
			}
			log.Error("kafka_fetch_failed", slog.String("err", err.Error()))
			continue
		}

		w.handleMessage(ctx, msg.Value)

		if err := consumer.CommitMessages(ctx, msg); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("kafka_commit_failed", slog.String("err", err.Error()))
		}
	}
}

// handleMessage records the notification for one ticket event. Duplicate
// deliveries are absorbed by the processed_events table.
func (w *worker) handleMessage(ctx context.Context, value []byte) {
	var env events.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		w.log.Error("event_decode_failed", slog.String("err", err.Error()))
		w.processedTotal.WithLabelValues("unknown", "decode_failed").Inc()
		return
	}

	shouldProcess, err := w.store.StartProcessing(ctx, notify.ProcessedEvent{
		EventID:     env.EventID,
		EventType:   env.EventType,
		Aggregate:   env.Aggregate,
		AggregateID: env.AggregateID,
		Payload:     env.Payload,
	})
	if err != nil {
		w.log.Error("event_tracking_failed", slog.String("event_id", env.EventID), slog.String("err", err.Error()))
		w.processedTotal.WithLabelValues(env.EventType, "error").Inc()
		return
	}
	if !shouldProcess {
		w.processedTotal.WithLabelValues(env.EventType, "duplicate").Inc()
		return
	}

	// The notification itself is a structured log line; a real deployment
	// would fan out to push or SMS here.
	w.log.Info("ticket_notification",
		slog.String("event_id", env.EventID),
		slog.String("event_type", env.EventType),
		slog.String("ticket_id", env.AggregateID),
	)

	if err := w.store.MarkDone(ctx, env.EventID); err != nil {
		w.log.Error("event_mark_done_failed", slog.String("event_id", env.EventID), slog.String("err", err.Error()))
		_ = w.store.MarkFailed(ctx, env.EventID, err.Error())
		w.processedTotal.WithLabelValues(env.EventType, "error").Inc()
		return
	}

	w.processedTotal.WithLabelValues(env.EventType, "done").Inc()
}

// overdueScan logs one reminder per accepted ticket whose scheduled date has
// slipped past. Runs on the reminder cron.
func (w *worker) overdueScan(ctx context.Context) {
	sctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	all, err := w.tickets.List(sctx)
	if err != nil {
		w.log.Error("overdue_scan_failed", slog.String("err", err.Error()))
		return
	}

	overdue := classify.OverduePending(all, time.Now())
	w.overdueGauge.Set(float64(len(overdue)))

	for _, t := range overdue {
		w.log.Info("overdue_reminder",
			slog.String("ticket_id", t.TicketID),
			slog.String("customer", t.CustomerName),
			slog.Time("scheduled_at", t.DateTime),
			slog.String("status", t.Status),
		)
	}
	w.log.Info("overdue_scan_done", slog.Int("overdue", len(overdue)), slog.Int("total", len(all)))
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
