package config

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/k1networth/fieldops/internal/shared/env"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	DatabaseURL string

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	OutboxBatchSize         int
	OutboxPollInterval      time.Duration
	OutboxProcessingTimeout time.Duration

	// Fixed completion code for the verification gate. A production
	// deployment would source this from a one-time-code issuance service.
	VerifyCode string

	// Cron spec for the overdue-reminder scan in notify-worker.
	ReminderCronSpec string

	// Base URL fieldctl talks to.
	APIBaseURL string
}

// Load reads configuration from the environment, with .env as a fallback for
// local runs. godotenv never overrides variables that are already set.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:      env.String("APP_ENV", "dev"),
		HTTPAddr:    env.String("HTTP_ADDR", ":8080"),
		MetricsAddr: env.String("METRICS_ADDR", ":9091"),

		DatabaseURL: env.String("DATABASE_URL", ""),

		KafkaBrokers: env.StringsCSV("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaTopic:   env.String("KAFKA_TOPIC", "tickets.events"),
		KafkaGroupID: env.String("KAFKA_GROUP_ID", "fieldops"),

		OutboxBatchSize:         env.Int("OUTBOX_BATCH_SIZE", 50),
		OutboxPollInterval:      env.Duration("OUTBOX_POLL_INTERVAL", time.Second),
		OutboxProcessingTimeout: env.Duration("OUTBOX_PROCESSING_TIMEOUT", 30*time.Second),

		VerifyCode: env.String("VERIFY_CODE", "123456"),

		ReminderCronSpec: env.String("REMINDER_CRON_SPEC", "0 9 * * *"),

		APIBaseURL: env.String("API_BASE_URL", "http://localhost:8080"),
	}
}
