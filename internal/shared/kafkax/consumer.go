package kafkax

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string

	// StartOffset controls where a new consumer group starts when it has no
	// committed offsets: "first" | "last". Default: "last".
	StartOffset string

	MinBytes int
	MaxBytes int
}

type Consumer struct {
	r *kafka.Reader
}

func NewConsumer(cfg ConsumerConfig) *Consumer {
	minB := cfg.MinBytes
	if minB == 0 {
		minB = 1
	}
	maxB := cfg.MaxBytes
	if maxB == 0 {
		maxB = 10e6
	}

	start := kafka.LastOffset
	if strings.EqualFold(cfg.StartOffset, "first") {
		start = kafka.FirstOffset
	}

	// MaxWait and the backoffs keep FetchMessage from hanging forever on
	// transient broker issues.
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        cfg.Brokers,
			Topic:          cfg.Topic,
			GroupID:        cfg.GroupID,
			StartOffset:    start,
			MinBytes:       minB,
			MaxBytes:       maxB,
			MaxWait:        500 * time.Millisecond,
			ReadBackoffMin: 100 * time.Millisecond,
			ReadBackoffMax: time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	return c.r.Close()
}

func (c *Consumer) FetchMessage(ctx context.Context) (kafka.Message, error) {
	return c.r.FetchMessage(ctx)
}

func (c *Consumer) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	return c.r.CommitMessages(ctx, msgs...)
}
