package kafkax

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

type ProducerConfig struct {
	Brokers      []string
	Topic        string
	ClientID     string
	WriteTimeout time.Duration
}

type Producer struct {
	w   *kafka.Writer
	cfg ProducerConfig
}

func NewProducer(cfg ProducerConfig) *Producer {
	// Short metadata TTL so broker address changes heal without a restart.
	tr := &kafka.Transport{
		ClientID:    cfg.ClientID,
		MetadataTTL: 10 * time.Second,
	}

	return &Producer{
		cfg: cfg,
		w: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
			BatchTimeout: 50 * time.Millisecond,
			Transport:    tr,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// Produce writes one keyed message within the configured timeout. No retries
// here: the outbox relay owns redelivery by leaving the row pending.
func (p *Producer) Produce(ctx context.Context, key, value []byte) error {
	timeout := p.cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return p.w.WriteMessages(cctx, kafka.Message{Key: key, Value: value})
}
