// Package broadcaster drains the trade journal to a Kafka topic.
// Delivery is at-least-once; consumers dedupe on the trade sequence.
package broadcaster

import (
	"context"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"matchcore/infra/codec"
	"matchcore/infra/journal"
)

type Broadcaster struct {
	journal  *journal.Journal
	producer sarama.SyncProducer
	topic    string
	interval time.Duration
	ser      codec.Serializer
	log      *slog.Logger
}

// Event is the published trade record. EventID identifies the publish
// attempt; Seq identifies the trade and is the dedupe key.
type Event struct {
	V             int    `json:"v"`
	EventID       string `json:"event_id"`
	Seq           uint64 `json:"seq"`
	AggressorID   uint64 `json:"aggressor_id"`
	PassiveID     uint64 `json:"passive_id"`
	Price         uint64 `json:"price"`
	Qty           uint64 `json:"qty"`
	AggressorSide uint8  `json:"aggressor_side"`
}

func New(
	j *journal.Journal,
	brokers []string,
	topic string,
	interval time.Duration,
	log *slog.Logger,
) (*Broadcaster, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	return &Broadcaster{
		journal:  j,
		producer: producer,
		topic:    topic,
		interval: interval,
		ser:      codec.JSON{},
		log:      log,
	}, nil
}

// Run publishes pending trades until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	b.log.Info("broadcaster started", "topic", b.topic, "interval", b.interval)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.publishPending()
		}
	}
}

func (b *Broadcaster) publishPending() {
	err := b.journal.ScanPending(func(e journal.Entry) error {
		if err := b.journal.MarkSent(e.Seq); err != nil {
			return err
		}

		payload, err := b.ser.Marshal(Event{
			V:             1,
			EventID:       uuid.NewString(),
			Seq:           e.Seq,
			AggressorID:   e.AggressorID,
			PassiveID:     e.PassiveID,
			Price:         e.Price,
			Qty:           e.Qty,
			AggressorSide: e.AggressorSide,
		})
		if err != nil {
			return err
		}

		msg := &sarama.ProducerMessage{
			Topic: b.topic,
			Value: sarama.ByteEncoder(payload),
		}
		if _, _, err := b.producer.SendMessage(msg); err != nil {
			// stays SENT, retried on the next tick
			b.log.Warn("trade publish failed", "seq", e.Seq, "err", err)
			return nil
		}

		return b.journal.MarkAcked(e.Seq)
	})
	if err != nil {
		b.log.Error("journal scan failed", "err", err)
	}
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
