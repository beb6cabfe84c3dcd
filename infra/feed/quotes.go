// Package feed publishes top-of-book quote snapshots for market-data
// consumers. It sits outside the matching hot path: the owner decides
// when a quote is worth publishing.
package feed

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/segmentio/kafka-go"

	"matchcore/infra/codec"
)

// Quote is a top-of-book snapshot. Prices carry the fixed-point scale;
// an empty side carries the sentinel.
type Quote struct {
	BestBid uint64 `json:"best_bid"`
	BestAsk uint64 `json:"best_ask"`
	BidQty  uint64 `json:"bid_qty"`
	AskQty  uint64 `json:"ask_qty"`
	Seq     uint64 `json:"seq"`
	Time    int64  `json:"time"`
}

type Publisher struct {
	writer *kafka.Writer
	ser    codec.Serializer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
		ser: codec.JSON{},
	}
}

// Publish sends one quote snapshot, keyed by trade sequence so a
// compacted topic keeps the latest view.
func (p *Publisher) Publish(ctx context.Context, q Quote) error {
	value, err := p.ser.Marshal(q)
	if err != nil {
		return err
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, q.Seq)
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
