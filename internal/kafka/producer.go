package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/RaikyD/digital-link/internal/application"
	"github.com/RaikyD/digital-link/internal/logger"
	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

// Producer publishes shipment lifecycle events. It satisfies application.Notifier.
type Producer struct {
	w     *kafka.Writer
	write func(ctx context.Context, msgs ...kafka.Message) error

	inflight sync.WaitGroup
}

func NewProducer(brokersSTR, topic string) *Producer {
	brokers := strings.Split(brokersSTR, ",")

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &Producer{w: w, write: w.WriteMessages}
}

// Close waits for background publishes started by Notify, then closes the writer.
func (p *Producer) Close() error {
	p.inflight.Wait()
	return p.w.Close()
}

func (p *Producer) PublishEvent(ctx context.Context, ev application.Event) error {
	m, err := eventMessage(ev)
	if err != nil {
		return err
	}
	return p.write(ctx, m)
}

// Notify publishes in the background; a broker outage never blocks a workflow.
func (p *Producer) Notify(ctx context.Context, ev application.Event) {
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := p.PublishEvent(ctx, ev); err != nil {
			logger.Warn("kafka publish failed", "type", ev.Type, "shipment", ev.ShipmentID, "err", err)
		}
	}()
}

func eventMessage(ev application.Event) (kafka.Message, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(ev.ShipmentID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event-type", Value: []byte(ev.Type)},
		},
	}, nil
}
