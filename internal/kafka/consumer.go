package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/RaikyD/digital-link/internal/domain"
	"github.com/RaikyD/digital-link/internal/logger"
	"github.com/segmentio/kafka-go"
)

type ConsumerConfig struct {
	Brokers string
	Topic   string
	GroupID string
	// Now dates drafts that arrive without one. Defaults to time.Now.
	Now func() time.Time
}

// DraftSink is where incoming drafts go; the company workflow in production.
type DraftSink interface {
	CreateShipment(ctx context.Context, d domain.Draft) (domain.Shipment, error)
}

type outcome int

const (
	outcomeCommit outcome = iota
	outcomeRetry
)

// StartConsumer reads shipment drafts pushed by an external planning system.
func StartConsumer(ctx context.Context, sink DraftSink, cfg ConsumerConfig) (*kafka.Reader, error) {
	brokers := strings.Split(cfg.Brokers, ",")
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         brokers,
		GroupID:         cfg.GroupID,
		Topic:           cfg.Topic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  0,
		StartOffset:     kafka.FirstOffset,
		ReadLagInterval: -1,
	})

	logger.Info("kafka consumer starting", "brokers", cfg.Brokers, "topic", cfg.Topic, "group", cfg.GroupID)

	go func() {
		defer r.Close()

		backoff := time.Millisecond * 300
		for {
			m, err := r.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("kafka fetch error", "err", err)
				time.Sleep(backoff)
				continue
			}
			logger.Info("draft fetched", "partition", m.Partition, "offset", m.Offset)

			if handleDraft(ctx, sink, m.Value, cfg.Now) == outcomeRetry {
				time.Sleep(backoff)
				continue
			}

			if err := r.CommitMessages(ctx, m); err != nil {
				logger.Warn("[kafka] commit failed", "err", err)
			} else {
				logger.Info("[kafka] committed", "topic", m.Topic, "partition", m.Partition, "offset", m.Offset)
			}
		}
	}()
	return r, nil
}

// handleDraft decides whether a message is done with. Bad input is never retried.
func handleDraft(ctx context.Context, sink DraftSink, value []byte, now func() time.Time) outcome {
	var d domain.Draft
	if err := json.Unmarshal(value, &d); err != nil {
		logger.Warn("kafka invalid json. skip and commit", "err", err)
		return outcomeCommit
	}
	if d.Date == "" {
		d.Date = now().Format(domain.DateLayout)
	}

	sh, err := sink.CreateShipment(ctx, d)
	if err != nil {
		if domain.IsValidation(err) {
			logger.Warn("kafka draft rejected. skip and commit", "err", err)
			return outcomeCommit
		}
		logger.Warn("kafka create shipment fail, will retry", "err", err)
		return outcomeRetry
	}
	logger.Info("shipment imported", "id", sh.ID)
	return outcomeCommit
}
