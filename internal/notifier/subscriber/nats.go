// Package subscriber consumes product change events from NATS JetStream.
package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/abgdnv/gocrud/pkg/config"
	"github.com/abgdnv/gocrud/pkg/messaging/events"
	natsclient "github.com/abgdnv/gocrud/pkg/nats"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/sync/errgroup"
)

// message is the part of jetstream.Msg a handler needs.
type message interface {
	Data() []byte
	Subject() string
	Ack() error
	Nak() error
}

// Start makes sure the stream and a durable pull consumer exist, then runs the configured
// number of workers until ctx is cancelled.
func Start(ctx context.Context, js jetstream.JetStream, cfg config.SubscriberConfig, logger *slog.Logger) error {
	if err := natsclient.EnsureStream(ctx, js, cfg.Stream, cfg.Subject); err != nil {
		return err
	}
	consumer, err := js.CreateOrUpdateConsumer(ctx, cfg.Stream, jetstream.ConsumerConfig{
		Durable:       cfg.Durable,
		FilterSubject: cfg.Subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       cfg.AckWait,
	})
	if err != nil {
		return err
	}
	logger.Info("Consumer ready", "stream", cfg.Stream, "durable", cfg.Durable, "subject", cfg.Subject)

	g, gCtx := errgroup.WithContext(ctx)
	for i := range cfg.Workers {
		workerLogger := logger.With("worker", i)
		g.Go(func() error {
			return runWorker(gCtx, consumer, cfg.Batch, cfg.FetchTimeout, workerLogger)
		})
	}
	return g.Wait()
}

// runWorker fetches batches from the consumer and handles every message until ctx is done.
func runWorker(ctx context.Context, consumer jetstream.Consumer, batchSize int, timeout time.Duration, logger *slog.Logger) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch, err := consumer.Fetch(batchSize, jetstream.FetchMaxWait(timeout))
		if err != nil {
			if !errors.Is(err, nats.ErrTimeout) {
				logger.Error("Failed to fetch messages", "error", err)
				sleep(ctx, timeout)
			}
			continue
		}
		for msg := range batch.Messages() {
			handleMessage(msg, logger)
		}
		if err := batch.Error(); err != nil && !errors.Is(err, nats.ErrTimeout) {
			logger.Warn("Fetch ended with error", "error", err)
		}
	}
}

// handleMessage decodes a product event, logs it and acknowledges the message. Payloads that
// are not product events are negatively acknowledged.
func handleMessage(msg message, logger *slog.Logger) {
	var event events.ProductEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error("Failed to unmarshal product event", "error", err, "subject", msg.Subject())
		if err := msg.Nak(); err != nil {
			logger.Error("Failed to nak message", "error", err)
		}
		return
	}

	logger.Info("Product changed",
		slog.String("subject", msg.Subject()),
		slog.String("type", event.Type),
		slog.Int64("product_id", event.ProductID),
		slog.Int("fields", len(event.Product)),
		slog.String("occurred_at", event.OccurredAt.Format(time.RFC3339Nano)))

	if err := msg.Ack(); err != nil {
		logger.Error("Failed to ack message", "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
