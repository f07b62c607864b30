package producer

import (
	"context"
	"time"

	"leavehub/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	batchSize           = 50
)

// Worker drains the outbox table into kafka. Rows stay pending until the
// write is acknowledged, so a crash between publish and MarkSent re-sends
// rather than drops; consumers must tolerate duplicates.
type Worker struct {
	repo   kafka.OutboxRepository
	writer *kafkago.Writer
	logger *zap.Logger
	poll   time.Duration
}

func NewWorker(repo kafka.OutboxRepository, writer *kafkago.Writer, pollInterval time.Duration, logger ...*zap.Logger) *Worker {
	l := zap.L().Named("kafka.producer.worker")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.worker")
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Worker{repo: repo, writer: writer, logger: l, poll: pollInterval}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.poll))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := w.drainBatch(ctx); err != nil {
				w.logger.Error("outbox batch failed", zap.Error(err))
			}
		}
	}
}

func (w *Worker) drainBatch(ctx context.Context) error {
	events, err := w.repo.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	w.logger.Debug("draining outbox", zap.Int("count", len(events)))

	for _, event := range events {
		if err := w.publish(ctx, event); err != nil {
			w.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			_ = w.repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			w.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		w.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return nil
}
