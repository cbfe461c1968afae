package eventpublisher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/usecase"
)

// Publisher delivers one outbox event to an external system. Publish must
// return only after the event is durably accepted.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, event *domain.OutboxEvent) error
}

// Worker drains the outbox into a Publisher.
type Worker struct {
	outboxRepo usecase.OutboxRepository
	publisher  Publisher
	logger     zerolog.Logger
	metrics    *metrics.Metrics
	batchSize  int
	interval   time.Duration
	retention  time.Duration
}

// Config for Worker.
type Config struct {
	OutboxRepo usecase.OutboxRepository
	Publisher  Publisher
	Logger     zerolog.Logger
	Metrics    *metrics.Metrics // optional
	BatchSize  int              // Number of events to fetch per batch
	Interval   time.Duration    // Polling interval
	Retention  time.Duration    // Published events older than this are deleted; 0 keeps them
}

// NewWorker creates a new Worker.
func NewWorker(cfg Config) *Worker {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}

	return &Worker{
		outboxRepo: cfg.OutboxRepo,
		publisher:  cfg.Publisher,
		logger:     cfg.Logger.With().Str("component", "outbox").Str("publisher", cfg.Publisher.Name()).Logger(),
		metrics:    cfg.Metrics,
		batchSize:  cfg.BatchSize,
		interval:   cfg.Interval,
		retention:  cfg.Retention,
	}
}

// Start runs the worker until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info().
		Int("batch_size", w.batchSize).
		Dur("interval", w.interval).
		Msg("event publisher started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Process immediately on start
	if err := w.processEvents(ctx); err != nil {
		w.logger.Error().Err(err).Msg("error processing events on start")
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("event publisher shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := w.processEvents(ctx); err != nil {
				w.logger.Error().Err(err).Msg("error processing events")
			}
		}
	}
}

// processEvents publishes one batch of unpublished events and prunes old
// published ones.
func (w *Worker) processEvents(ctx context.Context) error {
	events, err := w.outboxRepo.GetUnpublished(ctx, w.batchSize)
	if err != nil {
		return err
	}

	if w.metrics != nil {
		w.metrics.OutboxPending.Set(float64(len(events)))
	}

	if len(events) > 0 {
		w.logger.Debug().Int("count", len(events)).Msg("processing events")
	}

	for _, event := range events {
		if err := w.publishEvent(ctx, event); err != nil {
			w.observe("error")
			w.logger.Error().
				Err(err).
				Str("event_id", event.ID).
				Str("event_type", event.EventType).
				Msg("failed to publish event")
			// Continue processing other events even if one fails
			continue
		}
		w.observe("ok")

		if err := w.outboxRepo.MarkPublished(ctx, event.ID, time.Now().UTC()); err != nil {
			// The event will be delivered again on the next poll.
			w.logger.Error().
				Err(err).
				Str("event_id", event.ID).
				Msg("failed to mark event as published")
		}
	}

	if w.retention > 0 {
		if err := w.outboxRepo.DeletePublished(ctx, time.Now().UTC().Add(-w.retention)); err != nil {
			w.logger.Warn().Err(err).Msg("failed to prune published events")
		}
	}

	return nil
}

func (w *Worker) publishEvent(ctx context.Context, event *domain.OutboxEvent) error {
	w.logger.Debug().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("aggregate_type", event.AggregateType).
		Str("aggregate_id", event.AggregateID).
		Msg("publishing event")

	return w.publisher.Publish(ctx, event)
}

func (w *Worker) observe(result string) {
	if w.metrics == nil {
		return
	}
	w.metrics.OutboxPublished.WithLabelValues(w.publisher.Name(), result).Inc()
}
