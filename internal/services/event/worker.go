package event

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"salesdrive/internal/domain/event"
	"salesdrive/internal/store/repositories"
)

// Worker handles background processing of webhook events
type Worker struct {
	eventRepo repositories.EventRepository
	processor *Processor
	pollEvery time.Duration
	batchSize int
	log       zerolog.Logger
}

// NewWorker creates a new event processing worker
func NewWorker(
	eventRepo repositories.EventRepository,
	processor *Processor,
	pollEvery time.Duration,
	batchSize int,
	logger zerolog.Logger,
) *Worker {
	if pollEvery == 0 {
		pollEvery = 2 * time.Second
	}
	if batchSize == 0 {
		batchSize = 50
	}

	return &Worker{
		eventRepo: eventRepo,
		processor: processor,
		pollEvery: pollEvery,
		batchSize: batchSize,
		log:       logger.With().Str("component", "worker").Logger(),
	}
}

// Run processes events until ctx is cancelled
func (w *Worker) Run(ctx context.Context) {
	w.log.Info().
		Dur("poll_every", w.pollEvery).
		Int("batch_size", w.batchSize).
		Msg("event processing worker started")

	ticker := time.NewTicker(w.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("event processing worker stopping")
			return
		case <-ticker.C:
			if _, err := w.ProcessBatch(ctx); err != nil {
				w.log.Error().Err(err).Msg("error processing event batch")
			}
		}
	}
}

// ProcessBatch processes the next batch of unprocessed events and returns how
// many were picked up. A failing event does not stop the batch.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	events, err := w.eventRepo.FindUnprocessed(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	w.log.Debug().Int("count", len(events)).Msg("processing event batch")
	for _, evt := range events {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		w.processEvent(ctx, evt)
	}
	return len(events), nil
}

func (w *Worker) processEvent(ctx context.Context, evt *event.Event) {
	start := time.Now()
	err := w.processor.ProcessEvent(ctx, evt)
	duration := time.Since(start)

	if err != nil {
		w.log.Error().
			Err(err).
			Int64("event_id", evt.ID).
			Str("type", string(evt.Type)).
			Dur("duration", duration).
			Msg("event processing failed")
		return
	}

	w.log.Info().
		Int64("event_id", evt.ID).
		Str("type", string(evt.Type)).
		Str("name", evt.Name).
		Dur("duration", duration).
		Msg("event processed successfully")
}

// ProcessEventByID processes a specific event by ID
func (w *Worker) ProcessEventByID(ctx context.Context, eventID int64) error {
	evt, err := w.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	return w.processor.ProcessEvent(ctx, evt)
}

// ReprocessEvent marks an event for reprocessing and processes it right away
func (w *Worker) ReprocessEvent(ctx context.Context, eventID int64) error {
	if err := w.eventRepo.MarkForReprocessing(ctx, eventID); err != nil {
		return err
	}
	return w.ProcessEventByID(ctx, eventID)
}
