package event

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/event"
	"salesdrive/internal/store/repositories"
)

// Ingestor turns webhook bodies into stored pending events
type Ingestor struct {
	eventRepo repositories.EventRepository
	dedup     repositories.Deduper
	dedupTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewIngestor(eventRepo repositories.EventRepository, dedup repositories.Deduper, dedupTTL time.Duration, logger zerolog.Logger) *Ingestor {
	return &Ingestor{
		eventRepo: eventRepo,
		dedup:     dedup,
		dedupTTL:  dedupTTL,
		log:       logger.With().Str("component", "ingest").Logger(),
		now:       time.Now,
	}
}

// Receive parses raw and stores it. A delivery seen within the dedup window is
// not stored again and is reported with duplicate set.
func (i *Ingestor) Receive(ctx context.Context, raw []byte) (evt *event.Event, duplicate bool, err error) {
	evt, err = event.Parse(raw, i.now())
	if err != nil {
		return nil, false, apierr.InvalidArgument("%v", err)
	}

	if i.dedup != nil {
		first, err := i.dedup.Claim(ctx, evt.UUID, i.dedupTTL)
		if err != nil {
			// storage still dedups by uuid
			i.log.Warn().Err(err).Str("uuid", evt.UUID).Msg("dedup claim failed")
		} else if !first {
			i.log.Debug().Str("uuid", evt.UUID).Msg("duplicate webhook ignored")
			return evt, true, nil
		}
	}

	if err := i.eventRepo.Save(ctx, evt); err != nil {
		return nil, false, fmt.Errorf("save event: %w", err)
	}

	i.log.Info().
		Int64("event_id", evt.ID).
		Str("type", string(evt.Type)).
		Str("name", evt.Name).
		Int("entity_id", evt.EntityID).
		Msg("webhook received")
	return evt, false, nil
}
