package main

import (
	"context"

	"github.com/rs/zerolog"

	"salesdrive/internal/domain/event"
)

// logOrderEvent is the default order handler; it records the status the
// order is in after the change.
func logOrderEvent(logger zerolog.Logger) func(ctx context.Context, evt *event.Event) error {
	return func(ctx context.Context, evt *event.Event) error {
		e := logger.Info().
			Int64("event_id", evt.ID).
			Str("name", evt.Name).
			Int("order_id", evt.EntityID)
		if evt.Order != nil {
			e = e.Int("status_id", evt.Order.StatusID).Str("external_id", evt.Order.ExternalID)
		}
		e.Msg("order webhook")
		return nil
	}
}
