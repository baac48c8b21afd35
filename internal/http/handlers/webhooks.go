package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/event"
)

const maxWebhookBody = 1 << 20

// Receiver stores webhook deliveries. *event.Ingestor from the services layer
// implements it.
type Receiver interface {
	Receive(ctx context.Context, raw []byte) (*event.Event, bool, error)
}

// SalesDriveWebhook accepts one webhook delivery and queues it for processing
func SalesDriveWebhook(rcv Receiver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := zerolog.Ctx(r.Context())

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
		if err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")
			return
		}

		evt, duplicate, err := rcv.Receive(r.Context(), body)
		switch {
		case errors.Is(err, apierr.ErrInvalidArgument):
			log.Warn().Err(err).Msg("bad webhook payload")
			writeError(w, http.StatusBadRequest, "bad payload")
			return
		case err != nil:
			log.Error().Err(err).Msg("webhook save failed")
			writeError(w, http.StatusInternalServerError, "save failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"id":        evt.ID,
			"duplicate": duplicate,
		})
	}
}
