package event

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"salesdrive/internal/store/repositories"
)

const (
	defaultReplayMax = 200
	maxReplayMax     = 1000
)

// ReplayService puts stored events back in the processing queue
type ReplayService struct {
	eventRepo repositories.EventRepository
	log       zerolog.Logger
}

func NewReplayService(eventRepo repositories.EventRepository, logger zerolog.Logger) *ReplayService {
	return &ReplayService{
		eventRepo: eventRepo,
		log:       logger.With().Str("component", "replay").Logger(),
	}
}

// ReplayRequest selects events by id, or by receipt window when EventIDs is empty
type ReplayRequest struct {
	EventIDs []int64    `json:"eventIds,omitempty"`
	Since    *time.Time `json:"since,omitempty"`
	Until    *time.Time `json:"until,omitempty"`
	Max      int        `json:"max,omitempty"`
}

type ReplayResponse struct {
	RequeuedCount int `json:"requeued"`
}

// ReplayEvents requeues the selected events. Unknown ids are skipped.
func (s *ReplayService) ReplayEvents(ctx context.Context, req ReplayRequest) (*ReplayResponse, error) {
	ids := req.EventIDs
	if len(ids) == 0 {
		max := req.Max
		if max <= 0 {
			max = defaultReplayMax
		} else if max > maxReplayMax {
			max = maxReplayMax
		}
		var err error
		if ids, err = s.eventRepo.FindIDsInWindow(ctx, req.Since, req.Until, max); err != nil {
			return nil, err
		}
	}

	count := 0
	for _, id := range ids {
		err := s.eventRepo.MarkForReprocessing(ctx, id)
		switch {
		case err == nil:
			count++
		case errors.Is(err, repositories.ErrEventNotFound):
			s.log.Debug().Int64("event_id", id).Msg("replay skipped unknown event")
		default:
			return nil, err
		}
	}

	s.log.Info().Int("requeued", count).Msg("events requeued")
	return &ReplayResponse{RequeuedCount: count}, nil
}
