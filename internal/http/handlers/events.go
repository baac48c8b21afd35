package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"salesdrive/internal/domain/event"
	eventsvc "salesdrive/internal/services/event"
)

// EventLister lists stored events newest first
type EventLister interface {
	ListRecent(ctx context.Context, limit, offset int) ([]*event.Event, error)
}

// Replayer requeues stored events
type Replayer interface {
	ReplayEvents(ctx context.Context, req eventsvc.ReplayRequest) (*eventsvc.ReplayResponse, error)
}

type eventView struct {
	ID               int64           `json:"id"`
	UUID             string          `json:"uuid"`
	Type             string          `json:"type"`
	Name             string          `json:"name,omitempty"`
	Account          string          `json:"account,omitempty"`
	EntityID         int             `json:"entityId,omitempty"`
	ReceivedAt       time.Time       `json:"receivedAt"`
	ProcessedAt      *time.Time      `json:"processedAt,omitempty"`
	ProcessingStatus string          `json:"status"`
	Attempts         int             `json:"attempts"`
	LastError        string          `json:"lastError,omitempty"`
	Payload          json.RawMessage `json:"payload,omitempty"`
}

func toView(e *event.Event) eventView {
	return eventView{
		ID:               e.ID,
		UUID:             e.UUID,
		Type:             string(e.Type),
		Name:             e.Name,
		Account:          e.Account,
		EntityID:         e.EntityID,
		ReceivedAt:       e.ReceivedAt,
		ProcessedAt:      e.ProcessedAt,
		ProcessingStatus: string(e.ProcessingStatus),
		Attempts:         e.Attempts,
		LastError:        e.LastError,
		Payload:          e.Payload,
	}
}

func intParam(r *http.Request, name string, def, max int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

// ListEvents returns stored events, newest first. Query: limit (default 50,
// max 500), offset.
func ListEvents(events EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := intParam(r, "limit", 50, 500)
		if limit == 0 {
			limit = 50
		}
		offset := intParam(r, "offset", 0, 0)

		list, err := events.ListRecent(r.Context(), limit, offset)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("list events failed")
			writeError(w, http.StatusInternalServerError, "list failed")
			return
		}

		out := make([]eventView, len(list))
		for i, e := range list {
			out[i] = toView(e)
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": out, "limit": limit, "offset": offset})
	}
}

type replayReq struct {
	EventIDs []int64 `json:"eventIds,omitempty"`
	SinceISO string  `json:"since,omitempty"` // RFC3339
	UntilISO string  `json:"until,omitempty"` // RFC3339
	Max      int     `json:"max,omitempty"`
}

func parseISO(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ReplayEvents requeues events by id or by receipt window
func ReplayEvents(replay Replayer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in replayReq
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				writeError(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		since, err := parseISO(in.SinceISO)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be RFC3339")
			return
		}
		until, err := parseISO(in.UntilISO)
		if err != nil {
			writeError(w, http.StatusBadRequest, "until must be RFC3339")
			return
		}

		resp, err := replay.ReplayEvents(r.Context(), eventsvc.ReplayRequest{
			EventIDs: in.EventIDs,
			Since:    since,
			Until:    until,
			Max:      in.Max,
		})
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("replay failed")
			writeError(w, http.StatusInternalServerError, "replay failed")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
