// Package memory keeps webhook events in process. It backs the receiver when
// no database is configured and is used by tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"salesdrive/internal/domain/event"
	"salesdrive/internal/store/repositories"
)

// EventStore is an in-memory EventRepository
type EventStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*event.Event
	byUUID map[string]int64
	now    func() time.Time
}

var _ repositories.EventRepository = (*EventStore)(nil)

func NewEventStore() *EventStore {
	return &EventStore{
		byID:   make(map[int64]*event.Event),
		byUUID: make(map[string]int64),
		now:    time.Now,
	}
}

func clone(e *event.Event) *event.Event {
	c := *e
	if e.ProcessedAt != nil {
		t := *e.ProcessedAt
		c.ProcessedAt = &t
	}
	return &c
}

func (s *EventStore) Save(ctx context.Context, e *event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == 0 {
		if id, ok := s.byUUID[e.UUID]; ok {
			e.ID = id
			return nil
		}
		s.nextID++
		e.ID = s.nextID
		if e.UUID != "" {
			s.byUUID[e.UUID] = e.ID
		}
	} else if _, ok := s.byID[e.ID]; !ok {
		return repositories.ErrEventNotFound
	}
	s.byID[e.ID] = clone(e)
	return nil
}

func (s *EventStore) FindByID(ctx context.Context, id int64) (*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	return clone(e), nil
}

// sorted returns the events matching keep ordered by receipt time
func (s *EventStore) sorted(keep func(*event.Event) bool, desc bool) []*event.Event {
	out := make([]*event.Event, 0, len(s.byID))
	for _, e := range s.byID {
		if keep(e) {
			out = append(out, clone(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ReceivedAt.Equal(b.ReceivedAt) {
			if desc {
				return a.ID > b.ID
			}
			return a.ID < b.ID
		}
		if desc {
			return a.ReceivedAt.After(b.ReceivedAt)
		}
		return a.ReceivedAt.Before(b.ReceivedAt)
	})
	return out
}

func (s *EventStore) FindUnprocessed(ctx context.Context, limit int) ([]*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.sorted(func(e *event.Event) bool { return !e.IsProcessed() }, false)
	return page(out, limit, 0), nil
}

func (s *EventStore) ListRecent(ctx context.Context, limit, offset int) ([]*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.sorted(func(*event.Event) bool { return true }, true)
	return page(out, limit, offset), nil
}

func (s *EventStore) FindIDsInWindow(ctx context.Context, since, until *time.Time, max int) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.sorted(func(e *event.Event) bool {
		if since != nil && e.ReceivedAt.Before(*since) {
			return false
		}
		if until != nil && e.ReceivedAt.After(*until) {
			return false
		}
		return true
	}, false)

	out = page(out, max, 0)
	ids := make([]int64, len(out))
	for i, e := range out {
		ids[i] = e.ID
	}
	return ids, nil
}

func (s *EventStore) MarkProcessed(ctx context.Context, id int64, status event.ProcessingStatus, lastError string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return repositories.ErrEventNotFound
	}
	now := s.now()
	e.ProcessingStatus = status
	e.ProcessedAt = &now
	e.LastError = lastError
	e.Attempts++
	return nil
}

func (s *EventStore) MarkForReprocessing(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return repositories.ErrEventNotFound
	}
	e.ProcessingStatus = event.ProcessingQueued
	e.ProcessedAt = nil
	return nil
}

func page(events []*event.Event, limit, offset int) []*event.Event {
	if offset >= len(events) {
		return nil
	}
	events = events[offset:]
	if limit > 0 && limit < len(events) {
		events = events[:limit]
	}
	return events
}
