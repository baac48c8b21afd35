package repositories

import (
	"context"
	"errors"
	"time"

	"salesdrive/internal/domain/event"
)

// ErrEventNotFound is returned by FindByID and the status updates for unknown ids
var ErrEventNotFound = errors.New("event not found")

// EventRepository defines the contract for webhook event data access
type EventRepository interface {
	Save(ctx context.Context, event *event.Event) error
	FindByID(ctx context.Context, id int64) (*event.Event, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*event.Event, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*event.Event, error)
	FindIDsInWindow(ctx context.Context, since, until *time.Time, max int) ([]int64, error)
	MarkProcessed(ctx context.Context, id int64, status event.ProcessingStatus, lastError string) error
	MarkForReprocessing(ctx context.Context, id int64) error
}

// Deduper remembers delivery keys for a while. Claim reports true the first
// time a key is seen within ttl.
type Deduper interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
