package memory

import (
	"context"
	"sync"
	"time"

	"salesdrive/internal/store/repositories"
)

// Deduper is an in-process repositories.Deduper. Expired keys are dropped
// lazily on Claim.
type Deduper struct {
	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

var _ repositories.Deduper = (*Deduper)(nil)

func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]time.Time), now: time.Now}
}

func (d *Deduper) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for k, exp := range d.seen {
		if !now.Before(exp) {
			delete(d.seen, k)
		}
	}
	if _, ok := d.seen[key]; ok {
		return false, nil
	}
	d.seen[key] = now.Add(ttl)
	return true, nil
}
