package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"salesdrive/internal/store/repositories"
)

const keyPrefix = "salesdrive:webhook:"

// Deduper claims delivery keys with SET NX so that every receiver replica
// sees the same history
type Deduper struct {
	client redis.UniversalClient
}

var _ repositories.Deduper = (*Deduper)(nil)

func NewDeduper(client redis.UniversalClient) *Deduper {
	return &Deduper{client: client}
}

// Open connects to addr and pings it
func Open(ctx context.Context, addr string) (redis.UniversalClient, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (d *Deduper) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := d.client.SetNX(ctx, keyPrefix+key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}
