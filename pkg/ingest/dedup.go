package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aminofox/uasklv/pkg/config"
)

// Dedup tracks which source objects have already been decoded, so a
// re-delivered S3 event (or a re-run over the same object) doesn't
// redecode it. It is a thin wrapper over a single Redis SetNX, not a
// general-purpose cache: the only operation ingestion needs is "have I
// seen this key before".
type Dedup struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewDedup builds a Dedup backed by a single Redis client.
func NewDedup(cfg config.RedisConfig) *Dedup {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ttl := cfg.DedupTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Dedup{client: client, prefix: "uasklv:ingest:seen:", ttl: ttl}
}

// Claim reports whether key has not been seen before, and marks it
// seen as a side effect. A true result means the caller should
// proceed with decoding; false means another worker already claimed
// (or is claiming) this object.
func (d *Dedup) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.prefix+key, 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("ingest: dedup claim for %q: %w", key, err)
	}
	return ok, nil
}

// Close releases the underlying Redis connection pool.
func (d *Dedup) Close() error {
	return d.client.Close()
}
