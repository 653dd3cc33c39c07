// Package redis caches character snapshots in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/statengine/internal/config"
	"github.com/cory-johannsen/statengine/internal/game/character"
)

// ErrCacheMiss is returned when no snapshot is cached under an ID.
var ErrCacheMiss = errors.New("snapshot not cached")

// Key returns the cache key of the snapshot of character id.
func Key(id string) string {
	return fmt.Sprintf("character:%s:snapshot", id)
}

// SnapshotCache stores character snapshots as JSON strings with a TTL.
type SnapshotCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewClient connects a go-redis client from cfg.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewSnapshotCache returns a cache over client. A ttl of zero keeps entries
// until they are deleted.
//
// Precondition: client must be non-nil; ttl >= 0.
func NewSnapshotCache(client goredis.UniversalClient, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get returns the snapshot cached under id.
//
// Postcondition: Returns ErrCacheMiss when nothing is cached.
func (c *SnapshotCache) Get(ctx context.Context, id string) (character.Snapshot, error) {
	if id == "" {
		return character.Snapshot{}, errors.New("snapshot id must not be empty")
	}
	raw, err := c.client.Get(ctx, Key(id)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return character.Snapshot{}, ErrCacheMiss
		}
		return character.Snapshot{}, fmt.Errorf("getting snapshot %s: %w", id, err)
	}
	var s character.Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return character.Snapshot{}, fmt.Errorf("decoding snapshot %s: %w", id, err)
	}
	return s, nil
}

// Set caches s under s.ID.
func (c *SnapshotCache) Set(ctx context.Context, s character.Snapshot) error {
	if s.ID == "" {
		return errors.New("snapshot id must not be empty")
	}
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", s.ID, err)
	}
	if err := c.client.Set(ctx, Key(s.ID), string(body), c.ttl).Err(); err != nil {
		return fmt.Errorf("caching snapshot %s: %w", s.ID, err)
	}
	return nil
}

// Delete evicts the snapshot cached under id. Evicting an absent entry is a no-op.
func (c *SnapshotCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, Key(id)).Err(); err != nil {
		return fmt.Errorf("evicting snapshot %s: %w", id, err)
	}
	return nil
}
