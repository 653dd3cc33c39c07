// Package storage combines the snapshot repository and cache into one
// read-through store.
package storage

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/game/character"
	"github.com/cory-johannsen/statengine/internal/storage/postgres"
	redisstore "github.com/cory-johannsen/statengine/internal/storage/redis"
)

// Repository is the durable snapshot store. *postgres.SnapshotRepository satisfies it.
type Repository interface {
	Save(ctx context.Context, s character.Snapshot) error
	Load(ctx context.Context, id string) (character.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// Cache is the snapshot cache. *redis.SnapshotCache satisfies it.
type Cache interface {
	Get(ctx context.Context, id string) (character.Snapshot, error)
	Set(ctx context.Context, s character.Snapshot) error
	Delete(ctx context.Context, id string) error
}

var (
	_ Repository = (*postgres.SnapshotRepository)(nil)
	_ Cache      = (*redisstore.SnapshotCache)(nil)
)

// ErrNotFound is returned when no snapshot exists under an ID.
var ErrNotFound = errors.New("snapshot not found")

// Store reads through the cache to the repository. Cache failures are logged
// and never fail an operation the repository completed.
type Store struct {
	repo   Repository
	cache  Cache
	logger *zap.Logger
}

// NewStore returns a Store over repo and cache. A nil cache disables caching.
//
// Precondition: repo and logger must be non-nil.
func NewStore(repo Repository, cache Cache, logger *zap.Logger) *Store {
	return &Store{repo: repo, cache: cache, logger: logger}
}

// Save writes s to the repository, then refreshes the cache.
func (s *Store) Save(ctx context.Context, snap character.Snapshot) error {
	if err := s.repo.Save(ctx, snap); err != nil {
		return err
	}
	s.setCache(ctx, snap)
	return nil
}

// Load returns the snapshot stored under id, preferring the cache.
//
// Postcondition: Returns an error wrapping ErrNotFound when the repository has no row.
func (s *Store) Load(ctx context.Context, id string) (character.Snapshot, error) {
	if s.cache != nil {
		snap, err := s.cache.Get(ctx, id)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, redisstore.ErrCacheMiss) {
			s.logger.Warn("snapshot cache read failed", zap.String("character", id), zap.Error(err))
		}
	}

	snap, err := s.repo.Load(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrSnapshotNotFound) {
			return character.Snapshot{}, fmt.Errorf("loading %s: %w", id, ErrNotFound)
		}
		return character.Snapshot{}, err
	}
	s.setCache(ctx, snap)
	return snap, nil
}

// Delete removes id from the repository and evicts it from the cache.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrSnapshotNotFound) {
			return fmt.Errorf("deleting %s: %w", id, ErrNotFound)
		}
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, id); err != nil {
			s.logger.Warn("snapshot cache evict failed", zap.String("character", id), zap.Error(err))
		}
	}
	return nil
}

func (s *Store) setCache(ctx context.Context, snap character.Snapshot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, snap); err != nil {
		s.logger.Warn("snapshot cache write failed", zap.String("character", snap.ID), zap.Error(err))
	}
}
