package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/cory-johannsen/statengine/internal/content"
	"github.com/cory-johannsen/statengine/internal/game/character"
)

type SnapshotCacheTestSuite struct {
	suite.Suite
	client *goredis.Client
	mock   redismock.ClientMock
	cache  *SnapshotCache
	snap   character.Snapshot
}

func (s *SnapshotCacheTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.cache = NewSnapshotCache(s.client, time.Minute)

	c, err := character.New("Zara", content.NewPack(), character.WithID("c1"))
	s.Require().NoError(err)
	_, err = c.AddXP(50, false)
	s.Require().NoError(err)
	s.snap = c.Snapshot()
}

func (s *SnapshotCacheTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestSnapshotCacheTestSuite(t *testing.T) {
	suite.Run(t, new(SnapshotCacheTestSuite))
}

func (s *SnapshotCacheTestSuite) encoded() string {
	body, err := json.Marshal(s.snap)
	s.Require().NoError(err)
	return string(body)
}

func (s *SnapshotCacheTestSuite) TestKey() {
	s.Equal("character:c1:snapshot", Key("c1"))
}

func (s *SnapshotCacheTestSuite) TestSet() {
	ctx := context.Background()

	s.mock.ExpectSet("character:c1:snapshot", s.encoded(), time.Minute).SetVal("OK")
	s.NoError(s.cache.Set(ctx, s.snap))

	s.mock.ExpectSet("character:c1:snapshot", s.encoded(), time.Minute).SetErr(errors.New("redis down"))
	s.Error(s.cache.Set(ctx, s.snap))

	s.Error(s.cache.Set(ctx, character.Snapshot{}))
}

func (s *SnapshotCacheTestSuite) TestGet() {
	ctx := context.Background()

	s.mock.ExpectGet("character:c1:snapshot").SetVal(s.encoded())
	got, err := s.cache.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Equal(s.snap.Ledger, got.Ledger)
	s.Equal(s.snap.Resources, got.Resources)

	restored, err := character.Restore(got, content.NewPack())
	s.Require().NoError(err)
	s.Equal(2, restored.Level())
}

func (s *SnapshotCacheTestSuite) TestGet_Miss() {
	s.mock.ExpectGet("character:c1:snapshot").RedisNil()
	_, err := s.cache.Get(context.Background(), "c1")
	s.True(errors.Is(err, ErrCacheMiss))
}

func (s *SnapshotCacheTestSuite) TestGet_Errors() {
	ctx := context.Background()

	s.mock.ExpectGet("character:c1:snapshot").SetErr(errors.New("redis down"))
	_, err := s.cache.Get(ctx, "c1")
	s.Error(err)
	s.False(errors.Is(err, ErrCacheMiss))

	s.mock.ExpectGet("character:c1:snapshot").SetVal("{not json")
	_, err = s.cache.Get(ctx, "c1")
	s.Error(err)

	_, err = s.cache.Get(ctx, "")
	s.Error(err)
}

func (s *SnapshotCacheTestSuite) TestDelete() {
	ctx := context.Background()
	s.mock.ExpectDel("character:c1:snapshot").SetVal(1)
	s.NoError(s.cache.Delete(ctx, "c1"))

	s.mock.ExpectDel("character:c1:snapshot").SetVal(0)
	s.NoError(s.cache.Delete(ctx, "c1"))

	s.mock.ExpectDel("character:c1:snapshot").SetErr(errors.New("redis down"))
	s.Error(s.cache.Delete(ctx, "c1"))
}

func (s *SnapshotCacheTestSuite) TestZeroTTL() {
	cache := NewSnapshotCache(s.client, 0)
	s.mock.ExpectSet("character:c1:snapshot", s.encoded(), 0).SetVal("OK")
	s.NoError(cache.Set(context.Background(), s.snap))
}
