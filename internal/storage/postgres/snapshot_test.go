package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/statengine/internal/content"
	"github.com/cory-johannsen/statengine/internal/game/character"
	"github.com/cory-johannsen/statengine/internal/game/stats"
	"github.com/cory-johannsen/statengine/internal/storage/postgres"
	"github.com/cory-johannsen/statengine/internal/testutil"
)

func setupRepo(t *testing.T) *postgres.SnapshotRepository {
	t.Helper()
	return postgres.NewSnapshotRepository(testutil.NewPool(t))
}

func makeSnapshot(t *testing.T, name string, xp float64) character.Snapshot {
	t.Helper()
	c, err := character.New(name, content.NewPack())
	require.NoError(t, err)
	_, err = c.AddXP(xp, false)
	require.NoError(t, err)
	return c.Snapshot()
}

func TestSnapshotRepository_SaveLoad(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	snap := makeSnapshot(t, "Zara", 50)
	require.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Load(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.Ledger, got.Ledger)
	assert.Equal(t, snap.Resources, got.Resources)

	restored, err := character.Restore(got, content.NewPack())
	require.NoError(t, err)
	assert.Equal(t, 60.0, restored.Get(stats.MaxHealth))
}

func TestSnapshotRepository_SaveUpserts(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	snap := makeSnapshot(t, "Zara", 5)
	require.NoError(t, repo.Save(ctx, snap))
	snap.Ledger.Level = 4
	snap.Name = "Zara the Bold"
	require.NoError(t, repo.Save(ctx, snap))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Zara the Bold", list[0].Name)
	assert.Equal(t, 4, list[0].Level)
	assert.Equal(t, snap.ID, list[0].ID)
}

func TestSnapshotRepository_LoadMissing(t *testing.T) {
	repo := setupRepo(t)
	_, err := repo.Load(context.Background(), uuid.NewString())
	assert.True(t, errors.Is(err, postgres.ErrSnapshotNotFound))
}

func TestSnapshotRepository_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	snap := makeSnapshot(t, "Zara", 0)
	require.NoError(t, repo.Save(ctx, snap))
	require.NoError(t, repo.Delete(ctx, snap.ID))
	assert.True(t, errors.Is(repo.Delete(ctx, snap.ID), postgres.ErrSnapshotNotFound))
}

func TestSnapshotRepository_InvalidID(t *testing.T) {
	repo := postgres.NewSnapshotRepository(nil)
	snap := character.Snapshot{ID: "hero-1", Name: "Hero"}
	assert.True(t, errors.Is(repo.Save(context.Background(), snap), postgres.ErrInvalidID))
	_, err := repo.Load(context.Background(), "nope")
	assert.True(t, errors.Is(err, postgres.ErrInvalidID))
	assert.True(t, errors.Is(repo.Delete(context.Background(), ""), postgres.ErrInvalidID))
}

func TestSnapshotRepository_ListOrderedByName(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	for _, name := range []string{"Morn", "Aldric", "Zara"} {
		require.NoError(t, repo.Save(ctx, makeSnapshot(t, name, 0)))
	}
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Aldric", "Morn", "Zara"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestPropertySnapshotRepository_RoundTripLedger(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	pack := content.NewPack()
	rapid.Check(t, func(rt *rapid.T) {
		c, err := character.New("Prop", pack)
		require.NoError(rt, err)
		_, err = c.AddXP(rapid.Float64Range(0, 1e4).Draw(rt, "xp"), false)
		require.NoError(rt, err)

		snap := c.Snapshot()
		require.NoError(rt, repo.Save(ctx, snap))
		got, err := repo.Load(ctx, snap.ID)
		require.NoError(rt, err)
		assert.Equal(rt, snap.Ledger, got.Ledger)

		restored, err := character.Restore(got, pack)
		require.NoError(rt, err)
		assert.True(rt, c.Attributes().Equal(restored.Attributes()))
	})
}
