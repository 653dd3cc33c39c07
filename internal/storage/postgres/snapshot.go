package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/statengine/internal/game/character"
)

var (
	// ErrSnapshotNotFound is returned when no snapshot is stored under an ID.
	ErrSnapshotNotFound = errors.New("character snapshot not found")
	// ErrInvalidID is returned when a snapshot ID is not a UUID.
	ErrInvalidID = errors.New("character id must be a uuid")
)

// SnapshotSummary describes one stored snapshot without decoding it.
type SnapshotSummary struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Level     int       `db:"level"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SnapshotRepository stores character snapshots as JSONB rows.
type SnapshotRepository struct {
	db *pgxpool.Pool
}

// NewSnapshotRepository creates a SnapshotRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return u.String(), nil
}

// Save inserts s or replaces the snapshot stored under s.ID.
//
// Precondition: s.ID must be a UUID.
// Postcondition: Load(s.ID) returns s.
func (r *SnapshotRepository) Save(ctx context.Context, s character.Snapshot) error {
	id, err := parseID(s.ID)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", id, err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO character_snapshots (id, name, level, snapshot)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    level = EXCLUDED.level,
		    snapshot = EXCLUDED.snapshot,
		    updated_at = NOW()`,
		id, s.Name, s.Ledger.Level, body,
	)
	if err != nil {
		return fmt.Errorf("saving snapshot %s: %w", id, err)
	}
	return nil
}

// Load returns the snapshot stored under id.
//
// Postcondition: Returns ErrSnapshotNotFound if no row exists.
func (r *SnapshotRepository) Load(ctx context.Context, id string) (character.Snapshot, error) {
	key, err := parseID(id)
	if err != nil {
		return character.Snapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}
	var body []byte
	err = r.db.QueryRow(ctx, `SELECT snapshot FROM character_snapshots WHERE id = $1`, key).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return character.Snapshot{}, ErrSnapshotNotFound
		}
		return character.Snapshot{}, fmt.Errorf("loading snapshot %s: %w", key, err)
	}
	var s character.Snapshot
	if err := json.Unmarshal(body, &s); err != nil {
		return character.Snapshot{}, fmt.Errorf("decoding snapshot %s: %w", key, err)
	}
	return s, nil
}

// Delete removes the snapshot stored under id.
//
// Postcondition: Returns ErrSnapshotNotFound if no row existed.
func (r *SnapshotRepository) Delete(ctx context.Context, id string) error {
	key, err := parseID(id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM character_snapshots WHERE id = $1`, key)
	if err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}

// List returns a summary of every stored snapshot ordered by name then ID.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *SnapshotRepository) List(ctx context.Context) ([]SnapshotSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text AS id, name, level, updated_at
		FROM character_snapshots
		ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[SnapshotSummary])
	if err != nil {
		return nil, fmt.Errorf("scanning snapshots: %w", err)
	}
	return out, nil
}
