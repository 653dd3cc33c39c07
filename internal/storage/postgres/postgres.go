// Package postgres persists character snapshots in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/config"
)

// ApplicationName is reported to the server for every pooled connection.
const ApplicationName = "statengine"

// ErrSchemaMissing is returned by RequireSchema when migrations have not run.
var ErrSchemaMissing = errors.New("postgres: character_snapshots table missing; run cmd/migrate")

// Pool owns the pgx connection pool shared by the snapshot repository.
type Pool struct {
	pool *pgxpool.Pool
}

// PoolConfig translates cfg into a pgxpool configuration.
//
// Postcondition: returns an error when cfg.DSN() does not parse.
func PoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = ApplicationName
	return pc, nil
}

// NewPool opens a pool and verifies the server answers a ping.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a connected Pool or a non-nil error.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Pool, error) {
	pc, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	start := time.Now()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	logger.Info("connected to postgres",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
		zap.Int32("max_conns", pc.MaxConns),
		zap.Duration("ping", time.Since(start)),
	)
	return &Pool{pool: pool}, nil
}

// RequireSchema returns ErrSchemaMissing when the snapshot table does not exist.
func (p *Pool) RequireSchema(ctx context.Context) error {
	var present bool
	err := p.pool.QueryRow(ctx,
		`SELECT to_regclass('character_snapshots') IS NOT NULL`,
	).Scan(&present)
	if err != nil {
		return fmt.Errorf("checking snapshot schema: %w", err)
	}
	if !present {
		return ErrSchemaMissing
	}
	return nil
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool for use by repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
