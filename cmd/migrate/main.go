// Command migrate applies the character snapshot schema migrations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/config"
	"github.com/cory-johannsen/statengine/internal/observability"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	source := flag.String("source", "migrations", "directory holding the migration files")
	action := flag.String("direction", "up", "up, down, force or version")
	steps := flag.Int("steps", 0, "steps to move for up/down (0 = all); target version for force")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("migrate")

	m, err := migrate.New("file://"+*source, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("creating migrator", zap.String("source", *source), zap.Error(err))
	}
	defer m.Close()

	start := time.Now()
	err = run(m, *action, *steps)
	version, dirty, verr := m.Version()
	fields := []zap.Field{
		zap.String("action", *action),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
		zap.Duration("elapsed", time.Since(start)),
	}
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("schema already current", fields...)
	case err != nil:
		logger.Fatal("migration failed", append(fields, zap.Error(err))...)
	case errors.Is(verr, migrate.ErrNilVersion):
		logger.Info("no migrations applied", fields...)
	default:
		logger.Info("migration complete", fields...)
	}
}

// migrator is the subset of *migrate.Migrate that run drives.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Force(version int) error
}

// run performs action. For up and down, n limits the steps taken and 0
// moves all the way. For force, n is the version recorded as clean.
// version changes nothing.
func run(m migrator, action string, n int) error {
	if n < 0 {
		return fmt.Errorf("steps must be >= 0, got %d", n)
	}
	switch action {
	case "up":
		if n > 0 {
			return m.Steps(n)
		}
		return m.Up()
	case "down":
		if n > 0 {
			return m.Steps(-n)
		}
		return m.Down()
	case "force":
		return m.Force(n)
	case "version":
		return nil
	}
	return fmt.Errorf("invalid direction %q: must be up, down, force or version", action)
}
