// Package main provides statsim, a CLI that builds a character from content,
// applies a scenario, and prints the resulting attribute set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/config"
	"github.com/cory-johannsen/statengine/internal/content"
	"github.com/cory-johannsen/statengine/internal/game/character"
	"github.com/cory-johannsen/statengine/internal/observability"
	"github.com/cory-johannsen/statengine/internal/scripting"
	"github.com/cory-johannsen/statengine/internal/storage"
	"github.com/cory-johannsen/statengine/internal/storage/postgres"
	redisstore "github.com/cory-johannsen/statengine/internal/storage/redis"
)

func main() {
	start := time.Now()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("loading .env: %v", err)
	}

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty = defaults only")
	var sc scenario
	flag.StringVar(&sc.Name, "name", "Adventurer", "character name")
	flag.StringVar(&sc.Equip, "equip", "", "comma separated item IDs to equip in order")
	flag.StringVar(&sc.Skills, "skills", "", "comma separated id=level skill assignments")
	flag.Float64Var(&sc.XP, "xp", 0, "experience to grant, scaled by global XP bonuses")
	flag.StringVar(&sc.Stance, "stance", "", "stance ID")
	flag.StringVar(&sc.Light, "light", "normal", "light level: bright, normal, or dark")
	flag.StringVar(&sc.Environment, "environment", "", "environment ID")
	flag.StringVar(&sc.Elixirs, "elixirs", "", "comma separated elixir IDs to drink")
	flag.StringVar(&sc.Books, "books", "", "comma separated book IDs to read")
	flag.StringVar(&sc.Effects, "effects", "", "comma separated id[:stacks[:ticks]] effects to apply")
	persist := flag.Bool("persist", false, "save the resulting snapshot to postgres and redis")
	loadID := flag.String("load", "", "restore the character with this ID from storage before applying the scenario")
	flag.Parse()

	ctx := context.Background()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	pack, err := content.Load(ctx, contentDirs(cfg.Content), logger)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}

	opts := []character.Option{
		character.WithLogger(logger),
		character.WithDisplay(observability.NewDisplayLogger(logger)),
		character.WithBaseXPCost(cfg.Progression.BaseXPCost),
		character.WithBaseAttributes(cfg.Character.BaseAttributes),
	}
	if cfg.Scripting.ScriptDir != "" {
		mgr := scripting.NewManager(logger)
		if err := mgr.Load(cfg.Scripting.ScriptDir, cfg.Scripting.InstructionLimit); err != nil {
			logger.Fatal("loading scripts", zap.String("dir", cfg.Scripting.ScriptDir), zap.Error(err))
		}
		defer mgr.Close()
		opts = append(opts, character.WithScripter(mgr))
	}

	var store *storage.Store
	if *persist || *loadID != "" {
		var closeStore func()
		store, closeStore, err = openStore(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("opening storage", zap.Error(err))
		}
		defer closeStore()
	}

	var c *character.Character
	if *loadID != "" {
		snap, err := store.Load(ctx, *loadID)
		if err != nil {
			logger.Fatal("loading character", zap.String("id", *loadID), zap.Error(err))
		}
		c, err = character.Restore(snap, pack, opts...)
		if err != nil {
			logger.Fatal("restoring character", zap.String("id", *loadID), zap.Error(err))
		}
	} else {
		c, err = character.New(sc.Name, pack, opts...)
		if err != nil {
			logger.Fatal("creating character", zap.Error(err))
		}
	}

	if err := sc.apply(c); err != nil {
		logger.Fatal("applying scenario", zap.Error(err))
	}

	if err := printCharacter(os.Stdout, c); err != nil {
		logger.Fatal("printing character", zap.Error(err))
	}

	if *persist {
		if err := store.Save(ctx, c.Snapshot()); err != nil {
			logger.Fatal("saving character", zap.Error(err))
		}
		logger.Info("character saved", zap.String("id", c.ID))
	}

	logger.Info("statsim finished",
		zap.String("character", c.ID),
		zap.Int("level", c.Level()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func contentDirs(c config.ContentConfig) content.Dirs {
	return content.Dirs{
		Items:        c.Items,
		Skills:       c.Skills,
		Effects:      c.Effects,
		Stances:      c.Stances,
		Environments: c.Environments,
		Elixirs:      c.Elixirs,
		Books:        c.Books,
	}
}

// openStore connects postgres and redis and returns the combined store and its closer.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (*storage.Store, func(), error) {
	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting postgres: %w", err)
	}
	if err := pool.RequireSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	client := redisstore.NewClient(cfg.Redis)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable; snapshots will not be cached", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
		_ = client.Close()
		return storage.NewStore(postgres.NewSnapshotRepository(pool.DB()), nil, logger), pool.Close, nil
	}
	cache := redisstore.NewSnapshotCache(client, cfg.Redis.TTL)
	closer := func() {
		_ = client.Close()
		pool.Close()
	}
	return storage.NewStore(postgres.NewSnapshotRepository(pool.DB()), cache, logger), closer, nil
}
