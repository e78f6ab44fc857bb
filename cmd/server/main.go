package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/polis/internal/config"
	"github.com/playperu/polis/internal/database"
	"github.com/playperu/polis/internal/engine"
	"github.com/playperu/polis/internal/events"
	"github.com/playperu/polis/internal/handler/health"
	"github.com/playperu/polis/internal/migrations"
	"github.com/playperu/polis/internal/multiplayer"
	"github.com/playperu/polis/internal/polis"
	"github.com/playperu/polis/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	applied, err := migrations.Run(ctx, db)
	if err != nil {
		return err
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath, "migrations_applied", applied)

	checks := map[string]health.Checker{
		"sqlite": database.Checker{DB: db},
	}

	// --- Sessions ---
	var repo multiplayer.Repository = multiplayer.NewMemoryRepository()
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()

		redisRepo := multiplayer.NewRedisRepository(rdb, cfg.SessionTTL)
		repo = redisRepo
		checks["redis"] = redisRepo
		logger.Info("sessions stored in redis")
	} else {
		logger.Info("sessions stored in memory")
	}

	broker := server.NewBroker()
	sessions := multiplayer.NewManager(repo,
		multiplayer.WithLogger(logger),
		multiplayer.WithMaxActions(cfg.MaxActionsPerTurn),
		multiplayer.WithTurnTimeLimit(cfg.TurnTimeLimit),
		multiplayer.WithTTL(cfg.SessionTTL),
		multiplayer.WithNotify(broker.Publish),
	)

	// --- Engine ---
	catalog, err := events.Builtin()
	if err != nil {
		return fmt.Errorf("loading event catalog: %w", err)
	}
	seed := cfg.RNGSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := polis.Locked(polis.NewRand(seed))
	eng := engine.New(catalog, rng,
		engine.WithLogger(logger),
		engine.WithEventLimit(cfg.EventLogLimit),
	)
	logger.Info("engine ready", "templates", len(catalog.Templates()), "seed", seed)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Games:    server.NewGameStore(db),
		Users:    server.NewUserStore(db),
		Engine:   eng,
		Sessions: sessions,
		Broker:   broker,
		RNG:      rng,
		Checks:   checks,
		SPADir:   cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("starting session sweeper", "interval", cfg.SessionSweepInterval, "ttl", cfg.SessionTTL)
		return sessions.Run(gctx, cfg.SessionSweepInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
