package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"

	"progression-engine/pkg/api"
	"progression-engine/pkg/catalog"
	"progression-engine/pkg/client"
	"progression-engine/pkg/config"
	"progression-engine/pkg/db"
	"progression-engine/pkg/engine"
	"progression-engine/pkg/repository"
)

func main() {
	// .env is optional; environment variables win in deployed setups.
	_ = godotenv.Load()

	logger := newLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configPath := envString("CATALOG_PATH", "config/catalog.json")
	loader := config.NewLoader(configPath, logger)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	cat := catalog.NewInMemoryCatalog(cfg, configPath, logger)

	repo, cleanup, err := newProgressRepository(ctx, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	rewards := newRewardClient(logger)
	eng := engine.New(cat, repo, rewards, logger)

	scheduler, err := startCycleSweep(ctx, eng, logger)
	if err != nil {
		return err
	}
	defer func() { _ = scheduler.Shutdown() }()

	port := envInt("HTTP_PORT", 8080)
	server := api.NewServer(port, eng, cat, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Stop(shutdownCtx)
}

// newProgressRepository selects the progress store. STORE=memory runs fully
// in-process for local development; anything else connects to Postgres using
// the DB_* environment.
func newProgressRepository(ctx context.Context, logger *slog.Logger) (repository.ProgressRepository, func(), error) {
	if envString("STORE", "postgres") == "memory" {
		logger.Warn("using in-memory progress store, records are lost on restart")
		return repository.NewMemoryProgressRepository(), func() {}, nil
	}

	dbCfg := db.NewConfigFromEnv()
	conn, err := db.Connect(ctx, dbCfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("connected to database",
		slog.String("host", dbCfg.Host),
		slog.String("database", dbCfg.Database))
	return repository.NewPostgresProgressRepository(conn), func() { _ = conn.Close() }, nil
}

// newRewardClient selects the reward issuer. The platform wallet and bonus
// services are external; REWARD_CLIENT_MODE=mock logs issued rewards instead.
func newRewardClient(logger *slog.Logger) client.RewardClient {
	mode := envString("REWARD_CLIENT_MODE", "mock")
	if mode != "mock" {
		logger.Warn("unknown reward client mode, falling back to mock", slog.String("mode", mode))
	}
	return client.NewDevMockRewardClient()
}

// startCycleSweep schedules the lapsed-cycle sweep so read APIs stay current
// for players who stop producing events mid-cycle.
func startCycleSweep(ctx context.Context, eng *engine.Engine, logger *slog.Logger) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	interval := time.Duration(envInt("CYCLE_SWEEP_MINUTES", 15)) * time.Minute
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := eng.SweepLapsedCycles(ctx); err != nil {
				logger.Error("cycle sweep failed", slog.Any("error", err))
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	logger.Info("cycle sweep scheduled", slog.Duration("interval", interval))
	return scheduler, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if envString("LOG_LEVEL", "info") == "debug" {
		level = slog.LevelDebug
	}
	if envString("LOG_FORMAT", "json") == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
