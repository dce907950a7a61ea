package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/draftnight/auction-go/internal/api"
	"github.com/draftnight/auction-go/internal/factory"
	"github.com/draftnight/auction-go/internal/pool"
	"github.com/draftnight/auction-go/internal/room"
	redisstorage "github.com/draftnight/auction-go/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Idle room TTL override
	registryCfg := room.DefaultRegistryConfig()
	if ttl := os.Getenv("ROOM_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			logger.Error("invalid ROOM_TTL", slog.String("value", ttl))
			os.Exit(1)
		}
		registryCfg.IdleTTL = d
	}
	cfg.RegistryConfig = registryCfg

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Preload a pool file if one is configured
	if path := os.Getenv("POOL_FILE"); path != "" {
		name := os.Getenv("POOL_NAME")
		if name == "" {
			name = "default"
		}
		players, err := pool.LoadFile(path)
		if err != nil {
			logger.Error("failed to load pool file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := app.PoolStore.SavePool(context.Background(), name, players); err != nil {
			logger.Error("failed to store pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("pool loaded",
			slog.String("name", name),
			slog.Int("players", len(players)))
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:     logger,
		Registry:   app.Registry,
		HubManager: app.HubManager,
		PoolStore:  app.PoolStore,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Expire idle rooms in the background
	go app.Registry.RunJanitor(ctx)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
		app.Registry.ShutdownAll(context.Background())
	}

	logger.Info("server stopped")
}
