package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/draftnight/auction-go/internal/dependencies/clock"
	"github.com/draftnight/auction-go/internal/dependencies/random"
	"github.com/draftnight/auction-go/internal/room"
	"github.com/draftnight/auction-go/internal/sse"
	"github.com/draftnight/auction-go/internal/storage"
	"github.com/draftnight/auction-go/internal/storage/memory"
	redisstorage "github.com/draftnight/auction-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	PoolStore storage.PoolStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Engine
	Registry   *room.Registry
	HubManager *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RegistryConfig controls idle-room expiry
	// If zero value, defaults to room.DefaultRegistryConfig()
	RegistryConfig room.RegistryConfig
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.PoolStore
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	registryCfg := cfg.RegistryConfig
	if registryCfg.IdleTTL == 0 {
		registryCfg = room.DefaultRegistryConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), registryCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.PoolStore, clk clock.Clock, rnd random.Random, registryCfg room.RegistryConfig, logger *slog.Logger) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	registry := room.NewRegistry(store, registryCfg, room.Deps{
		Logger: logger,
		Clock:  clk,
		Random: rnd,
		Sink:   broadcaster,
	})

	return &App{
		PoolStore:  store,
		Clock:      clk,
		Random:     rnd,
		Registry:   registry,
		HubManager: hubManager,
	}
}
