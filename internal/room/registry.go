package room

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/draftnight/auction-go/internal/dependencies/clock"
	"github.com/draftnight/auction-go/internal/dependencies/random"
	"github.com/draftnight/auction-go/internal/model"
	"github.com/draftnight/auction-go/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RegistryConfig holds registry behavior settings
type RegistryConfig struct {
	// IdleTTL is how long a room may go without processing an action before
	// the sweep closes it
	IdleTTL time.Duration
	// SweepInterval is how often the janitor checks for idle rooms
	SweepInterval time.Duration
}

// DefaultRegistryConfig returns sensible defaults for registry configuration
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		IdleTTL:       6 * time.Hour,
		SweepInterval: 10 * time.Minute,
	}
}

// CreateOptions are the parameters of a create-room request
type CreateOptions struct {
	// PoolName selects which stored player pool to load
	PoolName string
	// TeamCount is the number of captains drafting (must be >= 1)
	TeamCount int
	// Settings overrides; zero fields fall back to defaults
	Settings model.RoomSettings
}

// Registry owns creation and lookup of live auction rooms. Rooms share no
// mutable state with each other; the registry only guards the code -> room
// mapping.
type Registry struct {
	mu    sync.RWMutex
	rooms map[model.RoomCode]*Room

	store  storage.PoolStore
	clock  clock.Clock
	random random.Random
	sink   Sink
	logger *slog.Logger
	cfg    RegistryConfig
}

// NewRegistry creates an empty registry
func NewRegistry(store storage.PoolStore, cfg RegistryConfig, deps Deps) *Registry {
	return &Registry{
		rooms:  make(map[model.RoomCode]*Room),
		store:  store,
		clock:  deps.Clock,
		random: deps.Random,
		sink:   deps.Sink,
		logger: deps.Logger.With(slog.String("component", "registry")),
		cfg:    cfg,
	}
}

// Create loads the requested player pool, generates a unique room code and
// starts a new room worker
func (g *Registry) Create(ctx context.Context, opts CreateOptions) (*Room, error) {
	if opts.TeamCount < 1 {
		return nil, model.ErrInvalidTeamCount
	}

	players, err := g.store.GetPool(ctx, opts.PoolName)
	if err != nil {
		return nil, err
	}

	settings := opts.Settings
	if settings.InitialBudget <= 0 {
		settings.InitialBudget = model.DefaultRoomSettings().InitialBudget
	}
	if settings.MaxPlayersPerRound <= 0 {
		settings.MaxPlayersPerRound = model.DefaultRoomSettings().MaxPlayersPerRound
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var code model.RoomCode
	for {
		code = model.RoomCode(g.random.String(RoomCodeLength, RoomCodeAlphabet))
		if _, exists := g.rooms[code]; !exists {
			break
		}
	}

	r := New(code, players, opts.TeamCount, settings, Deps{
		Logger: g.logger,
		Clock:  g.clock,
		Random: g.random,
		Sink:   g.sink,
	})
	g.rooms[code] = r

	g.logger.Info("room created",
		slog.String("code", string(code)),
		slog.String("pool", opts.PoolName),
		slog.Int("team_count", opts.TeamCount),
		slog.Int("players", len(players)))
	return r, nil
}

// Get returns the live room with the given code
func (g *Registry) Get(code model.RoomCode) (*Room, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return r, nil
}

// Remove drops the room from the registry, freeing its code for reuse. The
// room itself must already be closed or closing.
func (g *Registry) Remove(code model.RoomCode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.rooms, code)
}

// Count returns the number of live rooms
func (g *Registry) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// RunJanitor periodically closes and removes rooms idle longer than the
// configured TTL. Blocks until ctx is cancelled.
func (g *Registry) RunJanitor(ctx context.Context) {
	ticker := time.NewTicker(g.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Sweep(ctx)
		}
	}
}

// Sweep closes every room idle longer than the TTL. Exposed for tests and
// for a final sweep at shutdown.
func (g *Registry) Sweep(ctx context.Context) {
	cutoff := g.clock.Now().Add(-g.cfg.IdleTTL)

	g.mu.RLock()
	var expired []*Room
	for _, r := range g.rooms {
		if r.LastActive().Before(cutoff) {
			expired = append(expired, r)
		}
	}
	g.mu.RUnlock()

	for _, r := range expired {
		if err := r.Shutdown(ctx); err != nil {
			g.logger.Warn("failed to shut down idle room",
				slog.String("code", string(r.Code())),
				slog.String("error", err.Error()))
			continue
		}
		g.Remove(r.Code())
		g.logger.Info("idle room expired", slog.String("code", string(r.Code())))
	}
}

// ShutdownAll force-closes every live room
func (g *Registry) ShutdownAll(ctx context.Context) {
	g.mu.Lock()
	rooms := make([]*Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		rooms = append(rooms, r)
	}
	g.rooms = make(map[model.RoomCode]*Room)
	g.mu.Unlock()

	for _, r := range rooms {
		_ = r.Shutdown(ctx)
	}
}
