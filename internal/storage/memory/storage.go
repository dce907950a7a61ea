// Package memory is the in-memory pool store used for tests and
// single-process deployments.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/draftnight/auction-go/internal/model"
	"github.com/draftnight/auction-go/internal/storage"
)

// Storage is an in-memory implementation of the pool store
type Storage struct {
	mu    sync.RWMutex
	pools map[string][]model.Player
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		pools: make(map[string][]model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.PoolStore = (*Storage)(nil)

func (s *Storage) SavePool(ctx context.Context, name string, players []model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]model.Player, len(players))
	copy(stored, players)
	s.pools[name] = stored
	return nil
}

func (s *Storage) GetPool(ctx context.Context, name string) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players, ok := s.pools[name]
	if !ok {
		return nil, model.ErrPoolNotFound
	}
	result := make([]model.Player, len(players))
	copy(result, players)
	return result, nil
}

func (s *Storage) ListPools(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.pools))
	for name := range s.pools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Storage) DeletePool(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pools, name)
	return nil
}
