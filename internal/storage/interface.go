// Package storage defines the player-pool store shared between the data
// acquisition side (which writes scraped pools) and the auction engine
// (which reads a pool at room creation).
package storage

import (
	"context"

	"github.com/draftnight/auction-go/internal/model"
)

// PoolStore persists named player pools. Rooms themselves are never
// persisted; each lives and dies inside one process.
type PoolStore interface {
	// SavePool stores the full player list under the given pool name,
	// replacing any previous version
	SavePool(ctx context.Context, name string, players []model.Player) error

	// GetPool returns the player list stored under the given name
	GetPool(ctx context.Context, name string) ([]model.Player, error)

	// ListPools returns the names of all stored pools
	ListPools(ctx context.Context) ([]string, error)

	// DeletePool removes the named pool
	DeletePool(ctx context.Context, name string) error
}
