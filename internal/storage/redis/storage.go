// Package redis is the Redis-backed pool store. The scraper writes pools
// here; auction servers read them at room creation.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/draftnight/auction-go/internal/model"
	"github.com/draftnight/auction-go/internal/storage"
)

// Storage is a Redis-backed implementation of the pool store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.PoolStore = (*Storage)(nil)

func (s *Storage) SavePool(ctx context.Context, name string, players []model.Player) error {
	data, err := json.Marshal(players)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, poolKey(name), data, s.cfg.PoolTTL)
	pipe.SAdd(ctx, poolIndexKey(), name)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPool(ctx context.Context, name string) ([]model.Player, error) {
	data, err := s.client.Get(ctx, poolKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPoolNotFound
		}
		return nil, err
	}

	var players []model.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *Storage) ListPools(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, poolIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	// Prune index entries whose pool key has expired
	live := names[:0]
	for _, name := range names {
		exists, err := s.client.Exists(ctx, poolKey(name)).Result()
		if err != nil {
			return nil, err
		}
		if exists > 0 {
			live = append(live, name)
		} else {
			_ = s.client.SRem(ctx, poolIndexKey(), name).Err()
		}
	}
	sort.Strings(live)
	return live, nil
}

func (s *Storage) DeletePool(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, poolKey(name))
	pipe.SRem(ctx, poolIndexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}
