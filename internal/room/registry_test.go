package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/draftnight/auction-go/internal/dependencies/mocks"
	"github.com/draftnight/auction-go/internal/model"
	"github.com/draftnight/auction-go/internal/storage/memory"
	"github.com/draftnight/auction-go/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	clock    *mocks.MockClock
	random   *mocks.MockRandom
	store    *memory.Storage
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.store = memory.New()
	s.ctx = context.Background()

	err := s.store.SavePool(s.ctx, "main", []model.Player{
		{ID: "player-0", Name: "Alpha", Pool: "A"},
		{ID: "player-1", Name: "Beta", Pool: "B"},
	})
	s.Require().NoError(err)

	s.registry = NewRegistry(s.store, DefaultRegistryConfig(), Deps{
		Logger: testutil.NopLogger(),
		Clock:  s.clock,
		Random: s.random,
		Sink:   NopSink{},
	})
}

func (s *RegistrySuite) TearDownTest() {
	s.registry.ShutdownAll(s.ctx)
}

func (s *RegistrySuite) create(codes ...string) *Room {
	s.random.QueueString(codes...)
	rm, err := s.registry.Create(s.ctx, CreateOptions{PoolName: "main", TeamCount: 2})
	s.Require().NoError(err)
	return rm
}

func (s *RegistrySuite) TestCreateAssignsGeneratedCode() {
	rm := s.create("ABC123")
	s.Equal(model.RoomCode("ABC123"), rm.Code())
	s.Equal(1, s.registry.Count())
}

func (s *RegistrySuite) TestCreateAppliesDefaultSettings() {
	rm := s.create("ABC123")
	snap, err := rm.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.DefaultRoomSettings(), snap.Settings)
}

func (s *RegistrySuite) TestCreateKeepsSettingsOverrides() {
	s.random.QueueString("ABC123")
	rm, err := s.registry.Create(s.ctx, CreateOptions{
		PoolName:  "main",
		TeamCount: 2,
		Settings:  model.RoomSettings{InitialBudget: 500, MaxPlayersPerRound: 2},
	})
	s.Require().NoError(err)

	snap, err := rm.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(500, snap.Settings.InitialBudget)
	s.Equal(2, snap.Settings.MaxPlayersPerRound)
}

func (s *RegistrySuite) TestCreateRetriesOnCodeCollision() {
	s.create("AAAAAA")
	rm := s.create("AAAAAA", "BBBBBB")
	s.Equal(model.RoomCode("BBBBBB"), rm.Code())
	s.Equal(2, s.registry.Count())
}

func (s *RegistrySuite) TestCreateRejectsBadTeamCount() {
	_, err := s.registry.Create(s.ctx, CreateOptions{PoolName: "main", TeamCount: 0})
	s.ErrorIs(err, model.ErrInvalidTeamCount)
}

func (s *RegistrySuite) TestCreateUnknownPool() {
	_, err := s.registry.Create(s.ctx, CreateOptions{PoolName: "nope", TeamCount: 2})
	s.ErrorIs(err, model.ErrPoolNotFound)
}

func (s *RegistrySuite) TestGetUnknownCode() {
	_, err := s.registry.Get("ZZZZZZ")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *RegistrySuite) TestRemoveFreesCode() {
	rm := s.create("ABC123")
	s.registry.Remove(rm.Code())
	s.Equal(0, s.registry.Count())
	_, err := s.registry.Get("ABC123")
	s.ErrorIs(err, model.ErrRoomNotFound)

	// The code can be handed out again
	again := s.create("ABC123")
	s.Equal(model.RoomCode("ABC123"), again.Code())
}

func (s *RegistrySuite) TestSweepClosesIdleRooms() {
	idle := s.create("IDLE01")

	s.clock.Advance(5 * time.Hour)
	active := s.create("LIVE01")
	_, err := active.JoinAsAuctioneer(s.ctx, "conn-a")
	s.Require().NoError(err)

	// IDLE01 is now 7h stale, LIVE01 2h
	s.clock.Advance(2 * time.Hour)
	s.registry.Sweep(s.ctx)

	s.Equal(1, s.registry.Count())
	_, err = s.registry.Get("IDLE01")
	s.ErrorIs(err, model.ErrRoomNotFound)
	_, err = s.registry.Get("LIVE01")
	s.NoError(err)

	// The expired room's worker is gone
	_, err = idle.Snapshot(s.ctx)
	s.ErrorIs(err, model.ErrRoomClosed)
}

func (s *RegistrySuite) TestSweepKeepsFreshRooms() {
	s.create("ABC123")
	s.clock.Advance(time.Hour)
	s.registry.Sweep(s.ctx)
	s.Equal(1, s.registry.Count())
}

func (s *RegistrySuite) TestShutdownAll() {
	first := s.create("AAAAAA")
	second := s.create("BBBBBB")

	s.registry.ShutdownAll(s.ctx)

	s.Equal(0, s.registry.Count())
	_, err := first.Snapshot(s.ctx)
	s.ErrorIs(err, model.ErrRoomClosed)
	_, err = second.Snapshot(s.ctx)
	s.ErrorIs(err, model.ErrRoomClosed)
}
