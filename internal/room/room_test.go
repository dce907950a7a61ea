package room

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/draftnight/auction-go/internal/dependencies/mocks"
	"github.com/draftnight/auction-go/internal/model"
	"github.com/draftnight/auction-go/internal/testutil"
)

// captureSink records published events for assertions
type captureSink struct {
	mu     sync.Mutex
	events []model.Event
}

func (s *captureSink) Publish(ev model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *captureSink) ofType(t model.EventType) []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Event
	for _, ev := range s.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

type RoomSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	random *mocks.MockRandom
	sink   *captureSink
	room   *Room
	ctx    context.Context

	auctioneer model.ConnectionID
}

func TestRoomSuite(t *testing.T) {
	suite.Run(t, new(RoomSuite))
}

func testPlayers() []model.Player {
	return []model.Player{
		{ID: "player-0", Name: "Alpha", Pool: "A", Stats: model.Stats{
			"combat": 120.0, "total": 2000.0, "ehb": 300.0, "ehp": 800.0,
			"bosses": map[string]any{"zulrah": 500.0, "vorkath": 250.0},
		}},
		{ID: "player-1", Name: "Beta", Pool: "A", Stats: model.Stats{"combat": 110.0}},
		{ID: "player-2", Name: "Gamma", Pool: "B", Stats: model.Stats{"combat": 100.0}},
		{ID: "duo-3", Name: "Delta & Echo", Pool: model.PoolDuos, Stats: model.Stats{"combat": 115.0}},
	}
}

func (s *RoomSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.sink = &captureSink{}
	s.ctx = context.Background()
	s.auctioneer = "conn-auctioneer"

	s.room = New("ABC123", testPlayers(), 2, model.RoomSettings{
		InitialBudget:      1000,
		MaxPlayersPerRound: 4,
	}, Deps{
		Logger: testutil.NopLogger(),
		Clock:  s.clock,
		Random: s.random,
		Sink:   s.sink,
	})
}

func (s *RoomSuite) TearDownTest() {
	_ = s.room.Shutdown(s.ctx)
}

func (s *RoomSuite) joinAuctioneer() model.RoomSnapshot {
	snap, err := s.room.JoinAsAuctioneer(s.ctx, s.auctioneer)
	s.Require().NoError(err)
	return snap
}

func (s *RoomSuite) joinCaptain(conn model.ConnectionID, name string) model.Captain {
	captain, _, err := s.room.JoinAsCaptain(s.ctx, conn, name)
	s.Require().NoError(err)
	return captain
}

// Join and lifecycle

func (s *RoomSuite) TestNewRoomStartsInSetup() {
	snap, err := s.room.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.RoomStateSetup, snap.State)
	s.Len(snap.Players, 4)
}

func (s *RoomSuite) TestAuctioneerJoinMovesToWaiting() {
	snap := s.joinAuctioneer()
	s.Equal(model.RoomStateWaiting, snap.State)

	events := s.sink.ofType(model.EventRoomState)
	s.Require().Len(events, 1)
	s.Equal(model.RoomStateWaiting, events[0].Payload.(model.RoomSnapshot).State)
}

func (s *RoomSuite) TestCapsComputedAtCreation() {
	snap := s.joinAuctioneer()
	// 2 in A, 1 in B, 1 duo over 2 teams
	s.Equal(1, snap.Caps.PoolCaps["A"])
	s.Equal(1, snap.Caps.PoolCaps["B"])
	s.Equal(1, snap.Caps.PoolCaps[model.PoolDuos])
	// 3 single slots + 2 duo slots = 5 -> ceil(5/2) = 3
	s.Equal(3, snap.Caps.TeamCap)
}

func (s *RoomSuite) TestCaptainJoinAssignsColorAndBudget() {
	first := s.joinCaptain("conn-1", "Red Team")
	second := s.joinCaptain("conn-2", "Blue Team")

	s.Equal(model.CaptainColors[0], first.Color)
	s.Equal(model.CaptainColors[1], second.Color)
	s.Equal(1000, first.Budget)
	s.Equal(1000, first.RemainingBudget)
	s.Empty(first.Roster)
	s.True(first.Connected)
}

func (s *RoomSuite) TestCaptainJoinBroadcastsRoster() {
	s.joinCaptain("conn-1", "Red Team")

	events := s.sink.ofType(model.EventCaptainRosterChanged)
	s.Require().NotEmpty(events)
	payload := events[len(events)-1].Payload.(model.RosterChangedPayload)
	s.Len(payload.Captains, 1)
	s.Equal("Red Team", payload.Captains[0].Name)
}

func (s *RoomSuite) TestAuctioneerTakeover() {
	s.joinAuctioneer()

	// A later claim takes over the role
	_, err := s.room.JoinAsAuctioneer(s.ctx, "conn-usurper")
	s.Require().NoError(err)

	err = s.room.StartBidding(s.ctx, s.auctioneer, 0)
	s.ErrorIs(err, model.ErrNotAuctioneer)

	err = s.room.StartBidding(s.ctx, "conn-usurper", 0)
	s.NoError(err)
}

// Round lifecycle

func (s *RoomSuite) startRound(index int) {
	s.Require().NoError(s.room.StartBidding(s.ctx, s.auctioneer, index))
}

func (s *RoomSuite) TestStartBiddingRequiresAuctioneer() {
	s.joinCaptain("conn-1", "Red Team")

	err := s.room.StartBidding(s.ctx, "conn-1", 0)
	s.ErrorIs(err, model.ErrNotAuctioneer)
}

func (s *RoomSuite) TestStartBiddingValidatesIndex() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")

	s.ErrorIs(s.room.StartBidding(s.ctx, s.auctioneer, -1), model.ErrInvalidPlayerIndex)
	s.ErrorIs(s.room.StartBidding(s.ctx, s.auctioneer, 99), model.ErrInvalidPlayerIndex)
}

func (s *RoomSuite) TestStartBiddingRejectsSecondRound() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.startRound(0)

	s.ErrorIs(s.room.StartBidding(s.ctx, s.auctioneer, 1), model.ErrRoundInProgress)
}

func (s *RoomSuite) TestRoundOpenedMasksStats() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")

	// Intn(2) -> 0 selects ehb
	s.random.QueueIntn(0)
	s.startRound(0)

	events := s.sink.ofType(model.EventRoundOpened)
	s.Require().Len(events, 1)
	payload := events[0].Payload.(model.RoundOpenedPayload)

	s.Contains(payload.Player.Stats, "combat")
	s.Contains(payload.Player.Stats, "total")
	s.Contains(payload.Player.Stats, "ehb")
	s.NotContains(payload.Player.Stats, "ehp")
	s.Contains(payload.Player.Stats, "bosses")
	s.ElementsMatch(payload.VisibleStats,
		[]string{"combat", "total", "ehb", "boss_vorkath", "boss_zulrah"})
}

func (s *RoomSuite) TestRoundOpenedCanExposeEHPInstead() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")

	s.random.QueueIntn(1)
	s.startRound(0)

	payload := s.sink.ofType(model.EventRoundOpened)[0].Payload.(model.RoundOpenedPayload)
	s.Contains(payload.Player.Stats, "ehp")
	s.NotContains(payload.Player.Stats, "ehb")
}

func (s *RoomSuite) TestBiddingStateAfterRoundOpen() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.startRound(0)

	snap, err := s.room.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.RoomStateBidding, snap.State)
	// The player on the block is excluded from its pool's remaining count
	s.Equal(1, snap.RemainingPoolCounts["A"])
}

// Bidding

func (s *RoomSuite) TestSubmitBidOutsideRoundRejected() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")

	_, err := s.room.SubmitBid(s.ctx, "conn-1", 100)
	s.ErrorIs(err, model.ErrBiddingClosed)
}

func (s *RoomSuite) TestSubmitBidValidation() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.startRound(0)

	_, err := s.room.SubmitBid(s.ctx, "conn-unknown", 100)
	s.ErrorIs(err, model.ErrNotCaptain)

	_, err = s.room.SubmitBid(s.ctx, "conn-1", -5)
	s.ErrorIs(err, model.ErrNegativeBid)

	_, err = s.room.SubmitBid(s.ctx, "conn-1", 1001)
	s.ErrorIs(err, model.ErrBidExceedsBudget)
}

func (s *RoomSuite) TestZeroBidIsAccepted() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.startRound(0)

	receipt, err := s.room.SubmitBid(s.ctx, "conn-1", 0)
	s.Require().NoError(err)
	s.Equal(0, receipt.Amount)
	s.Equal(1, receipt.SubmittedBids)
}

func (s *RoomSuite) TestBidTallyNeverCarriesAmount() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.joinCaptain("conn-2", "Blue Team")
	s.startRound(0)

	_, err := s.room.SubmitBid(s.ctx, "conn-1", 400)
	s.Require().NoError(err)

	events := s.sink.ofType(model.EventBidTally)
	s.Require().Len(events, 1)
	payload := events[0].Payload.(model.BidTallyPayload)
	s.Equal("Red Team", payload.CaptainName)
	s.Equal(1, payload.SubmittedBids)
	s.Equal(2, payload.EligibleCaptains)
}

func (s *RoomSuite) TestAutoAdvanceWhenAllEligibleBid() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.joinCaptain("conn-2", "Blue Team")
	s.startRound(0)

	_, err := s.room.SubmitBid(s.ctx, "conn-1", 100)
	s.Require().NoError(err)
	snap, _ := s.room.Snapshot(s.ctx)
	s.Equal(model.RoomStateBidding, snap.State)

	receipt, err := s.room.SubmitBid(s.ctx, "conn-2", 200)
	s.Require().NoError(err)
	s.Equal(2, receipt.SubmittedBids)

	snap, _ = s.room.Snapshot(s.ctx)
	s.Equal(model.RoomStateReadyToReveal, snap.State)
}

func (s *RoomSuite) TestResubmissionBeforeReveal() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.joinCaptain("conn-2", "Blue Team")
	s.startRound(0)

	_, err := s.room.SubmitBid(s.ctx, "conn-1", 100)
	s.Require().NoError(err)
	receipt, err := s.room.SubmitBid(s.ctx, "conn-1", 300)
	s.Require().NoError(err)
	s.Equal(1, receipt.SubmittedBids)

	_, err = s.room.SubmitBid(s.ctx, "conn-2", 200)
	s.Require().NoError(err)
	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	// The replacement value, not the original, settles the round
	settled := s.sink.ofType(model.EventRoundSettled)[0].Payload.(model.RoundSettledPayload)
	s.Require().NotNil(settled.Winner)
	s.Equal("Red Team", settled.Winner.CaptainName)
	s.Equal(300, settled.Winner.Amount)
}

// Reveal and settlement

func (s *RoomSuite) TestRevealRequiresAuctioneerAndOpenRound() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")

	s.ErrorIs(s.room.RevealBids(s.ctx, "conn-1"), model.ErrNotAuctioneer)
	s.ErrorIs(s.room.RevealBids(s.ctx, s.auctioneer), model.ErrNoOpenRound)
}

func (s *RoomSuite) TestSettlementChargesWinnerOnly() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.joinCaptain("conn-2", "Blue Team")
	s.startRound(0)

	_, err := s.room.SubmitBid(s.ctx, "conn-1", 250)
	s.Require().NoError(err)
	_, err = s.room.SubmitBid(s.ctx, "conn-2", 100)
	s.Require().NoError(err)
	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	snap, _ := s.room.Snapshot(s.ctx)
	s.Equal(model.RoomStateWaiting, snap.State)
	s.Equal([]int{0}, snap.CompletedPlayers)

	var red, blue model.Captain
	for _, c := range snap.Captains {
		switch c.Name {
		case "Red Team":
			red = c
		case "Blue Team":
			blue = c
		}
	}
	s.Equal(750, red.RemainingBudget)
	s.Equal(1000, blue.RemainingBudget)
	s.Require().Len(red.Roster, 1)
	s.Equal("Alpha", red.Roster[0].Name)
	s.Empty(blue.Roster)
}

func (s *RoomSuite) TestBudgetConservation() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.joinCaptain("conn-2", "Blue Team")

	runRound := func(index, redBid, blueBid int) {
		s.startRound(index)
		_, err := s.room.SubmitBid(s.ctx, "conn-1", redBid)
		s.Require().NoError(err)
		_, err = s.room.SubmitBid(s.ctx, "conn-2", blueBid)
		s.Require().NoError(err)
		s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))
	}

	runRound(0, 250, 100)
	runRound(2, 50, 300)

	snap, _ := s.room.Snapshot(s.ctx)
	for _, c := range snap.Captains {
		rosterCost := c.Budget - c.RemainingBudget
		s.GreaterOrEqual(c.RemainingBudget, 0)
		switch c.Name {
		case "Red Team":
			s.Equal(250, rosterCost)
		case "Blue Team":
			s.Equal(300, rosterCost)
		}
	}
}

func (s *RoomSuite) TestRevealedNameWrittenAtSettlement() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")

	snap, _ := s.room.Snapshot(s.ctx)
	s.Empty(snap.Players[0].RevealedName)

	s.startRound(0)
	_, err := s.room.SubmitBid(s.ctx, "conn-1", 10)
	s.Require().NoError(err)
	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	snap, _ = s.room.Snapshot(s.ctx)
	s.Equal("Alpha", snap.Players[0].RevealedName)

	settled := s.sink.ofType(model.EventRoundSettled)[0].Payload.(model.RoundSettledPayload)
	s.Equal("Alpha", settled.Player.RevealedName)
}

func (s *RoomSuite) TestRevealWithNoBidsCompletesPlayer() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.startRound(0)

	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	snap, _ := s.room.Snapshot(s.ctx)
	s.Equal([]int{0}, snap.CompletedPlayers)

	settled := s.sink.ofType(model.EventRoundSettled)[0].Payload.(model.RoundSettledPayload)
	s.Nil(settled.Winner)
	s.Equal("no bids received", settled.Message)

	// A completed player can never be offered again
	s.ErrorIs(s.room.StartBidding(s.ctx, s.auctioneer, 0), model.ErrPlayerCompleted)
}

func (s *RoomSuite) TestLateBidAfterRevealRejected() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.startRound(0)
	_, err := s.room.SubmitBid(s.ctx, "conn-1", 10)
	s.Require().NoError(err)
	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	_, err = s.room.SubmitBid(s.ctx, "conn-1", 50)
	s.ErrorIs(err, model.ErrBiddingClosed)
}

func (s *RoomSuite) TestTieBreakRestrictedToMaxBidders() {
	s.joinAuctioneer()
	s.joinCaptain("conn-a", "Alpha Team")
	s.joinCaptain("conn-b", "Bravo Team")
	s.joinCaptain("conn-c", "Charlie Team")
	s.startRound(0)

	_, err := s.room.SubmitBid(s.ctx, "conn-a", 50)
	s.Require().NoError(err)
	_, err = s.room.SubmitBid(s.ctx, "conn-b", 80)
	s.Require().NoError(err)
	_, err = s.room.SubmitBid(s.ctx, "conn-c", 80)
	s.Require().NoError(err)

	// Tied set sorted by handle: [conn-b, conn-c]; pick index 1
	s.random.QueueIntn(1)
	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	settled := s.sink.ofType(model.EventRoundSettled)[0].Payload.(model.RoundSettledPayload)
	s.Require().NotNil(settled.Winner)
	s.Equal("Charlie Team", settled.Winner.CaptainName)
	s.Equal(80, settled.Winner.Amount)
}

// Eligibility and skipping

func (s *RoomSuite) TestPoolCapMakesCaptainIneligible() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.joinCaptain("conn-2", "Blue Team")

	// Red wins the only slot-1 A player; pool cap for A is 1
	s.startRound(0)
	_, err := s.room.SubmitBid(s.ctx, "conn-1", 100)
	s.Require().NoError(err)
	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	// Second A player: Red is at the pool cap and must be skipped
	s.startRound(1)
	_, err = s.room.SubmitBid(s.ctx, "conn-1", 10)
	s.ErrorIs(err, model.ErrCaptainSkipped)

	payload := s.sink.ofType(model.EventRoundOpened)[1].Payload.(model.RoundOpenedPayload)
	s.Equal([]model.ConnectionID{"conn-2"}, payload.EligibleCaptains)
	s.Equal([]model.ConnectionID{"conn-1"}, payload.SkippedCaptains)
}

func (s *RoomSuite) TestUniversalSkipCompletesPlayer() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")

	// Red takes the only B player; B's cap is 1
	s.startRound(2)
	_, err := s.room.SubmitBid(s.ctx, "conn-1", 100)
	s.Require().NoError(err)
	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	// No captain can hold another B player... but there is no second B player.
	// Fill the team cap instead: Red has 1 slot used of 3; win the duo (2
	// slots) to reach the cap.
	s.startRound(3)
	_, err = s.room.SubmitBid(s.ctx, "conn-1", 100)
	s.Require().NoError(err)
	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	// Every remaining player is now unbiddable for the only captain
	s.Require().NoError(s.room.StartBidding(s.ctx, s.auctioneer, 0))

	events := s.sink.ofType(model.EventPlayerAutoSkipped)
	s.Require().Len(events, 1)
	payload := events[0].Payload.(model.PlayerAutoSkippedPayload)
	s.Equal(0, payload.PlayerIndex)

	snap, _ := s.room.Snapshot(s.ctx)
	s.Contains(snap.CompletedPlayers, 0)
	// No round was opened
	s.Equal(model.RoomStateWaiting, snap.State)
	s.ErrorIs(s.room.StartBidding(s.ctx, s.auctioneer, 0), model.ErrPlayerCompleted)
}

func (s *RoomSuite) TestRoomCompletesWhenAllPlayersDone() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.joinCaptain("conn-2", "Blue Team")

	settle := func(index int, bidder model.ConnectionID) {
		s.Require().NoError(s.room.StartBidding(s.ctx, s.auctioneer, index))
		snap, _ := s.room.Snapshot(s.ctx)
		if snap.State != model.RoomStateBidding {
			return // auto-skipped
		}
		_, err := s.room.SubmitBid(s.ctx, bidder, 10)
		if err == nil {
			s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))
			return
		}
		// Bidder ineligible; settle with no bids
		s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))
	}

	settle(0, "conn-1")
	settle(1, "conn-2")
	settle(2, "conn-1")
	settle(3, "conn-2")

	snap, _ := s.room.Snapshot(s.ctx)
	s.Equal(model.RoomStateComplete, snap.State)
	s.Len(snap.CompletedPlayers, 4)

	states := s.sink.ofType(model.EventRoomState)
	s.Require().NotEmpty(states)
	final := states[len(states)-1].Payload.(model.RoomSnapshot)
	s.Equal(model.RoomStateComplete, final.State)
}

// Budget reset

func (s *RoomSuite) TestResetBudgetsIsAuctioneerOnly() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")

	s.ErrorIs(s.room.ResetBudgets(s.ctx, "conn-1"), model.ErrNotAuctioneer)
}

func (s *RoomSuite) TestResetBudgetsRestoresWithoutTouchingRosters() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.startRound(0)
	_, err := s.room.SubmitBid(s.ctx, "conn-1", 400)
	s.Require().NoError(err)
	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	s.Require().NoError(s.room.ResetBudgets(s.ctx, s.auctioneer))

	snap, _ := s.room.Snapshot(s.ctx)
	s.Equal(1000, snap.Captains[0].RemainingBudget)
	s.Len(snap.Captains[0].Roster, 1)
	s.Equal([]int{0}, snap.CompletedPlayers)
}

func (s *RoomSuite) TestResetBudgetsIsIdempotent() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")

	s.Require().NoError(s.room.ResetBudgets(s.ctx, s.auctioneer))
	s.Require().NoError(s.room.ResetBudgets(s.ctx, s.auctioneer))

	snap, _ := s.room.Snapshot(s.ctx)
	s.Equal(1000, snap.Captains[0].RemainingBudget)
}

func (s *RoomSuite) TestResetBudgetsAllowedMidRound() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.startRound(0)

	s.NoError(s.room.ResetBudgets(s.ctx, s.auctioneer))
}

// Reconnect

func (s *RoomSuite) TestReconnectInheritsBudgetAndRoster() {
	s.joinAuctioneer()
	s.joinCaptain("conn-old", "Red Team")
	s.startRound(0)
	_, err := s.room.SubmitBid(s.ctx, "conn-old", 300)
	s.Require().NoError(err)
	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	rejoined := s.joinCaptain("conn-new", "Red Team")

	s.Equal(model.ConnectionID("conn-new"), rejoined.ConnID)
	s.Equal(700, rejoined.RemainingBudget)
	s.Require().Len(rejoined.Roster, 1)
	s.Equal("Alpha", rejoined.Roster[0].Name)

	snap, _ := s.room.Snapshot(s.ctx)
	s.Len(snap.Captains, 1)
}

func (s *RoomSuite) TestStaleConnectionRejected() {
	s.joinAuctioneer()
	s.joinCaptain("conn-old", "Red Team")
	s.joinCaptain("conn-new", "Red Team")

	s.startRound(0)
	_, err := s.room.SubmitBid(s.ctx, "conn-old", 10)
	s.ErrorIs(err, model.ErrStaleConnection)

	_, err = s.room.SubmitBid(s.ctx, "conn-new", 10)
	s.NoError(err)
}

func (s *RoomSuite) TestMidRoundReconnectKeepsBid() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")
	s.joinCaptain("conn-old", "Blue Team")
	s.startRound(0)

	_, err := s.room.SubmitBid(s.ctx, "conn-old", 500)
	s.Require().NoError(err)

	// Reconnect mid-round: the recorded bid follows the captain
	s.joinCaptain("conn-new", "Blue Team")
	_, err = s.room.SubmitBid(s.ctx, "conn-1", 100)
	s.Require().NoError(err)
	s.Require().NoError(s.room.RevealBids(s.ctx, s.auctioneer))

	settled := s.sink.ofType(model.EventRoundSettled)[0].Payload.(model.RoundSettledPayload)
	s.Require().NotNil(settled.Winner)
	s.Equal("Blue Team", settled.Winner.CaptainName)
	s.Equal(500, settled.Winner.Amount)
}

func (s *RoomSuite) TestDisconnectMarksCaptain() {
	s.joinCaptain("conn-1", "Red Team")

	s.room.Disconnect("conn-1")

	// Disconnect is fire-and-forget; take a snapshot to synchronize
	snap, err := s.room.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.False(snap.Captains[0].Connected)
}

// Close

func (s *RoomSuite) TestCloseRequiresAuctioneer() {
	s.joinAuctioneer()
	s.joinCaptain("conn-1", "Red Team")

	s.ErrorIs(s.room.Close(s.ctx, "conn-1"), model.ErrNotAuctioneer)
}

func (s *RoomSuite) TestCloseRejectsFurtherActions() {
	s.joinAuctioneer()
	s.Require().NoError(s.room.Close(s.ctx, s.auctioneer))

	_, err := s.room.Snapshot(s.ctx)
	s.ErrorIs(err, model.ErrRoomClosed)
	_, _, err = s.room.JoinAsCaptain(s.ctx, "conn-late", "Late Team")
	s.ErrorIs(err, model.ErrRoomClosed)

	events := s.sink.ofType(model.EventRoomClosed)
	s.Len(events, 1)
}

func (s *RoomSuite) TestCloseReportsSuccessToCaller() {
	// The worker acknowledges a close before it shuts down, so the caller
	// must see nil every time, never a spurious ErrRoomClosed.
	for i := 0; i < 100; i++ {
		r := New("ZZZ999", testPlayers(), 2, model.RoomSettings{
			InitialBudget:      1000,
			MaxPlayersPerRound: 4,
		}, Deps{
			Logger: testutil.NopLogger(),
			Clock:  s.clock,
			Random: mocks.NewMockRandom(),
			Sink:   &captureSink{},
		})
		_, err := r.JoinAsAuctioneer(s.ctx, s.auctioneer)
		s.Require().NoError(err)
		s.Require().NoError(r.Close(s.ctx, s.auctioneer))
	}
}

func (s *RoomSuite) TestShutdownIsIdempotent() {
	s.NoError(s.room.Shutdown(s.ctx))
	s.NoError(s.room.Shutdown(s.ctx))
}
