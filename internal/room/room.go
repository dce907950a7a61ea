// Package room implements the auction room engine: a per-room worker
// goroutine that owns all room state and drives the bidding -> reveal ->
// settlement cycle, plus the registry of live rooms.
package room

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/draftnight/auction-go/internal/dependencies/clock"
	"github.com/draftnight/auction-go/internal/dependencies/random"
	"github.com/draftnight/auction-go/internal/model"
	"github.com/draftnight/auction-go/internal/services/bidding"
	"github.com/draftnight/auction-go/internal/services/caps"
	"github.com/draftnight/auction-go/internal/services/eligibility"
)

// Sink receives the events a room broadcasts. Publish must not block: the
// room worker calls it synchronously between actions.
type Sink interface {
	Publish(ev model.Event)
}

// NopSink discards all events
type NopSink struct{}

// Publish discards the event
func (NopSink) Publish(model.Event) {}

// Deps holds a room's injected dependencies
type Deps struct {
	Logger *slog.Logger
	Clock  clock.Clock
	Random random.Random
	Sink   Sink
}

// BidReceipt is the private acknowledgement returned to a bidder
type BidReceipt struct {
	Amount           int `json:"amount"`
	SubmittedBids    int `json:"submitted_bids"`
	EligibleCaptains int `json:"eligible_captains"`
}

const actionBuffer = 64

// Room is one live auction room. All state below the marker is owned by the
// worker goroutine and must only be touched from handle* methods.
type Room struct {
	code   model.RoomCode
	logger *slog.Logger
	clock  clock.Clock
	random random.Random
	sink   Sink

	actions    chan action
	closed     chan struct{}
	closeOnce  sync.Once
	lastActive atomic.Int64

	// Worker-owned state.
	state      model.RoomState
	players    []model.Player
	captains   map[model.ConnectionID]*model.Captain
	joinOrder  []string
	replaced   map[model.ConnectionID]struct{}
	completed  map[int]struct{}
	caps       model.Caps
	settings   model.RoomSettings
	auctioneer model.ConnectionID
	curIndex   int
	round      *round
}

// round is the transient state of one in-flight player auction
type round struct {
	playerIndex int
	eligible    map[model.ConnectionID]struct{}
	skipped     map[model.ConnectionID]struct{}
	ledger      *bidding.Ledger
}

func (rd *round) rebind(old, replacement model.ConnectionID) {
	if _, ok := rd.eligible[old]; ok {
		delete(rd.eligible, old)
		rd.eligible[replacement] = struct{}{}
	}
	if _, ok := rd.skipped[old]; ok {
		delete(rd.skipped, old)
		rd.skipped[replacement] = struct{}{}
	}
	rd.ledger.Rebind(old, replacement)
}

// New creates a room over the given player list and starts its worker.
// teamCount must already be validated (>= 1) by the caller.
func New(code model.RoomCode, players []model.Player, teamCount int, settings model.RoomSettings, deps Deps) *Room {
	r := &Room{
		code:      code,
		logger:    deps.Logger.With(slog.String("room", string(code))),
		clock:     deps.Clock,
		random:    deps.Random,
		sink:      deps.Sink,
		actions:   make(chan action, actionBuffer),
		closed:    make(chan struct{}),
		state:     model.RoomStateSetup,
		players:   players,
		captains:  make(map[model.ConnectionID]*model.Captain),
		replaced:  make(map[model.ConnectionID]struct{}),
		completed: make(map[int]struct{}),
		caps:      caps.Calculate(players, teamCount),
		settings:  settings,
	}
	r.lastActive.Store(deps.Clock.Now().UnixNano())
	go r.loop()
	return r
}

// Code returns the room's join code
func (r *Room) Code() model.RoomCode {
	return r.code
}

// LastActive returns when the room last processed an action
func (r *Room) LastActive() time.Time {
	return time.Unix(0, r.lastActive.Load())
}

// JoinAsAuctioneer claims the auctioneer role for the given connection,
// taking it over from any previous holder
func (r *Room) JoinAsAuctioneer(ctx context.Context, conn model.ConnectionID) (model.RoomSnapshot, error) {
	a := joinAuctioneerAction{conn: conn, reply: make(chan joinAuctioneerReply, 1)}
	if err := r.send(ctx, a); err != nil {
		return model.RoomSnapshot{}, err
	}
	select {
	case rep := <-a.reply:
		return rep.snapshot, nil
	case <-r.closed:
		return model.RoomSnapshot{}, model.ErrRoomClosed
	case <-ctx.Done():
		return model.RoomSnapshot{}, ctx.Err()
	}
}

// JoinAsCaptain joins (or reconnects, when the display name matches an
// existing captain) the given connection as a captain
func (r *Room) JoinAsCaptain(ctx context.Context, conn model.ConnectionID, name string) (model.Captain, model.RoomSnapshot, error) {
	a := joinCaptainAction{conn: conn, name: name, reply: make(chan joinCaptainReply, 1)}
	if err := r.send(ctx, a); err != nil {
		return model.Captain{}, model.RoomSnapshot{}, err
	}
	select {
	case rep := <-a.reply:
		return rep.captain, rep.snapshot, nil
	case <-r.closed:
		return model.Captain{}, model.RoomSnapshot{}, model.ErrRoomClosed
	case <-ctx.Done():
		return model.Captain{}, model.RoomSnapshot{}, ctx.Err()
	}
}

// Disconnect marks the connection's captain as disconnected. Fire and forget;
// a drop racing room close needs no reply.
func (r *Room) Disconnect(conn model.ConnectionID) {
	select {
	case r.actions <- disconnectAction{conn: conn}:
	case <-r.closed:
	}
}

// StartBidding opens a round for the player at the given index
func (r *Room) StartBidding(ctx context.Context, conn model.ConnectionID, playerIndex int) error {
	a := startBiddingAction{conn: conn, playerIndex: playerIndex, reply: make(chan error, 1)}
	return r.roundTrip(ctx, a, a.reply)
}

// SubmitBid records the captain's sealed bid for the open round
func (r *Room) SubmitBid(ctx context.Context, conn model.ConnectionID, amount int) (BidReceipt, error) {
	a := submitBidAction{conn: conn, amount: amount, reply: make(chan submitBidReply, 1)}
	if err := r.send(ctx, a); err != nil {
		return BidReceipt{}, err
	}
	select {
	case rep := <-a.reply:
		return rep.receipt, rep.err
	case <-r.closed:
		return BidReceipt{}, model.ErrRoomClosed
	case <-ctx.Done():
		return BidReceipt{}, ctx.Err()
	}
}

// RevealBids unseals the open round's ledger and settles it
func (r *Room) RevealBids(ctx context.Context, conn model.ConnectionID) error {
	a := revealAction{conn: conn, reply: make(chan error, 1)}
	return r.roundTrip(ctx, a, a.reply)
}

// ResetBudgets restores every captain's remaining budget to their original
// budget. Rosters, caps and completed history are untouched.
func (r *Room) ResetBudgets(ctx context.Context, conn model.ConnectionID) error {
	a := resetBudgetsAction{conn: conn, reply: make(chan error, 1)}
	return r.roundTrip(ctx, a, a.reply)
}

// Snapshot returns the full room view
func (r *Room) Snapshot(ctx context.Context) (model.RoomSnapshot, error) {
	a := snapshotAction{reply: make(chan model.RoomSnapshot, 1)}
	if err := r.send(ctx, a); err != nil {
		return model.RoomSnapshot{}, err
	}
	select {
	case snap := <-a.reply:
		return snap, nil
	case <-r.closed:
		return model.RoomSnapshot{}, model.ErrRoomClosed
	case <-ctx.Done():
		return model.RoomSnapshot{}, ctx.Err()
	}
}

// Close shuts the room down on behalf of the auctioneer
func (r *Room) Close(ctx context.Context, conn model.ConnectionID) error {
	a := closeAction{conn: conn, reply: make(chan error, 1)}
	return r.roundTrip(ctx, a, a.reply)
}

// Shutdown force-closes the room regardless of role. Used by the registry's
// idle sweep and process teardown.
func (r *Room) Shutdown(ctx context.Context) error {
	a := closeAction{force: true, reply: make(chan error, 1)}
	err := r.roundTrip(ctx, a, a.reply)
	if err == model.ErrRoomClosed {
		// Already closed; shutdown is idempotent.
		return nil
	}
	return err
}

func (r *Room) send(ctx context.Context, a action) error {
	select {
	case r.actions <- a:
		return nil
	case <-r.closed:
		return model.ErrRoomClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Room) roundTrip(ctx context.Context, a action, reply chan error) error {
	if err := r.send(ctx, a); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-r.closed:
		// A successful close acknowledges the caller before the shutdown
		// channel closes; prefer that reply over the generic closed error.
		select {
		case err := <-reply:
			return err
		default:
			return model.ErrRoomClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Room) loop() {
	for {
		select {
		case <-r.closed:
			return
		case a := <-r.actions:
			r.lastActive.Store(r.clock.Now().UnixNano())
			switch act := a.(type) {
			case joinAuctioneerAction:
				act.reply <- r.handleJoinAuctioneer(act)
			case joinCaptainAction:
				act.reply <- r.handleJoinCaptain(act)
			case disconnectAction:
				r.handleDisconnect(act)
			case startBiddingAction:
				act.reply <- r.handleStartBidding(act)
			case submitBidAction:
				act.reply <- r.handleSubmitBid(act)
			case revealAction:
				act.reply <- r.handleReveal(act)
			case resetBudgetsAction:
				act.reply <- r.handleResetBudgets(act)
			case snapshotAction:
				act.reply <- r.snapshot()
			case closeAction:
				err := r.handleClose(act)
				act.reply <- err
				if err == nil {
					r.closeOnce.Do(func() { close(r.closed) })
					return
				}
			}
		}
	}
}

func (r *Room) handleJoinAuctioneer(act joinAuctioneerAction) joinAuctioneerReply {
	r.auctioneer = act.conn
	if r.state == model.RoomStateSetup {
		r.state = model.RoomStateWaiting
	}
	r.logger.Info("auctioneer joined", slog.String("conn", string(act.conn)))
	snap := r.snapshot()
	r.sink.Publish(model.Event{
		Type:     model.EventRoomState,
		RoomCode: r.code,
		Payload:  snap,
	})
	return joinAuctioneerReply{snapshot: snap}
}

func (r *Room) handleJoinCaptain(act joinCaptainAction) joinCaptainReply {
	var existing *model.Captain
	var oldConn model.ConnectionID
	for id, c := range r.captains {
		if c.Name == act.name {
			existing, oldConn = c, id
			break
		}
	}

	if existing != nil {
		// Reconnect by display name: the new connection inherits the
		// captain's budget and roster, and the old handle is invalidated.
		delete(r.captains, oldConn)
		r.replaced[oldConn] = struct{}{}
		existing.ConnID = act.conn
		existing.Connected = true
		r.captains[act.conn] = existing
		if r.round != nil {
			r.round.rebind(oldConn, act.conn)
		}
		r.logger.Info("captain reconnected",
			slog.String("name", act.name),
			slog.String("conn", string(act.conn)))
	} else {
		c := &model.Captain{
			ConnID:          act.conn,
			Name:            act.name,
			Color:           model.CaptainColors[len(r.captains)%len(model.CaptainColors)],
			Budget:          r.settings.InitialBudget,
			RemainingBudget: r.settings.InitialBudget,
			Roster:          []model.Player{},
			Connected:       true,
		}
		r.captains[act.conn] = c
		r.joinOrder = append(r.joinOrder, act.name)
		r.logger.Info("captain joined",
			slog.String("name", act.name),
			slog.String("conn", string(act.conn)))
	}

	r.publishRosterChanged()
	return joinCaptainReply{captain: *r.captains[act.conn], snapshot: r.snapshot()}
}

func (r *Room) handleDisconnect(act disconnectAction) {
	c, ok := r.captains[act.conn]
	if !ok {
		return
	}
	c.Connected = false
	r.logger.Info("captain disconnected", slog.String("name", c.Name))
	r.publishRosterChanged()
}

func (r *Room) handleStartBidding(act startBiddingAction) error {
	if act.conn != r.auctioneer || r.auctioneer == "" {
		return model.ErrNotAuctioneer
	}
	if r.round != nil {
		return model.ErrRoundInProgress
	}
	if act.playerIndex < 0 || act.playerIndex >= len(r.players) {
		return model.ErrInvalidPlayerIndex
	}
	if _, done := r.completed[act.playerIndex]; done {
		return model.ErrPlayerCompleted
	}

	player := r.players[act.playerIndex]
	eligible := make(map[model.ConnectionID]struct{})
	skipped := make(map[model.ConnectionID]struct{})
	for id, c := range r.captains {
		if eligibility.CanBid(c, player, r.caps) {
			eligible[id] = struct{}{}
		} else {
			skipped[id] = struct{}{}
		}
	}

	r.curIndex = act.playerIndex

	if len(eligible) == 0 {
		// Terminal for this player: it will never be offered again.
		r.completed[act.playerIndex] = struct{}{}
		r.maybeComplete()
		r.logger.Info("player auto-skipped",
			slog.Int("player_index", act.playerIndex),
			slog.String("player", player.Name))
		r.sink.Publish(model.Event{
			Type:     model.EventPlayerAutoSkipped,
			RoomCode: r.code,
			Payload: model.PlayerAutoSkippedPayload{
				Player:      player,
				PlayerIndex: act.playerIndex,
				Reason:      "no eligible captains (all at capacity limits)",
			},
		})
		return nil
	}

	r.round = &round{
		playerIndex: act.playerIndex,
		eligible:    eligible,
		skipped:     skipped,
		ledger:      bidding.NewLedger(),
	}
	r.state = model.RoomStateBidding

	masked, visible := maskStats(player, r.random)
	r.logger.Info("round opened",
		slog.Int("player_index", act.playerIndex),
		slog.Int("eligible", len(eligible)),
		slog.Int("skipped", len(skipped)))
	r.sink.Publish(model.Event{
		Type:     model.EventRoundOpened,
		RoomCode: r.code,
		Payload: model.RoundOpenedPayload{
			Player:              masked,
			PlayerIndex:         act.playerIndex,
			VisibleStats:        visible,
			EligibleCaptains:    sortedConns(eligible),
			SkippedCaptains:     sortedConns(skipped),
			Caps:                r.caps,
			RemainingPoolCounts: caps.RemainingPoolCounts(r.players, r.completed, act.playerIndex),
			CaptainUsage:        r.captainUsage(),
		},
	})
	return nil
}

func (r *Room) handleSubmitBid(act submitBidAction) submitBidReply {
	fail := func(err error) submitBidReply { return submitBidReply{err: err} }

	if r.state != model.RoomStateBidding || r.round == nil {
		return fail(model.ErrBiddingClosed)
	}
	if _, stale := r.replaced[act.conn]; stale {
		return fail(model.ErrStaleConnection)
	}
	c, ok := r.captains[act.conn]
	if !ok {
		return fail(model.ErrNotCaptain)
	}
	if _, ok := r.round.eligible[act.conn]; !ok {
		return fail(model.ErrCaptainSkipped)
	}
	if act.amount < 0 {
		return fail(model.ErrNegativeBid)
	}
	if act.amount > c.RemainingBudget {
		return fail(model.ErrBidExceedsBudget)
	}

	r.round.ledger.Record(act.conn, act.amount, r.clock.Now())

	submitted := r.round.ledger.Len()
	eligibleCount := len(r.round.eligible)
	r.sink.Publish(model.Event{
		Type:     model.EventBidTally,
		RoomCode: r.code,
		Payload: model.BidTallyPayload{
			CaptainID:        act.conn,
			CaptainName:      c.Name,
			SubmittedBids:    submitted,
			EligibleCaptains: eligibleCount,
		},
	})

	if submitted >= eligibleCount {
		r.state = model.RoomStateReadyToReveal
	}

	return submitBidReply{receipt: BidReceipt{
		Amount:           act.amount,
		SubmittedBids:    submitted,
		EligibleCaptains: eligibleCount,
	}}
}

func (r *Room) handleReveal(act revealAction) error {
	if act.conn != r.auctioneer || r.auctioneer == "" {
		return model.ErrNotAuctioneer
	}
	if r.round == nil {
		return model.ErrNoOpenRound
	}

	r.state = model.RoomStateRevealing
	idx := r.round.playerIndex
	ledger := r.round.ledger

	payload := model.RoundSettledPayload{
		Bids:                 []model.RevealedBid{},
		CompletedPlayerIndex: idx,
	}

	if winner, ok := bidding.Resolve(ledger, r.random); ok {
		c := r.captains[winner.ConnID]
		c.RemainingBudget -= winner.Amount
		// Delayed identity disclosure: the revealed name is written exactly
		// once, at settlement.
		r.players[idx].RevealedName = r.players[idx].Name
		c.Roster = append(c.Roster, r.players[idx])

		payload.Winner = &model.RevealedBid{
			CaptainName:  c.Name,
			CaptainColor: c.Color,
			Amount:       winner.Amount,
		}
		payload.Bids = r.revealedBids(ledger)
		r.logger.Info("round settled",
			slog.Int("player_index", idx),
			slog.String("winner", c.Name),
			slog.Int("amount", winner.Amount))
	} else {
		payload.Message = "no bids received"
		r.logger.Info("round settled with no bids", slog.Int("player_index", idx))
	}

	r.completed[idx] = struct{}{}
	r.round = nil
	r.state = model.RoomStateWaiting
	r.maybeComplete()

	payload.Player = r.players[idx]
	payload.Captains = r.captainList()

	r.sink.Publish(model.Event{
		Type:     model.EventRoundSettled,
		RoomCode: r.code,
		Payload:  payload,
	})
	return nil
}

func (r *Room) handleResetBudgets(act resetBudgetsAction) error {
	if act.conn != r.auctioneer || r.auctioneer == "" {
		return model.ErrNotAuctioneer
	}
	for _, c := range r.captains {
		c.RemainingBudget = c.Budget
	}
	r.logger.Info("budgets reset")
	r.publishRosterChanged()
	return nil
}

func (r *Room) handleClose(act closeAction) error {
	if !act.force && (act.conn != r.auctioneer || r.auctioneer == "") {
		return model.ErrNotAuctioneer
	}
	r.state = model.RoomStateComplete
	r.logger.Info("room closed")
	r.sink.Publish(model.Event{
		Type:     model.EventRoomClosed,
		RoomCode: r.code,
		Payload:  struct{}{},
	})
	return nil
}

// maybeComplete moves the room to its terminal state once every player index
// has been auctioned or skipped
func (r *Room) maybeComplete() {
	if len(r.players) > 0 && len(r.completed) == len(r.players) {
		r.state = model.RoomStateComplete
		r.sink.Publish(model.Event{
			Type:     model.EventRoomState,
			RoomCode: r.code,
			Payload:  r.snapshot(),
		})
	}
}

func (r *Room) snapshot() model.RoomSnapshot {
	completed := make([]int, 0, len(r.completed))
	for idx := range r.completed {
		completed = append(completed, idx)
	}
	sort.Ints(completed)

	currentIndex := -1
	if r.round != nil {
		currentIndex = r.round.playerIndex
	}

	// Copy the player slice: the worker writes RevealedName at settlement and
	// snapshots escape to other goroutines.
	players := make([]model.Player, len(r.players))
	copy(players, r.players)

	return model.RoomSnapshot{
		Code:                r.code,
		State:               r.state,
		Captains:            r.captainList(),
		Players:             players,
		CompletedPlayers:    completed,
		CurrentPlayerIndex:  r.curIndex,
		Caps:                r.caps,
		Settings:            r.settings,
		RemainingPoolCounts: caps.RemainingPoolCounts(r.players, r.completed, currentIndex),
		CaptainUsage:        r.captainUsage(),
	}
}

// captainList returns deep copies of the captains in join order, so payloads
// handed to the event sink never alias worker-owned slices
func (r *Room) captainList() []model.Captain {
	list := make([]model.Captain, 0, len(r.captains))
	for _, name := range r.joinOrder {
		for _, c := range r.captains {
			if c.Name == name {
				cp := *c
				cp.Roster = make([]model.Player, len(c.Roster))
				copy(cp.Roster, c.Roster)
				list = append(list, cp)
				break
			}
		}
	}
	return list
}

func (r *Room) captainUsage() []model.CaptainUsageEntry {
	entries := make([]model.CaptainUsageEntry, 0, len(r.captains))
	for _, c := range r.captainList() {
		entries = append(entries, model.CaptainUsageEntry{
			CaptainID: c.ConnID,
			Usage:     caps.UsageFor(&c, r.caps),
		})
	}
	return entries
}

func (r *Room) publishRosterChanged() {
	r.sink.Publish(model.Event{
		Type:     model.EventCaptainRosterChanged,
		RoomCode: r.code,
		Payload:  model.RosterChangedPayload{Captains: r.captainList()},
	})
}

func (r *Room) revealedBids(ledger *bidding.Ledger) []model.RevealedBid {
	bids := make([]model.RevealedBid, 0, ledger.Len())
	for _, bid := range ledger.Entries() {
		c, ok := r.captains[bid.ConnID]
		if !ok {
			continue
		}
		bids = append(bids, model.RevealedBid{
			CaptainName:  c.Name,
			CaptainColor: c.Color,
			Amount:       bid.Amount,
		})
	}
	sort.Slice(bids, func(i, j int) bool {
		if bids[i].Amount != bids[j].Amount {
			return bids[i].Amount > bids[j].Amount
		}
		return bids[i].CaptainName < bids[j].CaptainName
	})
	return bids
}

func sortedConns(set map[model.ConnectionID]struct{}) []model.ConnectionID {
	conns := make([]model.ConnectionID, 0, len(set))
	for id := range set {
		conns = append(conns, id)
	}
	sort.Slice(conns, func(i, j int) bool { return conns[i] < conns[j] })
	return conns
}
