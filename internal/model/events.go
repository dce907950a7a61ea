package model

// EventType identifies the type of event
type EventType string

const (
	EventRoomState            EventType = "room_state"
	EventCaptainRosterChanged EventType = "captain_roster_changed"
	EventRoundOpened          EventType = "round_opened"
	EventBidTally             EventType = "bid_tally"
	EventRoundSettled         EventType = "round_settled"
	EventPlayerAutoSkipped    EventType = "player_auto_skipped"
	EventRoomClosed           EventType = "room_closed"
)

// Event is a room-scoped broadcast emitted by the auction engine and consumed
// by the presentation layer
type Event struct {
	Type     EventType
	RoomCode RoomCode
	Payload  any
}

// RoundOpenedPayload announces a new bidding round. Player carries the
// partially-masked stat view; VisibleStats names each stat key exposed this
// round (boss stats as "boss_<name>").
type RoundOpenedPayload struct {
	Player              Player              `json:"player"`
	PlayerIndex         int                 `json:"player_index"`
	VisibleStats        []string            `json:"visible_stats"`
	EligibleCaptains    []ConnectionID      `json:"eligible_captains"`
	SkippedCaptains     []ConnectionID      `json:"skipped_captains"`
	Caps                Caps                `json:"caps"`
	RemainingPoolCounts map[Pool]int        `json:"remaining_pool_counts"`
	CaptainUsage        []CaptainUsageEntry `json:"captain_usage"`
}

// BidTallyPayload reports the running count of sealed bids. It never carries
// an amount.
type BidTallyPayload struct {
	CaptainID        ConnectionID `json:"captain_id"`
	CaptainName      string       `json:"captain_name"`
	SubmittedBids    int          `json:"submitted_bids"`
	EligibleCaptains int          `json:"eligible_captains"`
}

// RevealedBid is one ledger entry unsealed for display
type RevealedBid struct {
	CaptainName  string `json:"captain_name"`
	CaptainColor string `json:"captain_color"`
	Amount       int    `json:"amount"`
}

// RoundSettledPayload carries the full unsealed ledger and the settlement
// result. Winner is nil when the ledger was empty.
type RoundSettledPayload struct {
	Bids                 []RevealedBid `json:"bids"`
	Winner               *RevealedBid  `json:"winner"`
	Captains             []Captain     `json:"captains"`
	CompletedPlayerIndex int           `json:"completed_player_index"`
	Player               Player        `json:"player"`
	Message              string        `json:"message,omitempty"`
}

// PlayerAutoSkippedPayload reports the no-eligible-captains outcome
type PlayerAutoSkippedPayload struct {
	Player      Player `json:"player"`
	PlayerIndex int    `json:"player_index"`
	Reason      string `json:"reason"`
}

// RosterChangedPayload carries the captain set after any captain change
type RosterChangedPayload struct {
	Captains []Captain `json:"captains"`
}
