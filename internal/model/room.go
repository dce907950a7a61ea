package model

import "time"

// RoomCode is the 6-character join code for an auction room
type RoomCode string

// RoomState is the room's macro state
type RoomState string

const (
	RoomStateSetup         RoomState = "setup"           // Created, auctioneer not yet present
	RoomStateWaiting       RoomState = "waiting"         // Between rounds
	RoomStateBidding       RoomState = "bidding"         // Round open, accepting sealed bids
	RoomStateReadyToReveal RoomState = "ready_to_reveal" // Every eligible captain has bid
	RoomStateRevealing     RoomState = "revealing"       // Settlement in progress
	RoomStateComplete      RoomState = "complete"        // All players auctioned or room closed
)

// RoomSettings holds per-room configuration fixed at creation.
// MaxPlayersPerRound is informational only; the core does not enforce it.
type RoomSettings struct {
	InitialBudget      int `json:"initial_budget"`
	MaxPlayersPerRound int `json:"max_players_per_round"`
}

// DefaultRoomSettings returns the default room settings
func DefaultRoomSettings() RoomSettings {
	return RoomSettings{
		InitialBudget:      1000,
		MaxPlayersPerRound: 4,
	}
}

// Bid is a single sealed bid. The timestamp is for audit only and never
// participates in tie-breaking.
type Bid struct {
	ConnID   ConnectionID `json:"captain_id"`
	Amount   int          `json:"amount"`
	PlacedAt time.Time    `json:"placed_at"`
}

// CaptainUsageEntry pairs a captain with their roster usage for broadcast
type CaptainUsageEntry struct {
	CaptainID ConnectionID `json:"captain_id"`
	Usage     CaptainUsage `json:"usage"`
}

// RoomSnapshot is the full room view sent on join and on request
type RoomSnapshot struct {
	Code                RoomCode            `json:"code"`
	State               RoomState           `json:"state"`
	Captains            []Captain           `json:"captains"`
	Players             []Player            `json:"players"`
	CompletedPlayers    []int               `json:"completed_players"`
	CurrentPlayerIndex  int                 `json:"current_player_index"`
	Caps                Caps                `json:"caps"`
	Settings            RoomSettings        `json:"settings"`
	RemainingPoolCounts map[Pool]int        `json:"remaining_pool_counts"`
	CaptainUsage        []CaptainUsageEntry `json:"captain_usage"`
}
