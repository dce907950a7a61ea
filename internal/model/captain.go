package model

// ConnectionID is the per-connection handle issued when a client joins a room.
// It is the only identity the core tracks; a captain rejoining under the same
// display name is issued a fresh handle and the old one is invalidated.
type ConnectionID string

// CaptainColors is the fixed palette cycled through as captains join.
// A captain's color is assigned once and is stable for the room's life.
var CaptainColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
	"#FFEAA7", "#DDA0DD", "#98D8C8", "#F7DC6F",
}

// Captain is a team captain bidding in a room
type Captain struct {
	ConnID          ConnectionID `json:"id"`
	Name            string       `json:"name"`
	Color           string       `json:"color"`
	Budget          int          `json:"budget"`
	RemainingBudget int          `json:"remaining_budget"`
	Roster          []Player     `json:"roster"`
	Connected       bool         `json:"connected"`
}
