package request

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	Pool               string `json:"pool"`
	TeamCount          int    `json:"team_count"`
	InitialBudget      int    `json:"initial_budget,omitempty"`
	MaxPlayersPerRound int    `json:"max_players_per_round,omitempty"`
}

// JoinCaptainRequest is the request body for joining a room as a captain
type JoinCaptainRequest struct {
	DisplayName string `json:"display_name"`
}

// StartRoundRequest is the request body for opening a bidding round
type StartRoundRequest struct {
	PlayerIndex int `json:"player_index"`
}

// SubmitBidRequest is the request body for placing a sealed bid
type SubmitBidRequest struct {
	Amount int `json:"amount"`
}
