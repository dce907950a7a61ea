package response

import (
	"github.com/draftnight/auction-go/internal/model"
)

// RoomResponse is the response for endpoints that return the full room view.
// ConnectionID is the caller's handle for subsequent requests and is only
// set on join endpoints.
type RoomResponse struct {
	ConnectionID string             `json:"connection_id,omitempty"`
	Room         model.RoomSnapshot `json:"room"`
}

// CaptainJoinResponse is the response for joining a room as a captain
type CaptainJoinResponse struct {
	ConnectionID string             `json:"connection_id"`
	Captain      model.Captain      `json:"captain"`
	Room         model.RoomSnapshot `json:"room"`
}

// BidResponse is the private acknowledgement returned to a bidder
type BidResponse struct {
	Amount           int `json:"amount"`
	SubmittedBids    int `json:"submitted_bids"`
	EligibleCaptains int `json:"eligible_captains"`
}

// PoolListResponse lists the stored player pools
type PoolListResponse struct {
	Pools []string `json:"pools"`
}
