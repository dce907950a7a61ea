package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomClosed       = errors.New("room is closed")
	ErrInvalidTeamCount = errors.New("team count must be at least 1")

	// Role errors
	ErrNotAuctioneer   = errors.New("action restricted to the auctioneer")
	ErrNotCaptain      = errors.New("connection is not a captain in this room")
	ErrStaleConnection = errors.New("connection has been replaced by a reconnect")

	// Round errors
	ErrRoundInProgress    = errors.New("a round is already in progress")
	ErrNoOpenRound        = errors.New("no round is open")
	ErrPlayerCompleted    = errors.New("player has already been auctioned")
	ErrInvalidPlayerIndex = errors.New("invalid player index")
	ErrBiddingClosed      = errors.New("bidding is not open")
	ErrCaptainSkipped     = errors.New("captain is not eligible to bid this round")

	// Bid errors
	ErrNegativeBid      = errors.New("bid amount cannot be negative")
	ErrBidExceedsBudget = errors.New("bid amount exceeds remaining budget")

	// Pool store errors
	ErrPoolNotFound = errors.New("player pool not found")
)
