package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/draftnight/auction-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeRoomNotFound       = "ROOM_NOT_FOUND"
	CodeRoomClosed         = "ROOM_CLOSED"
	CodePoolNotFound       = "POOL_NOT_FOUND"
	CodeInvalidTeamCount   = "INVALID_TEAM_COUNT"
	CodeNotAuctioneer      = "NOT_AUCTIONEER"
	CodeNotCaptain         = "NOT_CAPTAIN"
	CodeStaleConnection    = "STALE_CONNECTION"
	CodeRoundInProgress    = "ROUND_IN_PROGRESS"
	CodeNoOpenRound        = "NO_OPEN_ROUND"
	CodePlayerCompleted    = "PLAYER_COMPLETED"
	CodeInvalidPlayerIndex = "INVALID_PLAYER_INDEX"
	CodeBiddingClosed      = "BIDDING_CLOSED"
	CodeCaptainSkipped     = "CAPTAIN_SKIPPED"
	CodeNegativeBid        = "NEGATIVE_BID"
	CodeBidExceedsBudget   = "BID_EXCEEDS_BUDGET"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoomClosed):
		return &httpError{http.StatusGone, APIError{CodeRoomClosed, "Room has been closed"}}
	case errors.Is(err, model.ErrPoolNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePoolNotFound, "Player pool not found"}}
	case errors.Is(err, model.ErrInvalidTeamCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeamCount, "Team count must be at least 1"}}
	case errors.Is(err, model.ErrNotAuctioneer):
		return &httpError{http.StatusForbidden, APIError{CodeNotAuctioneer, "Only the auctioneer can perform this action"}}
	case errors.Is(err, model.ErrNotCaptain):
		return &httpError{http.StatusForbidden, APIError{CodeNotCaptain, "Connection is not a captain in this room"}}
	case errors.Is(err, model.ErrStaleConnection):
		return &httpError{http.StatusForbidden, APIError{CodeStaleConnection, "Connection has been replaced by a reconnect"}}
	case errors.Is(err, model.ErrRoundInProgress):
		return &httpError{http.StatusConflict, APIError{CodeRoundInProgress, "A round is already in progress"}}
	case errors.Is(err, model.ErrNoOpenRound):
		return &httpError{http.StatusConflict, APIError{CodeNoOpenRound, "No round is open"}}
	case errors.Is(err, model.ErrPlayerCompleted):
		return &httpError{http.StatusConflict, APIError{CodePlayerCompleted, "Player has already been auctioned"}}
	case errors.Is(err, model.ErrInvalidPlayerIndex):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerIndex, "Invalid player index"}}
	case errors.Is(err, model.ErrBiddingClosed):
		return &httpError{http.StatusConflict, APIError{CodeBiddingClosed, "Bidding is not open"}}
	case errors.Is(err, model.ErrCaptainSkipped):
		return &httpError{http.StatusConflict, APIError{CodeCaptainSkipped, "Captain is not eligible to bid this round"}}
	case errors.Is(err, model.ErrNegativeBid):
		return &httpError{http.StatusBadRequest, APIError{CodeNegativeBid, "Bid amount cannot be negative"}}
	case errors.Is(err, model.ErrBidExceedsBudget):
		return &httpError{http.StatusConflict, APIError{CodeBidExceedsBudget, "Bid amount exceeds remaining budget"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
