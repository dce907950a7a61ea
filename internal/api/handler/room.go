package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/draftnight/auction-go/internal/api/request"
	"github.com/draftnight/auction-go/internal/api/response"
	"github.com/draftnight/auction-go/internal/model"
	"github.com/draftnight/auction-go/internal/room"
	"github.com/draftnight/auction-go/internal/sse"
)

// connectionHeader carries the uuid handle issued at join. Captain and
// auctioneer actions are authenticated by it.
const connectionHeader = "X-Connection-ID"

// defaultTeamCount applies when a create-room request omits team_count
const defaultTeamCount = 4

// RoomHandler handles room lifecycle and auction action endpoints
type RoomHandler struct {
	registry   *room.Registry
	hubManager *sse.HubManager
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(registry *room.Registry, hubManager *sse.HubManager) *RoomHandler {
	return &RoomHandler{
		registry:   registry,
		hubManager: hubManager,
	}
}

func connID(r *http.Request) (model.ConnectionID, error) {
	id := r.Header.Get(connectionHeader)
	if id == "" {
		return "", NewInvalidRequestError(connectionHeader + " header is required")
	}
	return model.ConnectionID(id), nil
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Pool == "" {
		WriteError(w, NewInvalidRequestError("pool is required"))
		return
	}
	if req.TeamCount == 0 {
		req.TeamCount = defaultTeamCount
	}

	settings := model.DefaultRoomSettings()
	if req.InitialBudget > 0 {
		settings.InitialBudget = req.InitialBudget
	}
	if req.MaxPlayersPerRound > 0 {
		settings.MaxPlayersPerRound = req.MaxPlayersPerRound
	}

	rm, err := h.registry.Create(r.Context(), room.CreateOptions{
		PoolName:  req.Pool,
		TeamCount: req.TeamCount,
		Settings:  settings,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{"code": string(rm.Code())})
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	rm, err := h.registry.Get(model.RoomCode(mux.Vars(r)["code"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	snap, err := rm.Snapshot(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomResponse{Room: snap})
}

// JoinAuctioneer handles POST /api/v1/rooms/{code}/auctioneer
func (h *RoomHandler) JoinAuctioneer(w http.ResponseWriter, r *http.Request) {
	rm, err := h.registry.Get(model.RoomCode(mux.Vars(r)["code"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	conn := model.ConnectionID(uuid.NewString())
	snap, err := rm.JoinAsAuctioneer(r.Context(), conn)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomResponse{
		ConnectionID: string(conn),
		Room:         snap,
	})
}

// JoinCaptain handles POST /api/v1/rooms/{code}/captains
func (h *RoomHandler) JoinCaptain(w http.ResponseWriter, r *http.Request) {
	var req request.JoinCaptainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	rm, err := h.registry.Get(model.RoomCode(mux.Vars(r)["code"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	conn := model.ConnectionID(uuid.NewString())
	captain, snap, err := rm.JoinAsCaptain(r.Context(), conn, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CaptainJoinResponse{
		ConnectionID: string(conn),
		Captain:      captain,
		Room:         snap,
	})
}

// StartRound handles POST /api/v1/rooms/{code}/rounds
func (h *RoomHandler) StartRound(w http.ResponseWriter, r *http.Request) {
	conn, err := connID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.StartRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	rm, err := h.registry.Get(model.RoomCode(mux.Vars(r)["code"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := rm.StartBidding(r.Context(), conn, req.PlayerIndex); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// SubmitBid handles POST /api/v1/rooms/{code}/bids
func (h *RoomHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	conn, err := connID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.SubmitBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	rm, err := h.registry.Get(model.RoomCode(mux.Vars(r)["code"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	receipt, err := rm.SubmitBid(r.Context(), conn, req.Amount)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BidResponse{
		Amount:           receipt.Amount,
		SubmittedBids:    receipt.SubmittedBids,
		EligibleCaptains: receipt.EligibleCaptains,
	})
}

// Reveal handles POST /api/v1/rooms/{code}/reveal
func (h *RoomHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	conn, err := connID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	rm, err := h.registry.Get(model.RoomCode(mux.Vars(r)["code"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := rm.RevealBids(r.Context(), conn); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ResetBudgets handles POST /api/v1/rooms/{code}/reset-budgets
func (h *RoomHandler) ResetBudgets(w http.ResponseWriter, r *http.Request) {
	conn, err := connID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	rm, err := h.registry.Get(model.RoomCode(mux.Vars(r)["code"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := rm.ResetBudgets(r.Context(), conn); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Close handles DELETE /api/v1/rooms/{code}
func (h *RoomHandler) Close(w http.ResponseWriter, r *http.Request) {
	conn, err := connID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	code := model.RoomCode(mux.Vars(r)["code"])
	rm, err := h.registry.Get(code)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := rm.Close(r.Context(), conn); err != nil {
		WriteError(w, err)
		return
	}
	h.registry.Remove(code)

	response.NoContent(w)
}

// Events handles GET /api/v1/rooms/{code}/events
func (h *RoomHandler) Events(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	if _, err := h.registry.Get(code); err != nil {
		WriteError(w, err)
		return
	}

	// Spectators may stream without a handle; joined clients send theirs
	conn := model.ConnectionID(r.Header.Get(connectionHeader))
	if conn == "" {
		conn = model.ConnectionID(uuid.NewString())
	}

	hub := h.hubManager.GetOrCreateHub(code)
	sse.ServeSSE(w, r, hub, conn)

	// The stream ending is the only disconnect signal the server gets
	if rm, err := h.registry.Get(code); err == nil {
		rm.Disconnect(conn)
	}
}
