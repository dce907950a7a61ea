package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/draftnight/auction-go/internal/api/response"
	"github.com/draftnight/auction-go/internal/pool"
	"github.com/draftnight/auction-go/internal/storage"
)

// PoolHandler handles player-pool management endpoints
type PoolHandler struct {
	store storage.PoolStore
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(store storage.PoolStore) *PoolHandler {
	return &PoolHandler{store: store}
}

// Upload handles PUT /api/v1/pools/{name}. The body is a players.json
// document as produced by the stats scraper.
func (h *PoolHandler) Upload(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	players, err := pool.Parse(r.Body)
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}
	if len(players) == 0 {
		WriteError(w, NewInvalidRequestError("pool document contains no players"))
		return
	}

	if err := h.store.SavePool(r.Context(), name, players); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"players": len(players)})
}

// List handles GET /api/v1/pools
func (h *PoolHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.ListPools(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PoolListResponse{Pools: names})
}

// Delete handles DELETE /api/v1/pools/{name}
func (h *PoolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePool(r.Context(), mux.Vars(r)["name"]); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
