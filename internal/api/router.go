package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/draftnight/auction-go/internal/api/handler"
	"github.com/draftnight/auction-go/internal/middleware"
	"github.com/draftnight/auction-go/internal/room"
	"github.com/draftnight/auction-go/internal/sse"
	"github.com/draftnight/auction-go/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Registry   *room.Registry
	HubManager *sse.HubManager
	PoolStore  storage.PoolStore
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.Registry, cfg.HubManager)
	poolHandler := handler.NewPoolHandler(cfg.PoolStore)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	// Room lifecycle
	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}", roomHandler.Close).Methods(http.MethodDelete)

	// Join endpoints issue the connection handle used by everything below
	api.HandleFunc("/rooms/{code}/auctioneer", roomHandler.JoinAuctioneer).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/captains", roomHandler.JoinCaptain).Methods(http.MethodPost)

	// Auction actions
	api.HandleFunc("/rooms/{code}/rounds", roomHandler.StartRound).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/bids", roomHandler.SubmitBid).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/reveal", roomHandler.Reveal).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/reset-budgets", roomHandler.ResetBudgets).Methods(http.MethodPost)

	// Event stream
	api.HandleFunc("/rooms/{code}/events", roomHandler.Events).Methods(http.MethodGet)

	// Pool management (scraper upload side)
	api.HandleFunc("/pools", poolHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/pools/{name}", poolHandler.Upload).Methods(http.MethodPut)
	api.HandleFunc("/pools/{name}", poolHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
