// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/capsule/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Wardrobe operations.
	AddItem(ctx context.Context, item model.Item) error
	ClassifyAndAdd(ctx context.Context, id, imageRef, categoryHint string) (model.Item, error)
	Items(ctx context.Context) ([]model.Item, error)
	Count(ctx context.Context) int
	ClearWardrobe(ctx context.Context)

	// GenerateCapsule produces the outfit calendar for the given length.
	GenerateCapsule(ctx context.Context, days int) (model.Calendar, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	itemsHandler   *ItemsHandler
	capsuleHandler *CapsuleHandler
}

// NewServer creates a new API server with all handlers. minItems is the
// caller-facing generation threshold: capsule requests are rejected until
// the wardrobe holds more than minItems pieces.
func NewServer(deps Dependencies, statsProvider StatsProvider, minItems int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		itemsHandler:   NewItemsHandler(deps),
		capsuleHandler: NewCapsuleHandler(deps, minItems),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/items", MetricsMiddleware(s.itemsHandler.HandleItems, "items"))
	mux.HandleFunc("/items/classify", MetricsMiddleware(s.itemsHandler.HandleClassify, "items_classify"))
	mux.HandleFunc("/capsule", MetricsMiddleware(s.capsuleHandler.HandleGetCapsule, "capsule"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
