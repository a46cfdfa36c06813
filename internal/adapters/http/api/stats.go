// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	service "github.com/okian/capsule/internal/app"
)

// StatsProvider exposes the engine's configuration and wardrobe snapshot
// for the stats endpoint.
type StatsProvider interface {
	GetStats() service.Stats
}

// StatsHandler serves the engine snapshot: calendar length, scoring
// weights, pipeline sizing, and current wardrobe size.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}
