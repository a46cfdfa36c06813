// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/capsule/internal/adapters/repository"
	"github.com/okian/capsule/internal/domain/calendar"
	"github.com/okian/capsule/internal/domain/model"
)

// maxCalendarDays caps the days query parameter.
const maxCalendarDays = 366

// CapsuleHandler handles capsule calendar generation requests.
type CapsuleHandler struct {
	deps     Dependencies
	minItems int
}

// NewCapsuleHandler creates a new capsule handler. Generation is rejected
// until the wardrobe holds more than minItems pieces; the engine itself
// tolerates smaller wardrobes, this threshold is the user-facing guard.
func NewCapsuleHandler(deps Dependencies, minItems int) *CapsuleHandler {
	return &CapsuleHandler{deps: deps, minItems: minItems}
}

// outfitResponse is the wire shape of one assigned outfit.
type outfitResponse struct {
	Skeleton       string   `json:"skeleton"`
	ItemIDs        []string `json:"item_ids"`
	ColorScore     float64  `json:"color_score"`
	StyleScore     float64  `json:"style_score"`
	CompositeScore float64  `json:"composite_score"`
}

// dayResponse is one calendar day: the outfit, or null for an explicitly
// empty day.
type dayResponse struct {
	Day    int             `json:"day"`
	Outfit *outfitResponse `json:"outfit"`
}

type capsuleResponse struct {
	Days    []dayResponse `json:"days"`
	Total   int           `json:"total"`
	Filled  int           `json:"filled"`
	Warning string        `json:"warning,omitempty"`
}

func toCapsuleResponse(cal model.Calendar, warning string) capsuleResponse {
	resp := capsuleResponse{
		Days:    make([]dayResponse, len(cal.Days)),
		Total:   len(cal.Days),
		Filled:  cal.Filled(),
		Warning: warning,
	}
	for i, d := range cal.Days {
		entry := dayResponse{Day: d.Day}
		if !d.Empty() {
			entry.Outfit = &outfitResponse{
				Skeleton:       d.Outfit.Skeleton,
				ItemIDs:        d.Outfit.ItemIDs(),
				ColorScore:     d.Outfit.ColorScore,
				StyleScore:     d.Outfit.StyleScore,
				CompositeScore: d.Outfit.CompositeScore,
			}
		}
		resp.Days[i] = entry
	}
	return resp
}

// HandleGetCapsule handles GET /capsule?days=N requests.
func (h *CapsuleHandler) HandleGetCapsule(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_capsule"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	days := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		n, err := strconv.Atoi(daysStr)
		if err != nil || n < 1 || n > maxCalendarDays {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		days = n
	}

	if count := h.deps.Count(r.Context()); count <= h.minItems {
		writeError(w, http.StatusUnprocessableEntity, "insufficient_items",
			fmt.Errorf("%s: wardrobe has %d items, more than %d required", op, count, h.minItems))
		return
	}

	cal, err := h.deps.GenerateCapsule(r.Context(), days)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInsufficientWardrobe):
			// Under-filled is reported, not hidden: the calendar ships with
			// explicit empty days and a warning.
			writeJSON(w, http.StatusOK, toCapsuleResponse(cal, err.Error()))
		case errors.Is(err, repository.ErrEmptyWardrobe):
			writeError(w, http.StatusUnprocessableEntity, "empty_wardrobe", Wrap(op, err))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, toCapsuleResponse(cal, ""))
}
