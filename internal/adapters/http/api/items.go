// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/capsule/internal/adapters/repository"
	service "github.com/okian/capsule/internal/app"
	"github.com/okian/capsule/internal/domain/model"
)

// ItemsHandler handles wardrobe item requests.
type ItemsHandler struct {
	deps Dependencies
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(deps Dependencies) *ItemsHandler {
	return &ItemsHandler{deps: deps}
}

// itemRequest mirrors the input contract for POST /items: an
// already-classified item record.
type itemRequest struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	ColorGroup string    `json:"color_group"`
	Embedding  []float64 `json:"embedding"`
}

func (r itemRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Category) == "":
		return errors.New("missing category")
	case strings.TrimSpace(r.ColorGroup) == "":
		return errors.New("missing color_group")
	case len(r.Embedding) == 0:
		return errors.New("missing embedding")
	}
	return nil
}

// itemResponse is the wire shape of a registered item. The embedding is
// omitted: it is large and callers never need it back.
type itemResponse struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	ColorGroup string `json:"color_group"`
}

func toItemResponse(it model.Item) itemResponse {
	return itemResponse{
		ID:         it.ID,
		Category:   string(it.Category),
		ColorGroup: string(it.ColorGroup),
	}
}

// HandleItems dispatches /items by method: POST registers, GET lists,
// DELETE clears the wardrobe.
func (h *ItemsHandler) HandleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodDelete:
		h.handleClear(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ItemsHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_item"
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	category, err := model.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_category", Wrap(op, err))
		return
	}
	colorGroup, err := model.ParseColorGroup(req.ColorGroup)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_color_group", Wrap(op, err))
		return
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.New().String()
	}

	item := model.Item{
		ID:         id,
		Category:   category,
		ColorGroup: colorGroup,
		Embedding:  req.Embedding,
	}
	if err := h.deps.AddItem(r.Context(), item); err != nil {
		if errors.Is(err, repository.ErrDuplicateItem) {
			writeError(w, http.StatusConflict, "duplicate_item", Wrap(op, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

func (h *ItemsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_items"
	items, err := h.deps.Items(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrEmptyWardrobe) {
			writeJSON(w, http.StatusOK, []itemResponse{})
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	out := make([]itemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(it)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ItemsHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	h.deps.ClearWardrobe(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// classifyRequest registers an item via the external classification service.
type classifyRequest struct {
	ID           string `json:"id"`
	ImageRef     string `json:"image_ref"`
	CategoryHint string `json:"category_hint"`
}

// HandleClassify handles POST /items/classify requests.
func (h *ItemsHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify_item"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ImageRef) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.New().String()
	}

	item, err := h.deps.ClassifyAndAdd(r.Context(), id, req.ImageRef, req.CategoryHint)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoClassifier):
			writeError(w, http.StatusServiceUnavailable, "no_classifier", WrapKind(op, ErrUnavailable, err))
		case errors.Is(err, repository.ErrDuplicateItem):
			writeError(w, http.StatusConflict, "duplicate_item", Wrap(op, err))
		default:
			writeError(w, http.StatusBadGateway, "classify_failed", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusCreated, toItemResponse(item))
}
