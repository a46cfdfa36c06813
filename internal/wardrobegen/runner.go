package wardrobegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/capsule/internal/domain/model"
	"github.com/okian/capsule/pkg/logger"
)

// Runner drives one end-to-end run against a live service.
type Runner struct {
	config *Config
	http   *http.Client
	logger logger.Logger
}

// NewRunner creates a runner for the given config.
func NewRunner(config *Config) *Runner {
	return &Runner{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		logger: logger.Get().Named("wardrobegen"),
	}
}

// Run registers a synthetic wardrobe, fetches a capsule calendar, and
// verifies the result. Returns an error on the first violated invariant.
func (r *Runner) Run(ctx context.Context) error {
	items := GenerateItems(r.config.NumItems, r.config.EmbeddingDim)
	r.logger.Info(ctx, "registering synthetic wardrobe",
		logger.Int("items", len(items)),
		logger.Int("embeddingDim", r.config.EmbeddingDim),
	)

	for _, it := range items {
		if err := r.postItem(ctx, it); err != nil {
			return fmt.Errorf("register item %s: %w", it.ID, err)
		}
	}

	capsule, err := r.fetchCapsule(ctx)
	if err != nil {
		return fmt.Errorf("fetch capsule: %w", err)
	}

	if err := VerifyCapsule(capsule, r.config.Days); err != nil {
		return err
	}

	r.logger.Info(ctx, "capsule verified",
		logger.Int("days", capsule.Total),
		logger.Int("filled", capsule.Filled),
	)
	return nil
}

func (r *Runner) postItem(ctx context.Context, it model.Item) error {
	payload := map[string]any{
		"id":          it.ID,
		"category":    string(it.Category),
		"color_group": string(it.ColorGroup),
		"embedding":   it.Embedding,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.config.BaseURL+"/items", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

func (r *Runner) fetchCapsule(ctx context.Context) (*CapsuleResult, error) {
	url := fmt.Sprintf("%s/capsule?days=%d", r.config.BaseURL, r.config.Days)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out CapsuleResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode capsule: %w", err)
	}
	return &out, nil
}
