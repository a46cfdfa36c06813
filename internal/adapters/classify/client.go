// Package classify talks to the external classification service that turns
// a clothing image into a category, a style embedding, and a color group.
//
// The engine never depends on a specific model implementation; it sees only
// the Classifier interface, and this HTTP client is one implementation of
// it. Classification, embedding extraction, and color-group mapping all
// happen on the remote side.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/capsule/internal/domain/model"
)

// defaultTimeout bounds one classification round trip.
const defaultTimeout = 15 * time.Second

// Record is the classification result for one image.
type Record struct {
	Category   model.Category
	ColorGroup model.ColorGroup
	Embedding  []float64
}

// Classifier produces a classified record from an image reference.
// The category hint is passed through when the uploader already declared
// the piece's category; implementations may use or ignore it.
type Classifier interface {
	Classify(ctx context.Context, imageRef, categoryHint string) (Record, error)
}

// Client is an HTTP Classifier talking to a remote inference service.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ Classifier = (*Client)(nil)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// NewClient creates a reusable classification client.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// classifyResponse mirrors the inference service's wire format.
type classifyResponse struct {
	Category   string    `json:"category"`
	ColorGroup string    `json:"color_group"`
	Embedding  []float64 `json:"embedding"`
}

// Classify sends the image reference for classification and validates the
// returned attributes against the closed enumerations.
func (c *Client) Classify(ctx context.Context, imageRef, categoryHint string) (Record, error) {
	payload := map[string]any{
		"image_ref": imageRef,
	}
	if categoryHint != "" {
		payload["category_hint"] = categoryHint
	}

	var resp classifyResponse
	if err := c.post(ctx, "/classify", payload, &resp); err != nil {
		return Record{}, err
	}

	category, err := model.ParseCategory(resp.Category)
	if err != nil {
		return Record{}, err
	}
	colorGroup, err := model.ParseColorGroup(resp.ColorGroup)
	if err != nil {
		return Record{}, err
	}
	if len(resp.Embedding) == 0 {
		return Record{}, fmt.Errorf("%w: empty embedding for %s", ErrBadResponse, imageRef)
	}

	return Record{
		Category:   category,
		ColorGroup: colorGroup,
		Embedding:  resp.Embedding,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %s", ErrBadResponse, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
