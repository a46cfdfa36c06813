// Package wardrobegen generates synthetic wardrobes and exercises a running
// capsule service end to end: it registers items, requests a calendar, and
// verifies the engine's invariants on the result.
package wardrobegen

import "time"

// Default generation settings.
const (
	DefaultNumItems     = 24
	DefaultEmbeddingDim = 512
	DefaultDays         = 30
	DefaultTimeout      = 30 * time.Second
)

// Config controls one generation run.
type Config struct {
	// BaseURL of the capsule service, e.g. http://127.0.0.1:9080.
	BaseURL string

	// NumItems to generate and register.
	NumItems int

	// EmbeddingDim is the length of the synthetic style embeddings.
	EmbeddingDim int

	// Days requested for the capsule calendar.
	Days int

	// Timeout bounds each HTTP call.
	Timeout time.Duration
}

// NewConfig returns a Config with defaults applied.
func NewConfig(baseURL string) *Config {
	return &Config{
		BaseURL:      baseURL,
		NumItems:     DefaultNumItems,
		EmbeddingDim: DefaultEmbeddingDim,
		Days:         DefaultDays,
		Timeout:      DefaultTimeout,
	}
}
