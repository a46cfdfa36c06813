// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, optional YAML file, and environment variables.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CalendarDays is the default capsule calendar length.
	CalendarDays int `koanf:"calendar_days"`

	// MinItems is the generation threshold: capsule requests are rejected
	// until the wardrobe holds more than this many items.
	MinItems int `koanf:"min_items"`

	// ColorWeight and StyleWeight combine the two scoring signals.
	ColorWeight float64 `koanf:"color_weight"`
	StyleWeight float64 `koanf:"style_weight"`

	// CandidateCap bounds enumerated candidates per skeleton.
	CandidateCap int `koanf:"candidate_cap"`

	// WorkerCount sets the number of scoring workers per generation pass.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory candidate queue.
	QueueSize int `koanf:"queue_size"`

	// ClassifierEndpoint points at the external classification service.
	// Empty disables remote classification; POST /items/classify then
	// returns 503.
	ClassifierEndpoint string `koanf:"classifier_endpoint"`

	// ClassifierAPIKey is the bearer token for the classification service.
	ClassifierAPIKey string `koanf:"classifier_api_key"`

	// ClassifierTimeoutMS bounds one classification round trip.
	ClassifierTimeoutMS int `koanf:"classifier_timeout_ms"`
}

// New creates a Config with documented defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		CalendarDays:        30,
		MinItems:            10,
		ColorWeight:         0.5,
		StyleWeight:         0.5,
		CandidateCap:        100_000,
		WorkerCount:         runtime.NumCPU(),
		QueueSize:           4096,
		ClassifierTimeoutMS: 15_000,
	}
}
