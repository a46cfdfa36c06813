package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CAPSULE_CONFIG is set
//  3. env (prefix CAPSULE_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CAPSULE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: CAPSULE_ADDR, CAPSULE_CALENDAR_DAYS, ...
	// Map env keys like CAPSULE_CALENDAR_DAYS -> calendar_days (flat keys,
	// underscores preserved to match koanf tags on the struct).
	envProvider := env.Provider("CAPSULE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "capsule_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces the invariants the engine relies on at startup.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CalendarDays < 1:
		return fmt.Errorf("%w: calendar_days must be positive, got %d", ErrInvalidConfig, c.CalendarDays)
	case c.ColorWeight < 0 || c.StyleWeight < 0:
		return fmt.Errorf("%w: scoring weights must be non-negative", ErrInvalidConfig)
	case c.ColorWeight == 0 && c.StyleWeight == 0:
		return fmt.Errorf("%w: color_weight and style_weight are both zero", ErrInvalidConfig)
	case c.CandidateCap < 1:
		return fmt.Errorf("%w: candidate_cap must be positive, got %d", ErrInvalidConfig, c.CandidateCap)
	}
	return nil
}
