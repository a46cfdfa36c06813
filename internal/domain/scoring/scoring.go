package scoring

import (
	"context"
	"fmt"

	"github.com/okian/capsule/internal/domain/model"
)

// Weights combines the color and style signals into a composite score.
type Weights struct {
	Color float64
	Style float64
}

// DefaultWeights returns the documented default: equal weights.
func DefaultWeights() Weights {
	return Weights{Color: 0.5, Style: 0.5}
}

// Validate checks that weights are non-negative and not both zero.
func (w Weights) Validate() error {
	if w.Color < 0 || w.Style < 0 {
		return fmt.Errorf("%w: weights must be non-negative, got color=%g style=%g", ErrInvalidWeights, w.Color, w.Style)
	}
	if w.Color == 0 && w.Style == 0 {
		return fmt.Errorf("%w: color and style weights are both zero", ErrInvalidWeights)
	}
	return nil
}

// Composite applies the weighted sum to a color and style score.
func (w Weights) Composite(color, style float64) float64 {
	return w.Color*color + w.Style*style
}

// Input abstracts the candidate fields needed for scoring.
type Input struct {
	Items []model.Item
}

// Result contains the computed scores for one candidate.
type Result struct {
	Color     float64
	Style     float64
	Composite float64
}

// Scorer computes scores for an outfit candidate. Implementations must be
// pure: identical inputs always yield identical results.
type Scorer interface {
	// Score computes all three scores, honoring ctx for cancellation.
	Score(ctx context.Context, in Input) (Result, error)
}

// Option applies a configuration option to the OutfitScorer.
type Option func(*OutfitScorer)

// WithWeights sets the composite weights.
func WithWeights(w Weights) Option {
	return func(s *OutfitScorer) {
		s.weights = w
	}
}

// OutfitScorer implements Scorer by combining the color-harmony and
// style-similarity aggregates with configurable weights.
type OutfitScorer struct {
	colors  *ColorScorer
	styles  *StyleScorer
	weights Weights
}

// NewOutfitScorer creates a scorer with the given options. It fails with
// ErrInvalidWeights when the configured weights are unusable.
func NewOutfitScorer(opts ...Option) (*OutfitScorer, error) {
	s := &OutfitScorer{
		colors:  NewColorScorer(),
		styles:  NewStyleScorer(),
		weights: DefaultWeights(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.weights.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Weights returns the scorer's configured weights.
func (s *OutfitScorer) Weights() Weights {
	return s.weights
}

// Score computes color, style, and composite scores for the input items.
func (s *OutfitScorer) Score(ctx context.Context, in Input) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, fmt.Errorf("scoring cancelled: %w", ctx.Err())
	default:
	}

	groups := make([]model.ColorGroup, len(in.Items))
	embeddings := make([][]float64, len(in.Items))
	for i, it := range in.Items {
		groups[i] = it.ColorGroup
		embeddings[i] = it.Embedding
	}

	color, err := s.colors.Aggregate(groups)
	if err != nil {
		return Result{}, err
	}
	style, err := s.styles.Aggregate(embeddings)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Color:     color,
		Style:     style,
		Composite: s.weights.Composite(color, style),
	}, nil
}
