// Package scoring computes color-harmony, style-similarity, and composite
// scores for outfit candidates.
package scoring

import (
	"fmt"

	"github.com/okian/capsule/internal/domain/model"
)

// Color tier values, normalized to [0,1]. Neutral pairs with anything,
// same-group pairs are good, warm+cool is a moderate match.
const (
	ColorStrongMatch   = 1.0
	ColorGoodMatch     = 2.5 / 3.0
	ColorModerateMatch = 1.0 / 3.0
)

// soloScore is used when an outfit has fewer than two items: a single piece
// carries no pairwise signal, so it scores the scale midpoint.
const soloScore = 0.5

// ColorScorer computes pairwise and aggregate color-harmony scores.
// The zero value is ready to use.
type ColorScorer struct{}

// NewColorScorer creates a color scorer.
func NewColorScorer() *ColorScorer {
	return &ColorScorer{}
}

// Pair returns the harmony score for two color groups. The function is
// symmetric: Pair(a, b) == Pair(b, a).
func (s *ColorScorer) Pair(a, b model.ColorGroup) (float64, error) {
	if !a.Valid() {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidColorGroup, a)
	}
	if !b.Valid() {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidColorGroup, b)
	}
	switch {
	case a == model.ColorNeutral || b == model.ColorNeutral:
		return ColorStrongMatch, nil
	case a == b:
		return ColorGoodMatch, nil
	default:
		return ColorModerateMatch, nil
	}
}

// Aggregate returns the arithmetic mean of all pairwise scores among the
// given groups. Order-independent by construction.
func (s *ColorScorer) Aggregate(groups []model.ColorGroup) (float64, error) {
	if len(groups) < 2 {
		if len(groups) == 1 && !groups[0].Valid() {
			return 0, fmt.Errorf("%w: %q", model.ErrInvalidColorGroup, groups[0])
		}
		return soloScore, nil
	}
	var sum float64
	var pairs int
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			p, err := s.Pair(groups[i], groups[j])
			if err != nil {
				return 0, err
			}
			sum += p
			pairs++
		}
	}
	return sum / float64(pairs), nil
}
