package scoring

import (
	"fmt"
	"math"
)

// StyleScorer computes pairwise and aggregate style-similarity scores from
// embeddings. Cosine similarity is rescaled from [-1,1] to [0,1] so the
// signal is combinable with color-harmony scores.
// The zero value is ready to use.
type StyleScorer struct{}

// NewStyleScorer creates a style scorer.
func NewStyleScorer() *StyleScorer {
	return &StyleScorer{}
}

// Pair returns the rescaled cosine similarity of two embeddings.
// Embeddings must have equal length; a zero vector yields the midpoint 0.5
// rather than a division by zero.
func (s *StyleScorer) Pair(a, b []float64) (float64, error) {
	cos, err := cosine(a, b)
	if err != nil {
		return 0, err
	}
	return (cos + 1) / 2, nil
}

// Aggregate returns the arithmetic mean of all pairwise similarities among
// the given embeddings. Order-independent by construction.
func (s *StyleScorer) Aggregate(embeddings [][]float64) (float64, error) {
	if len(embeddings) < 2 {
		return soloScore, nil
	}
	var sum float64
	var pairs int
	for i := 0; i < len(embeddings); i++ {
		for j := i + 1; j < len(embeddings); j++ {
			p, err := s.Pair(embeddings[i], embeddings[j])
			if err != nil {
				return 0, err
			}
			sum += p
			pairs++
		}
	}
	return sum / float64(pairs), nil
}

// cosine computes cosine similarity in [-1,1]. The upstream contract
// guarantees equal-length embeddings; the check is kept defensively.
func cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		// Zero vector: no directional information, treat as orthogonal.
		return 0, nil
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Clamp against floating-point drift so rescaling stays in [0,1].
	return math.Max(-1, math.Min(1, cos)), nil
}
