package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrInvalidWeights    = errors.New("invalid scoring weights")
)
