package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoClassifier = errors.New("no classifier configured")
)
