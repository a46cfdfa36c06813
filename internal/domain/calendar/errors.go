package calendar

import "errors"

// Sentinel kinds for calendar errors.
var (
	ErrInsufficientWardrobe = errors.New("insufficient wardrobe")
)
