package model

import "errors"

// Sentinel kinds for input-contract violations. These allow errors.Is/As
// from callers.
var (
	ErrInvalidItem       = errors.New("invalid item")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidColorGroup = errors.New("invalid color group")
)
