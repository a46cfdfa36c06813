package repository

import "errors"

// Sentinel kinds for wardrobe errors.
var (
	ErrNotFound      = errors.New("item not found")
	ErrDuplicateItem = errors.New("duplicate item id")
	ErrEmptyWardrobe = errors.New("empty wardrobe")
)
