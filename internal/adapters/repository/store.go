// Package repository defines the wardrobe store interface and errors.
package repository

import (
	"context"

	"github.com/okian/capsule/internal/domain/model"
)

// Store provides read/write access to the wardrobe.
//
// Writes (Add, Clear) and reads may interleave across requests, but a
// Snapshot is an independent copy: a generation pass reading a snapshot is
// never affected by later writes.
type Store interface {
	// Add registers a classified item. Returns ErrDuplicateItem if the id
	// is already present, or a model sentinel error on contract violations.
	Add(ctx context.Context, item model.Item) error

	// Get returns the item with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (model.Item, error)

	// Snapshot returns an immutable copy of all items in insertion order.
	// Returns ErrEmptyWardrobe when no items have been registered.
	Snapshot(ctx context.Context) ([]model.Item, error)

	// Clear removes every item from the wardrobe.
	Clear(ctx context.Context)

	// Count returns the number of items currently registered.
	Count(ctx context.Context) int
}
