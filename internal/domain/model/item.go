// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Category is the closed enumeration of clothing categories.
type Category string

// Clothing categories.
const (
	CategoryTop    Category = "top"
	CategoryBottom Category = "bottom"
	CategorySkirt  Category = "skirt"
	CategoryDress  Category = "dress"
	CategoryRomper Category = "romper"
	CategoryJacket Category = "jacket"
)

// Categories lists all valid categories in a fixed order.
func Categories() []Category {
	return []Category{
		CategoryTop,
		CategoryBottom,
		CategorySkirt,
		CategoryDress,
		CategoryRomper,
		CategoryJacket,
	}
}

// Valid reports whether c is a member of the closed category enumeration.
func (c Category) Valid() bool {
	switch c {
	case CategoryTop, CategoryBottom, CategorySkirt, CategoryDress, CategoryRomper, CategoryJacket:
		return true
	default:
		return false
	}
}

// ParseCategory normalizes and validates a category string.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// ColorGroup is the closed enumeration of coarse color buckets.
type ColorGroup string

// Color groups derived from an item's dominant color.
const (
	ColorWarm    ColorGroup = "warm"
	ColorCool    ColorGroup = "cool"
	ColorNeutral ColorGroup = "neutral"
)

// ColorGroups lists all valid color groups in a fixed order.
func ColorGroups() []ColorGroup {
	return []ColorGroup{ColorWarm, ColorCool, ColorNeutral}
}

// Valid reports whether g is a member of the closed color-group enumeration.
func (g ColorGroup) Valid() bool {
	switch g {
	case ColorWarm, ColorCool, ColorNeutral:
		return true
	default:
		return false
	}
}

// ParseColorGroup normalizes and validates a color-group string.
func ParseColorGroup(s string) (ColorGroup, error) {
	g := ColorGroup(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColorGroup, s)
	}
	return g, nil
}

// Item is one classified wardrobe piece. Items are immutable once created;
// the repository owns them until the wardrobe is cleared.
type Item struct {
	ID         string     // unique, stable identifier
	Category   Category   // closed enumeration
	ColorGroup ColorGroup // warm / cool / neutral
	Embedding  []float64  // fixed-length style embedding, same length for all items
}

// Validate checks the item against the input contract.
func (it Item) Validate() error {
	if strings.TrimSpace(it.ID) == "" {
		return fmt.Errorf("%w: empty item id", ErrInvalidItem)
	}
	if !it.Category.Valid() {
		return fmt.Errorf("%w: item %s has category %q", ErrInvalidCategory, it.ID, it.Category)
	}
	if !it.ColorGroup.Valid() {
		return fmt.Errorf("%w: item %s has color group %q", ErrInvalidColorGroup, it.ID, it.ColorGroup)
	}
	return nil
}

// Clone returns a deep copy so repository snapshots stay immutable.
func (it Item) Clone() Item {
	cp := it
	cp.Embedding = append([]float64(nil), it.Embedding...)
	return cp
}
