// Package skeleton declares the fixed outfit skeletons and the
// category-compatibility rules derived from them.
//
// A skeleton is a template of required and optional category slots. The set
// of skeletons is closed and defined once; lookups are pure and never
// mutate package state.
package skeleton

import (
	"fmt"

	"github.com/okian/capsule/internal/domain/model"
)

// Slot is one category position in a skeleton.
type Slot struct {
	Category model.Category
	Optional bool
}

// Skeleton is an ordered set of required slots plus optional slots.
type Skeleton struct {
	Name  string
	Slots []Slot
}

// Required returns the categories of the skeleton's required slots in order.
func (s Skeleton) Required() []model.Category {
	var out []model.Category
	for _, slot := range s.Slots {
		if !slot.Optional {
			out = append(out, slot.Category)
		}
	}
	return out
}

// Optional returns the categories of the skeleton's optional slots in order.
func (s Skeleton) Optional() []model.Category {
	var out []model.Category
	for _, slot := range s.Slots {
		if slot.Optional {
			out = append(out, slot.Category)
		}
	}
	return out
}

// all is the closed skeleton set. Order matters: the combinator enumerates
// skeletons in this order and the ranker uses the index as a tie-break.
var all = []Skeleton{
	{
		Name: "top+bottom",
		Slots: []Slot{
			{Category: model.CategoryTop},
			{Category: model.CategoryBottom},
			{Category: model.CategoryJacket, Optional: true},
		},
	},
	{
		Name: "top+skirt",
		Slots: []Slot{
			{Category: model.CategoryTop},
			{Category: model.CategorySkirt},
			{Category: model.CategoryJacket, Optional: true},
		},
	},
	{
		Name: "dress",
		Slots: []Slot{
			{Category: model.CategoryDress},
			{Category: model.CategoryJacket, Optional: true},
		},
	},
	{
		Name: "romper",
		Slots: []Slot{
			{Category: model.CategoryRomper},
			{Category: model.CategoryJacket, Optional: true},
		},
	},
}

// All returns the closed skeleton set in enumeration order. The returned
// slice is a copy; callers cannot alter the rule set.
func All() []Skeleton {
	out := make([]Skeleton, len(all))
	for i, s := range all {
		cp := s
		cp.Slots = append([]Slot(nil), s.Slots...)
		out[i] = cp
	}
	return out
}

// ForCategory returns every skeleton in which the category can fill a
// required or optional slot. An unknown category is a caller contract
// violation and yields model.ErrInvalidCategory.
func ForCategory(c model.Category) ([]Skeleton, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidCategory, c)
	}
	var out []Skeleton
	for _, s := range all {
		for _, slot := range s.Slots {
			if slot.Category == c {
				cp := s
				cp.Slots = append([]Slot(nil), s.Slots...)
				out = append(out, cp)
				break
			}
		}
	}
	return out, nil
}
