package model

import (
	"sort"
	"strings"
)

// Candidate is one fully-slotted outfit produced by the combinator.
// Candidates are transient: built during a generation pass, scored once,
// never mutated after scoring.
type Candidate struct {
	Skeleton      string // skeleton name, e.g. "top+bottom"
	SkeletonIndex int    // position in the fixed skeleton enumeration, for tie-breaks
	Items         []Item // one item per filled slot, all distinct

	ColorScore     float64
	StyleScore     float64
	CompositeScore float64
}

// ItemIDs returns the candidate's item identifiers in slot order.
func (c Candidate) ItemIDs() []string {
	ids := make([]string, len(c.Items))
	for i, it := range c.Items {
		ids[i] = it.ID
	}
	return ids
}

// Key returns an order-independent signature of the candidate's items.
// Two candidates with the same key wear exactly the same pieces.
func (c Candidate) Key() string {
	ids := c.ItemIDs()
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

// TieBreakKey returns the slot-ordered item identifiers joined, used as the
// final deterministic ordering criterion after composite score and skeleton.
func (c Candidate) TieBreakKey() string {
	return strings.Join(c.ItemIDs(), "|")
}

// DayEntry binds one calendar day to an outfit, or marks the day explicitly
// empty when the wardrobe could not fill it.
type DayEntry struct {
	Day    int        // 1-based day number
	Outfit *Candidate // nil for an explicitly empty day
}

// Empty reports whether the day has no outfit assigned.
func (d DayEntry) Empty() bool { return d.Outfit == nil }

// Calendar is the ordered result of one generation request: exactly one
// entry per day. Superseded, never mutated, by the next generation.
type Calendar struct {
	Days []DayEntry
}

// Filled returns the number of days with an outfit assigned.
func (c Calendar) Filled() int {
	n := 0
	for _, d := range c.Days {
		if !d.Empty() {
			n++
		}
	}
	return n
}
