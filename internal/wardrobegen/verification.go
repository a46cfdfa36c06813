package wardrobegen

import (
	"fmt"
	"sort"
	"strings"
)

// CapsuleResult mirrors the service's capsule response wire format.
type CapsuleResult struct {
	Days    []DayResult `json:"days"`
	Total   int         `json:"total"`
	Filled  int         `json:"filled"`
	Warning string      `json:"warning"`
}

// DayResult is one calendar day as returned by the service.
type DayResult struct {
	Day    int           `json:"day"`
	Outfit *OutfitResult `json:"outfit"`
}

// OutfitResult is one assigned outfit as returned by the service.
type OutfitResult struct {
	Skeleton       string   `json:"skeleton"`
	ItemIDs        []string `json:"item_ids"`
	ColorScore     float64  `json:"color_score"`
	StyleScore     float64  `json:"style_score"`
	CompositeScore float64  `json:"composite_score"`
}

// VerifyCapsule checks the engine's externally observable invariants on a
// calendar: day count and numbering, no duplicate items inside an outfit,
// no two days wearing the same outfit, and scores within bounds.
func VerifyCapsule(capsule *CapsuleResult, wantDays int) error {
	if capsule.Total != wantDays || len(capsule.Days) != wantDays {
		return fmt.Errorf("expected %d days, got total=%d len=%d", wantDays, capsule.Total, len(capsule.Days))
	}

	seenOutfits := make(map[string]int)
	for i, day := range capsule.Days {
		if day.Day != i+1 {
			return fmt.Errorf("day %d numbered %d", i+1, day.Day)
		}
		if day.Outfit == nil {
			continue
		}

		seenItems := make(map[string]struct{})
		for _, id := range day.Outfit.ItemIDs {
			if _, dup := seenItems[id]; dup {
				return fmt.Errorf("day %d wears item %s twice", day.Day, id)
			}
			seenItems[id] = struct{}{}
		}

		for _, score := range []float64{day.Outfit.ColorScore, day.Outfit.StyleScore} {
			if score < 0 || score > 1 {
				return fmt.Errorf("day %d has score %g outside [0,1]", day.Day, score)
			}
		}

		key := outfitKey(day.Outfit.ItemIDs)
		if prev, dup := seenOutfits[key]; dup {
			return fmt.Errorf("day %d repeats the outfit of day %d", day.Day, prev)
		}
		seenOutfits[key] = day.Day
	}

	return nil
}

func outfitKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}
