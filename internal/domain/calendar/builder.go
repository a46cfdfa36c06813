// Package calendar selects a diverse, non-repeating sequence of outfits
// from ranked candidates into a fixed-length capsule calendar.
package calendar

import (
	"context"
	"fmt"

	"github.com/okian/capsule/internal/domain/model"
)

// DefaultDays is the default calendar length.
const DefaultDays = 30

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithDays sets the number of day-slots in the calendar.
func WithDays(days int) Option {
	return func(b *Builder) {
		if days > 0 {
			b.days = days
		}
	}
}

// WithMaxWearsPerItem overrides the per-item reuse quota. When zero (the
// default) the quota is derived as ceil(days / total items available),
// which greedily minimizes repeats.
func WithMaxWearsPerItem(maxWears int) Option {
	return func(b *Builder) {
		if maxWears > 0 {
			b.maxWears = maxWears
		}
	}
}

// Builder fills day-slots from ranked candidates. It holds no state across
// calls: each Build is a pure function of (ranked candidates, configuration,
// wardrobe size).
type Builder struct {
	days     int
	maxWears int // 0 = derive from days and wardrobe size
}

// NewBuilder creates a calendar builder with configuration options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		days: DefaultDays,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Days returns the configured calendar length.
func (b *Builder) Days() int { return b.days }

// Build assigns candidates to day-slots greedily in ranked order.
//
// Constraints enforced:
//   - no two days wear exactly the same set of items (outfit-level dedupe)
//   - no single item is worn on more than quota days, where quota is
//     ceil(days / totalItems) unless overridden
//
// When ranked candidates run out before every slot is filled, the remaining
// days are left explicitly empty and the calendar is returned together with
// ErrInsufficientWardrobe; callers that can live with gaps keep the result.
func (b *Builder) Build(ctx context.Context, ranked []model.Candidate, totalItems int) (model.Calendar, error) {
	select {
	case <-ctx.Done():
		return model.Calendar{}, fmt.Errorf("calendar build cancelled: %w", ctx.Err())
	default:
	}

	quota := b.maxWears
	if quota == 0 {
		quota = wearQuota(b.days, totalItems)
	}

	cal := model.Calendar{Days: make([]model.DayEntry, b.days)}
	seenOutfits := make(map[string]struct{}, len(ranked))
	wearCounts := make(map[string]int)

	day := 0
	for i := range ranked {
		if day >= b.days {
			break
		}
		cand := ranked[i]
		if !b.admissible(cand, seenOutfits, wearCounts, quota) {
			continue
		}
		seenOutfits[cand.Key()] = struct{}{}
		for _, id := range cand.ItemIDs() {
			wearCounts[id]++
		}
		cal.Days[day] = model.DayEntry{Day: day + 1, Outfit: &ranked[i]}
		day++
	}

	// Mark the remaining days explicitly empty.
	for ; day < b.days; day++ {
		cal.Days[day] = model.DayEntry{Day: day + 1}
	}

	if filled := cal.Filled(); filled < b.days {
		return cal, fmt.Errorf("%w: filled %d of %d days from %d candidates",
			ErrInsufficientWardrobe, filled, b.days, len(ranked))
	}
	return cal, nil
}

// admissible checks the dedupe and quota constraints for one candidate.
func (b *Builder) admissible(cand model.Candidate, seen map[string]struct{}, wearCounts map[string]int, quota int) bool {
	if _, dup := seen[cand.Key()]; dup {
		return false
	}
	for _, id := range cand.ItemIDs() {
		if wearCounts[id] >= quota {
			return false
		}
	}
	return true
}

// wearQuota returns ceil(days / totalItems), at least 1.
func wearQuota(days, totalItems int) int {
	if totalItems <= 0 {
		return 1
	}
	q := (days + totalItems - 1) / totalItems
	if q < 1 {
		q = 1
	}
	return q
}
