// Package combinator enumerates valid outfit candidates from a wardrobe
// snapshot.
//
// Enumeration is deterministic: skeletons are visited in their fixed order,
// category pools keep the snapshot's insertion order, and for every base
// combination the optional-slot-omitted variant is emitted before the
// variants that fill the slot. Growth is bounded by
// (items per category)^(slots); correctness is preferred over efficiency and
// the per-skeleton cap keeps the worst case bounded. Under the cap the first
// K candidates in enumeration order are kept, so repeated runs on identical
// input produce identical candidate sets.
package combinator

import (
	"context"
	"fmt"

	"github.com/okian/capsule/internal/domain/model"
	"github.com/okian/capsule/internal/domain/skeleton"
	"github.com/okian/capsule/pkg/metrics"
)

// DefaultMaxPerSkeleton bounds candidates emitted per skeleton.
const DefaultMaxPerSkeleton = 100_000

// Option applies a configuration option to the Combinator.
type Option func(*Combinator)

// WithMaxPerSkeleton caps the number of candidates emitted per skeleton.
func WithMaxPerSkeleton(maxCandidates int) Option {
	return func(c *Combinator) {
		if maxCandidates > 0 {
			c.maxPerSkeleton = maxCandidates
		}
	}
}

// Combinator produces every valid outfit candidate for every skeleton.
type Combinator struct {
	maxPerSkeleton int
}

// New creates a combinator with configuration options.
func New(opts ...Option) *Combinator {
	c := &Combinator{
		maxPerSkeleton: DefaultMaxPerSkeleton,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Enumerate returns all candidates for the given wardrobe snapshot.
// A skeleton whose required category has no items yields zero candidates;
// that is a valid empty result, not an error. Item attribute violations
// surface as model sentinel errors.
func (c *Combinator) Enumerate(ctx context.Context, items []model.Item) ([]model.Candidate, error) {
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
	}

	pools := groupByCategory(items)

	var out []model.Candidate
	for idx, sk := range skeleton.All() {
		emitted, err := c.enumerateSkeleton(ctx, idx, sk, pools, &out)
		if err != nil {
			return nil, err
		}
		if emitted >= c.maxPerSkeleton {
			metrics.RecordCandidatesCapped()
		}
	}

	metrics.RecordCandidatesEnumerated(len(out))
	return out, nil
}

// enumerateSkeleton walks the cartesian product of the skeleton's required
// category pools with an odometer, then emits optional-slot variants.
// Returns the number of candidates emitted for this skeleton.
func (c *Combinator) enumerateSkeleton(
	ctx context.Context,
	skeletonIndex int,
	sk skeleton.Skeleton,
	pools map[model.Category][]model.Item,
	out *[]model.Candidate,
) (int, error) {
	required := sk.Required()
	requiredPools := make([][]model.Item, len(required))
	for i, cat := range required {
		pool := pools[cat]
		if len(pool) == 0 {
			// Required category unavailable: empty result for this skeleton.
			return 0, nil
		}
		requiredPools[i] = pool
	}

	var optionalPools [][]model.Item
	for _, cat := range sk.Optional() {
		optionalPools = append(optionalPools, pools[cat])
	}

	emitted := 0
	odometer := make([]int, len(requiredPools))
	for {
		select {
		case <-ctx.Done():
			return emitted, fmt.Errorf("enumeration cancelled: %w", ctx.Err())
		default:
		}

		base := make([]model.Item, len(requiredPools))
		for i, pos := range odometer {
			base[i] = requiredPools[i][pos]
		}

		if distinct(base) {
			// Variant with every optional slot omitted comes first.
			if full := c.emit(skeletonIndex, sk, base, out, &emitted); full {
				return emitted, nil
			}
			// Then one variant per item that can fill each optional slot.
			for _, pool := range optionalPools {
				for _, opt := range pool {
					withOpt := append(append([]model.Item(nil), base...), opt)
					if !distinct(withOpt) {
						continue
					}
					if full := c.emit(skeletonIndex, sk, withOpt, out, &emitted); full {
						return emitted, nil
					}
				}
			}
		}

		if !advance(odometer, requiredPools) {
			return emitted, nil
		}
	}
}

// emit appends a candidate and reports whether the per-skeleton cap is hit.
func (c *Combinator) emit(skeletonIndex int, sk skeleton.Skeleton, items []model.Item, out *[]model.Candidate, emitted *int) bool {
	*out = append(*out, model.Candidate{
		Skeleton:      sk.Name,
		SkeletonIndex: skeletonIndex,
		Items:         append([]model.Item(nil), items...),
	})
	*emitted++
	return *emitted >= c.maxPerSkeleton
}

// advance increments the odometer; returns false when it wraps.
func advance(odometer []int, pools [][]model.Item) bool {
	for i := len(odometer) - 1; i >= 0; i-- {
		odometer[i]++
		if odometer[i] < len(pools[i]) {
			return true
		}
		odometer[i] = 0
	}
	return false
}

// distinct reports whether no item identifier appears twice. Relevant when
// an optional slot could coincidentally carry another slot's item.
func distinct(items []model.Item) bool {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			return false
		}
		seen[it.ID] = struct{}{}
	}
	return true
}

// groupByCategory buckets items per category, preserving snapshot order.
func groupByCategory(items []model.Item) map[model.Category][]model.Item {
	pools := make(map[model.Category][]model.Item)
	for _, it := range items {
		pools[it.Category] = append(pools[it.Category], it)
	}
	return pools
}
