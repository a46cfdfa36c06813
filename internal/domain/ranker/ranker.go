// Package ranker attaches scores to outfit candidates and orders them.
package ranker

import (
	"context"
	"sort"

	"github.com/okian/capsule/internal/domain/model"
	"github.com/okian/capsule/internal/domain/scoring"
)

// Ranker scores candidates and sorts them descending by composite score.
type Ranker struct {
	scorer scoring.Scorer
}

// New creates a ranker backed by the given scorer.
func New(scorer scoring.Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank scores every candidate serially and returns them sorted. The input
// slice is not modified; scoring a candidate produces a new value, never a
// mutation of an already-scored one.
func (r *Ranker) Rank(ctx context.Context, candidates []model.Candidate) ([]model.Candidate, error) {
	ranked := make([]model.Candidate, len(candidates))
	for i, cand := range candidates {
		res, err := r.scorer.Score(ctx, scoring.Input{Items: cand.Items})
		if err != nil {
			return nil, err
		}
		cand.ColorScore = res.Color
		cand.StyleScore = res.Style
		cand.CompositeScore = res.Composite
		ranked[i] = cand
	}
	Sort(ranked)
	return ranked, nil
}

// Sort orders already-scored candidates in place: composite score
// descending, then skeleton enumeration order, then slot-ordered item
// identifiers. The ordering is total, so repeated runs on identical input
// produce identical results.
func Sort(candidates []model.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		if a.SkeletonIndex != b.SkeletonIndex {
			return a.SkeletonIndex < b.SkeletonIndex
		}
		return a.TieBreakKey() < b.TieBreakKey()
	})
}
