package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/capsule/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStyleScorerPair(t *testing.T) {
	Convey("Given a style scorer", t, func() {
		scorer := scoring.NewStyleScorer()

		Convey("Identical embeddings score 1", func() {
			got, err := scorer.Pair([]float64{1, 0, 2}, []float64{1, 0, 2})
			So(err, ShouldBeNil)
			So(got, ShouldAlmostEqual, 1.0, scoreTolerance)
		})

		Convey("Orthogonal embeddings score the midpoint", func() {
			got, err := scorer.Pair([]float64{1, 0}, []float64{0, 1})
			So(err, ShouldBeNil)
			So(got, ShouldAlmostEqual, 0.5, scoreTolerance)
		})

		Convey("Opposite embeddings score 0", func() {
			got, err := scorer.Pair([]float64{1, 0}, []float64{-1, 0})
			So(err, ShouldBeNil)
			So(got, ShouldAlmostEqual, 0.0, scoreTolerance)
		})

		Convey("A zero vector falls back to the midpoint", func() {
			got, err := scorer.Pair([]float64{0, 0}, []float64{1, 2})
			So(err, ShouldBeNil)
			So(got, ShouldAlmostEqual, 0.5, scoreTolerance)
		})

		Convey("Pair is symmetric", func() {
			a := []float64{0.3, -0.2, 0.9}
			b := []float64{-0.1, 0.7, 0.4}
			ab, err := scorer.Pair(a, b)
			So(err, ShouldBeNil)
			ba, err := scorer.Pair(b, a)
			So(err, ShouldBeNil)
			So(ab, ShouldAlmostEqual, ba, scoreTolerance)
		})

		Convey("Mismatched lengths are rejected", func() {
			_, err := scorer.Pair([]float64{1, 2}, []float64{1, 2, 3})
			So(errors.Is(err, scoring.ErrDimensionMismatch), ShouldBeTrue)
		})
	})
}

func TestStyleScorerAggregate(t *testing.T) {
	Convey("Given a style scorer", t, func() {
		scorer := scoring.NewStyleScorer()

		Convey("Three embeddings aggregate to the mean of all pairs", func() {
			a := []float64{1, 0}
			b := []float64{1, 0}
			c := []float64{0, 1}
			// a-b: 1.0, a-c: 0.5, b-c: 0.5.
			got, err := scorer.Aggregate([][]float64{a, b, c})
			So(err, ShouldBeNil)
			So(got, ShouldAlmostEqual, 2.0/3.0, scoreTolerance)
		})

		Convey("Aggregate is order-independent", func() {
			a := []float64{0.2, 0.8}
			b := []float64{-0.5, 0.1}
			x, err := scorer.Aggregate([][]float64{a, b})
			So(err, ShouldBeNil)
			y, err := scorer.Aggregate([][]float64{b, a})
			So(err, ShouldBeNil)
			So(x, ShouldAlmostEqual, y, scoreTolerance)
		})

		Convey("A single embedding scores the midpoint", func() {
			got, err := scorer.Aggregate([][]float64{{1, 2}})
			So(err, ShouldBeNil)
			So(got, ShouldAlmostEqual, 0.5, scoreTolerance)
		})

		Convey("A dimension mismatch inside the outfit surfaces", func() {
			_, err := scorer.Aggregate([][]float64{{1, 2}, {1, 2, 3}})
			So(errors.Is(err, scoring.ErrDimensionMismatch), ShouldBeTrue)
		})
	})
}
