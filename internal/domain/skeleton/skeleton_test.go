package skeleton_test

import (
	"errors"
	"testing"

	"github.com/okian/capsule/internal/domain/model"
	"github.com/okian/capsule/internal/domain/skeleton"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAll(t *testing.T) {
	Convey("Given the closed skeleton set", t, func() {
		skeletons := skeleton.All()

		Convey("It contains the four fixed skeletons in order", func() {
			So(len(skeletons), ShouldEqual, 4)
			So(skeletons[0].Name, ShouldEqual, "top+bottom")
			So(skeletons[1].Name, ShouldEqual, "top+skirt")
			So(skeletons[2].Name, ShouldEqual, "dress")
			So(skeletons[3].Name, ShouldEqual, "romper")
		})

		Convey("Every skeleton has an optional jacket slot", func() {
			for _, sk := range skeletons {
				So(sk.Optional(), ShouldResemble, []model.Category{model.CategoryJacket})
			}
		})

		Convey("Required slots match the templates", func() {
			So(skeletons[0].Required(), ShouldResemble, []model.Category{model.CategoryTop, model.CategoryBottom})
			So(skeletons[1].Required(), ShouldResemble, []model.Category{model.CategoryTop, model.CategorySkirt})
			So(skeletons[2].Required(), ShouldResemble, []model.Category{model.CategoryDress})
			So(skeletons[3].Required(), ShouldResemble, []model.Category{model.CategoryRomper})
		})

		Convey("Mutating the returned slice does not alter the rule set", func() {
			skeletons[0].Slots[0].Category = model.CategoryDress
			So(skeleton.All()[0].Slots[0].Category, ShouldEqual, model.CategoryTop)
		})
	})
}

func TestForCategory(t *testing.T) {
	Convey("Given category lookups", t, func() {
		Convey("A top fits two skeletons", func() {
			got, err := skeleton.ForCategory(model.CategoryTop)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 2)
			So(got[0].Name, ShouldEqual, "top+bottom")
			So(got[1].Name, ShouldEqual, "top+skirt")
		})

		Convey("A jacket fits every skeleton", func() {
			got, err := skeleton.ForCategory(model.CategoryJacket)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 4)
		})

		Convey("A dress fits only the dress skeleton", func() {
			got, err := skeleton.ForCategory(model.CategoryDress)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 1)
			So(got[0].Name, ShouldEqual, "dress")
		})

		Convey("An unknown category is a contract violation", func() {
			_, err := skeleton.ForCategory("hat")
			So(errors.Is(err, model.ErrInvalidCategory), ShouldBeTrue)
		})
	})
}
