package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/capsule/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given the configuration loader", t, func() {
		ctx := context.Background()

		Convey("With no file and no environment it yields the defaults", func() {
			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.CalendarDays, ShouldEqual, 30)
			So(cfg.MinItems, ShouldEqual, 10)
			So(cfg.ColorWeight, ShouldEqual, 0.5)
			So(cfg.StyleWeight, ShouldEqual, 0.5)
			So(cfg.CandidateCap, ShouldEqual, 100_000)
			So(cfg.QueueSize, ShouldEqual, 4096)
			So(cfg.ClassifierEndpoint, ShouldBeBlank)
		})

		Convey("Environment variables override defaults", func() {
			t.Setenv("CAPSULE_ADDR", ":7070")
			t.Setenv("CAPSULE_CALENDAR_DAYS", "14")
			t.Setenv("CAPSULE_COLOR_WEIGHT", "0.7")

			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.CalendarDays, ShouldEqual, 14)
			So(cfg.ColorWeight, ShouldEqual, 0.7)
			// Untouched keys keep their defaults.
			So(cfg.StyleWeight, ShouldEqual, 0.5)
		})

		Convey("A YAML file layers between defaults and environment", func() {
			path := filepath.Join(t.TempDir(), "capsule.yaml")
			yaml := "addr: \":6060\"\ncalendar_days: 21\nmin_items: 5\n"
			So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)

			t.Setenv("CAPSULE_CONFIG", path)
			t.Setenv("CAPSULE_CALENDAR_DAYS", "28")

			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.MinItems, ShouldEqual, 5)
			// Environment wins over the file.
			So(cfg.CalendarDays, ShouldEqual, 28)
		})

		Convey("A missing config file fails loading", func() {
			t.Setenv("CAPSULE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
			_, err := config.Load(ctx)
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})

		Convey("Invalid values fail validation", func() {
			Convey("Non-positive calendar length", func() {
				t.Setenv("CAPSULE_CALENDAR_DAYS", "0")
				_, err := config.Load(ctx)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})

			Convey("Negative weight", func() {
				t.Setenv("CAPSULE_COLOR_WEIGHT", "-0.2")
				_, err := config.Load(ctx)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})

			Convey("Both weights zero", func() {
				t.Setenv("CAPSULE_COLOR_WEIGHT", "0")
				t.Setenv("CAPSULE_STYLE_WEIGHT", "0")
				_, err := config.Load(ctx)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})

			Convey("Non-positive candidate cap", func() {
				t.Setenv("CAPSULE_CANDIDATE_CAP", "0")
				_, err := config.Load(ctx)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
