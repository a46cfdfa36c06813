package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with nil histogram buckets", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording wardrobe metrics", func() {
			Convey("Then it should record registered items", func() {
				So(func() {
					RecordItemRegistered()
					RecordItemRegistered()
				}, ShouldNotPanic)
			})

			Convey("And it should update wardrobe size", func() {
				So(func() {
					UpdateWardrobeSize(10)
					UpdateWardrobeSize(0)
				}, ShouldNotPanic)
			})

			Convey("And it should record wardrobe clears", func() {
				So(func() {
					RecordWardrobeClear()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording generation metrics", func() {
			Convey("Then it should record enumerated candidates", func() {
				So(func() {
					RecordCandidatesEnumerated(100)
					RecordCandidatesEnumerated(0)
				}, ShouldNotPanic)
			})

			Convey("And it should record cap hits", func() {
				So(func() {
					RecordCandidatesCapped()
				}, ShouldNotPanic)
			})

			Convey("And it should record generation duration", func() {
				So(func() {
					RecordGenerationDuration(5.0)
					RecordGenerationDuration(5000.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record scoring latency and errors", func() {
				So(func() {
					RecordScoringLatency(1.0)
					RecordScoringError()
				}, ShouldNotPanic)
			})

			Convey("And it should record calendar results", func() {
				So(func() {
					RecordCalendarGenerated()
					UpdateCalendarFillRatio(0.75)
					UpdateCalendarFillRatio(1.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording pipeline metrics", func() {
			So(func() {
				UpdateQueueSize(100)
				UpdateQueueCapacity(4096)
				UpdateWorkerCount(8)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/capsule", "GET", "200")
				RecordHTTPRequestDuration("/capsule", "GET", "200", 12.0)
				RecordHTTPRequest("", "", "500")
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			for i := 0; i < 10; i++ {
				go func() {
					for j := 0; j < 100; j++ {
						RecordItemRegistered()
						UpdateQueueSize(j)
						RecordScoringLatency(float64(j))
						RecordHTTPRequest("/items", "POST", "201")
					}
					done <- true
				}()
			}

			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global registry", t, func() {
		Convey("It should expose a gatherable registry", func() {
			registry := GetRegistry()
			So(registry, ShouldNotBeNil)

			families, err := registry.Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeNil)
		})
	})
}
