package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with a custom registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("testns"),
				WithSubsystem("testsub"),
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
		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/api/profiles", "GET", "200")
				RecordHTTPRequest("/api/login", "POST", "401")
				RecordHTTPRequestDuration("/api/profiles", "GET", "200", 5.0)
			}, ShouldNotPanic)
		})

		Convey("When recording key-value store metrics", func() {
			So(func() {
				RecordKVOperation("get", "hit", 1.5)
				RecordKVOperation("get", "miss", 0.5)
				RecordKVOperation("put", "ok", 2.0)
				RecordKVOperation("delete", "error", 10.0)
			}, ShouldNotPanic)
		})

		Convey("When recording session metrics", func() {
			So(func() {
				RecordSessionCreated()
				RecordSessionDestroyed()
			}, ShouldNotPanic)
		})

		Convey("When recording profile metrics", func() {
			So(func() {
				RecordProfileMutation("create")
				RecordProfileMutation("update")
				RecordProfileMutation("delete")
				UpdateProfileCount(42)
				UpdateProfileCount(0)
				RecordBackgroundUpdate()
			}, ShouldNotPanic)
		})

		Convey("When recording system metrics", func() {
			So(func() {
				UpdateSystemMemoryUsage(1024 * 1024 * 100)
				UpdateSystemGoroutineCount(100)
			}, ShouldNotPanic)
		})

		Convey("When using empty label values", func() {
			So(func() {
				RecordHTTPRequest("", "", "200")
				RecordKVOperation("", "", 0.0)
				RecordProfileMutation("")
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsRegistry(t *testing.T) {
	Convey("Given the service registry", t, func() {
		Convey("Then it exposes the registered collectors", func() {
			RecordHTTPRequest("/healthz", "GET", "200")

			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["profiles_site_http_requests_total"], ShouldBeTrue)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		done := make(chan bool, 10)

		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					RecordHTTPRequest("/api/profiles", "GET", "200")
					RecordKVOperation("get", "hit", float64(j))
					UpdateProfileCount(j)
				}
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}

		Convey("Then concurrent access completes without panics", func() {
			So(true, ShouldBeTrue)
		})
	})
}
