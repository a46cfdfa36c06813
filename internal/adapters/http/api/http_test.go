package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/okian/capsule/internal/adapters/http/api"
	service "github.com/okian/capsule/internal/app"
	"github.com/okian/capsule/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	_ = logger.SetLevelString("error")
	os.Exit(m.Run())
}

// newTestServer stands up the full HTTP surface over a real service.
func newTestServer(minItems int) (*httptest.Server, *service.Service) {
	svc := service.New(service.WithDays(2), service.WithWorkerCount(2))
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc, minItems).Register(context.Background(), mux)
	return httptest.NewServer(mux), svc
}

func postJSON(t *httptest.Server, path string, body any) (*http.Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return http.Post(t.URL+path, "application/json", bytes.NewReader(buf))
}

func decodeBody(resp *http.Response, v any) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}

func TestItemsEndpoint(t *testing.T) {
	Convey("Given the items endpoint", t, func() {
		srv, svc := newTestServer(0)
		defer srv.Close()
		defer svc.Stop()

		validItem := map[string]any{
			"id":          "top-1",
			"category":    "top",
			"color_group": "warm",
			"embedding":   []float64{0.1, 0.2},
		}

		Convey("POST registers a classified item", func() {
			resp, err := postJSON(srv, "/items", validItem)
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)

			var got map[string]any
			So(decodeBody(resp, &got), ShouldBeNil)
			So(got["id"], ShouldEqual, "top-1")
			So(got["category"], ShouldEqual, "top")
			So(got, ShouldNotContainKey, "embedding")
		})

		Convey("POST without an id mints one", func() {
			anon := map[string]any{
				"category":    "dress",
				"color_group": "cool",
				"embedding":   []float64{1},
			}
			resp, err := postJSON(srv, "/items", anon)
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)

			var got map[string]any
			So(decodeBody(resp, &got), ShouldBeNil)
			So(got["id"], ShouldNotBeBlank)
		})

		Convey("POST with an unknown category is rejected", func() {
			bad := map[string]any{
				"category":    "hat",
				"color_group": "warm",
				"embedding":   []float64{1},
			}
			resp, err := postJSON(srv, "/items", bad)
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)

			var got map[string]any
			So(decodeBody(resp, &got), ShouldBeNil)
			So(got["code"], ShouldEqual, "invalid_category")
		})

		Convey("POST with an unknown color group is rejected", func() {
			bad := map[string]any{
				"category":    "top",
				"color_group": "pastel",
				"embedding":   []float64{1},
			}
			resp, err := postJSON(srv, "/items", bad)
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)

			var got map[string]any
			So(decodeBody(resp, &got), ShouldBeNil)
			So(got["code"], ShouldEqual, "invalid_color_group")
		})

		Convey("POST with a duplicate id conflicts", func() {
			resp, err := postJSON(srv, "/items", validItem)
			So(err, ShouldBeNil)
			resp.Body.Close()

			resp, err = postJSON(srv, "/items", validItem)
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusConflict)

			var got map[string]any
			So(decodeBody(resp, &got), ShouldBeNil)
			So(got["code"], ShouldEqual, "duplicate_item")
		})

		Convey("GET on an empty wardrobe returns an empty list", func() {
			resp, err := http.Get(srv.URL + "/items")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var got []map[string]any
			So(decodeBody(resp, &got), ShouldBeNil)
			So(got, ShouldBeEmpty)
		})

		Convey("DELETE clears the wardrobe", func() {
			resp, err := postJSON(srv, "/items", validItem)
			So(err, ShouldBeNil)
			resp.Body.Close()

			req, err := http.NewRequest(http.MethodDelete, srv.URL+"/items", nil)
			So(err, ShouldBeNil)
			resp, err = http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNoContent)
			So(svc.Count(context.Background()), ShouldEqual, 0)
		})

		Convey("Classify without a configured classifier is unavailable", func() {
			resp, err := postJSON(srv, "/items/classify", map[string]any{"image_ref": "s3://x.jpg"})
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusServiceUnavailable)

			var got map[string]any
			So(decodeBody(resp, &got), ShouldBeNil)
			So(got["code"], ShouldEqual, "no_classifier")
			So(got["message"], ShouldContainSubstring, api.ErrUnavailable.Error())
		})
	})
}

func TestCapsuleEndpoint(t *testing.T) {
	Convey("Given the capsule endpoint", t, func() {
		srv, svc := newTestServer(2)
		defer srv.Close()
		defer svc.Stop()

		seed := func() {
			for i := 0; i < 2; i++ {
				for _, cat := range []string{"top", "bottom"} {
					resp, err := postJSON(srv, "/items", map[string]any{
						"id":          fmt.Sprintf("%s-%d", cat, i),
						"category":    cat,
						"color_group": "neutral",
						"embedding":   []float64{1, float64(i)},
					})
					So(err, ShouldBeNil)
					resp.Body.Close()
				}
			}
		}

		Convey("Too few items is unprocessable", func() {
			resp, err := http.Get(srv.URL + "/capsule")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusUnprocessableEntity)

			var got map[string]any
			So(decodeBody(resp, &got), ShouldBeNil)
			So(got["code"], ShouldEqual, "insufficient_items")
		})

		Convey("A seeded wardrobe yields a full calendar", func() {
			seed()
			resp, err := http.Get(srv.URL + "/capsule?days=2")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var got struct {
				Days []struct {
					Day    int `json:"day"`
					Outfit *struct {
						Skeleton       string   `json:"skeleton"`
						ItemIDs        []string `json:"item_ids"`
						CompositeScore float64  `json:"composite_score"`
					} `json:"outfit"`
				} `json:"days"`
				Total   int    `json:"total"`
				Filled  int    `json:"filled"`
				Warning string `json:"warning"`
			}
			So(decodeBody(resp, &got), ShouldBeNil)
			So(got.Total, ShouldEqual, 2)
			So(got.Filled, ShouldEqual, 2)
			So(got.Warning, ShouldBeBlank)
			So(got.Days[0].Day, ShouldEqual, 1)
			So(got.Days[0].Outfit, ShouldNotBeNil)
			So(got.Days[0].Outfit.Skeleton, ShouldEqual, "top+bottom")
			So(got.Days[0].Outfit.CompositeScore, ShouldBeBetweenOrEqual, 0, 1)
		})

		Convey("An oversized wardrobe request under-fills with a warning", func() {
			seed()
			resp, err := http.Get(srv.URL + "/capsule?days=30")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var got struct {
				Days []struct {
					Day    int             `json:"day"`
					Outfit json.RawMessage `json:"outfit"`
				} `json:"days"`
				Total   int    `json:"total"`
				Filled  int    `json:"filled"`
				Warning string `json:"warning"`
			}
			So(decodeBody(resp, &got), ShouldBeNil)
			So(got.Total, ShouldEqual, 30)
			So(got.Filled, ShouldBeLessThan, 30)
			So(got.Warning, ShouldNotBeBlank)
			So(string(got.Days[29].Outfit), ShouldEqual, "null")
		})

		Convey("A malformed days parameter is rejected", func() {
			for _, q := range []string{"days=0", "days=-3", "days=abc", "days=9999"} {
				resp, err := http.Get(srv.URL + "/capsule?" + q)
				So(err, ShouldBeNil)
				resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			}
		})
	})
}

func TestOpsEndpoints(t *testing.T) {
	Convey("Given the operational endpoints", t, func() {
		srv, svc := newTestServer(0)
		defer srv.Close()
		defer svc.Stop()

		Convey("The health endpoint exposes metrics", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("The stats endpoint reports the engine snapshot", func() {
			resp, err := postJSON(srv, "/items", map[string]any{
				"id":          "top-1",
				"category":    "top",
				"color_group": "warm",
				"embedding":   []float64{1},
			})
			So(err, ShouldBeNil)
			resp.Body.Close()

			resp, err = http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var got struct {
				Started      bool    `json:"started"`
				Days         int     `json:"days"`
				ColorWeight  float64 `json:"color_weight"`
				WardrobeSize int     `json:"wardrobe_size"`
			}
			So(decodeBody(resp, &got), ShouldBeNil)
			So(got.Started, ShouldBeTrue)
			So(got.Days, ShouldEqual, 2)
			So(got.ColorWeight, ShouldEqual, 0.5)
			So(got.WardrobeSize, ShouldEqual, 1)
		})
	})
}
