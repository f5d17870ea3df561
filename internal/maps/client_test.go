package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zeusluffy10/tara-ai/internal/httpx"
)

// newTestClient points a Client at a stub server handler.
func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	hc := httpx.New(httpx.WithRetries(0))
	t.Cleanup(func() { _ = hc.Close() })
	return NewClient("test-key", hc, WithBaseURLs(srv.URL)), srv
}

func TestGeocode_OK(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocode/json" {
			t.Errorf("path = %q, want /geocode/json", r.URL.Path)
		}
		if got := r.URL.Query().Get("address"); got != "Manila City Hall" {
			t.Errorf("address = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 14.5895, "lng": 120.9815}}}]
		}`))
	})

	coord, err := c.Geocode(context.Background(), "Manila City Hall")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coord.Lat != 14.5895 || coord.Lng != 120.9815 {
		t.Errorf("coord = %+v", coord)
	}
}

func TestGeocode_ZeroResults(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	_, err := c.Geocode(context.Background(), "nowhere at all")
	if !errors.Is(err, ErrZeroResults) {
		t.Fatalf("err = %v, want ErrZeroResults", err)
	}
}

func TestGeocode_ProviderStatusError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "OVER_QUERY_LIMIT", "error_message": "quota exceeded"}`))
	})

	_, err := c.Geocode(context.Background(), "Manila")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err type = %T, want *StatusError", err)
	}
	if statusErr.Status != "OVER_QUERY_LIMIT" {
		t.Errorf("status = %q", statusErr.Status)
	}
}

func TestGeocode_NoCredentials(t *testing.T) {
	hc := httpx.New()
	defer hc.Close() //nolint:errcheck
	c := NewClient("", hc)

	_, err := c.Geocode(context.Background(), "Manila")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
}

func TestAutocomplete_SessionTokenForwarded(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("sessiontoken"); got != "sess-1" {
			t.Errorf("sessiontoken = %q, want sess-1", got)
		}
		if got := q.Get("components"); got != "country:ph" {
			t.Errorf("components = %q, want country:ph", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"predictions": [
				{"description": "SM City Manila", "place_id": "p1"},
				{"description": "SM Mall of Asia", "place_id": "p2"}
			]
		}`))
	})

	preds, err := c.Autocomplete(context.Background(), "SM", "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(preds) != 2 || preds[0].PlaceID != "p1" {
		t.Errorf("preds = %+v", preds)
	}
}

func TestAutocomplete_ZeroResultsIsEmptyNotError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "predictions": []}`))
	})

	preds, err := c.Autocomplete(context.Background(), "zzzz", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(preds) != 0 {
		t.Errorf("preds = %+v, want empty", preds)
	}
}

func TestNearbySearch_TypedAndUntyped(t *testing.T) {
	var sawType string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		sawType = r.URL.Query().Get("type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{"name": "Chowking", "geometry": {"location": {"lat": 14.6, "lng": 120.98}}, "types": ["restaurant"]}]
		}`))
	})

	places, err := c.NearbySearch(context.Background(), 14.6, 120.98, 40, "restaurant")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawType != "restaurant" {
		t.Errorf("type param = %q, want restaurant", sawType)
	}
	if len(places) != 1 || places[0].Name != "Chowking" {
		t.Errorf("places = %+v", places)
	}

	_, err = c.NearbySearch(context.Background(), 14.6, 120.98, 40, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawType != "" {
		t.Errorf("untyped search sent type param %q", sawType)
	}
}

func TestDirections_ParsesStepsAndLeg(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("language"); got != "tl" {
			t.Errorf("language = %q, want tl", got)
		}
		if got := q.Get("region"); got != "PH" {
			t.Errorf("region = %q, want PH", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"routes": [{
				"overview_polyline": {"points": "abc123"},
				"legs": [{
					"distance": {"text": "1.2 km", "value": 1200},
					"duration": {"text": "15 mins", "value": 900},
					"start_address": "Ermita, Manila",
					"end_address": "Intramuros, Manila",
					"steps": [{
						"html_instructions": "Head <b>north</b>",
						"maneuver": "turn-left",
						"distance": {"text": "200 m", "value": 200},
						"duration": {"text": "3 mins", "value": 180},
						"start_location": {"lat": 14.5995, "lng": 120.9842},
						"end_location": {"lat": 14.6010, "lng": 120.9850},
						"polyline": {"points": "frag1"}
					}]
				}]
			}]
		}`))
	})

	route, err := c.Directions(context.Background(), "14.5995,120.9842", "14.6050,120.9878", "walking",
		DirectionsOptions{Language: "tl", Region: "PH"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.Polyline != "abc123" || route.DistanceMeters != 1200 || route.DurationSeconds != 900 {
		t.Errorf("route = %+v", route)
	}
	if len(route.Steps) != 1 {
		t.Fatalf("steps = %d, want 1", len(route.Steps))
	}
	s := route.Steps[0]
	if s.HTMLInstruction != "Head <b>north</b>" || s.Maneuver != "turn-left" {
		t.Errorf("step = %+v", s)
	}
	if s.End.Lat != 14.6010 || s.Polyline != "frag1" {
		t.Errorf("step geometry = %+v", s)
	}
}

func TestDirections_NoRoute(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
	})

	_, err := c.Directions(context.Background(), "a", "b", "walking", DirectionsOptions{})
	if !errors.Is(err, ErrZeroResults) {
		t.Fatalf("err = %v, want ErrZeroResults", err)
	}
}
