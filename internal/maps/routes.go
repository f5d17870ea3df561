package maps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	// routesAPIURL is the Google Routes API v2 endpoint.
	routesAPIURL = "https://routes.googleapis.com/directions/v2:computeRoutes"

	// routesFieldMask limits the response to the summary fields we need.
	routesFieldMask = "routes.duration,routes.distanceMeters,routes.polyline.encodedPolyline"
)

// RouteSummary is the result of a Routes API v2 summary call: aggregate
// fields only, no step detail.
type RouteSummary struct {
	Polyline        string
	DistanceMeters  int
	DurationSeconds int
}

// jsonPoster is the outbound HTTP dependency of RoutesClient. *httpx.Client
// satisfies it; tests use a local double.
type jsonPoster interface {
	PostJSON(ctx context.Context, url string, headers map[string]string, body, out any) error
}

// RoutesClient calls the Google Routes API v2 for a route summary.
type RoutesClient struct {
	key    string
	http   jsonPoster
	apiURL string
}

// RoutesClientOption configures a RoutesClient.
type RoutesClientOption func(*RoutesClient)

// WithRoutesURL overrides the Routes API endpoint. Test hook.
func WithRoutesURL(url string) RoutesClientOption {
	return func(c *RoutesClient) { c.apiURL = url }
}

// NewRoutesClient creates a RoutesClient. An empty key is allowed; calls
// then return ErrMissingCredentials without touching the network.
func NewRoutesClient(key string, http jsonPoster, opts ...RoutesClientOption) *RoutesClient {
	c := &RoutesClient{key: key, http: http, apiURL: routesAPIURL}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ComputeRoute returns the summary of the primary route between origin and
// destination. Origin and destination may be "lat,lng" pairs or freeform
// addresses; mode is a Directions-style travel mode (walking, driving, …).
func (c *RoutesClient) ComputeRoute(ctx context.Context, origin, destination, mode string) (*RouteSummary, error) {
	if c.key == "" {
		return nil, ErrMissingCredentials
	}

	body := routesAPIRequest{
		Origin:       waypointFor(origin),
		Destination:  waypointFor(destination),
		TravelMode:   routesTravelMode(mode),
		LanguageCode: "en-PH",
		Units:        "METRIC",
	}

	headers := map[string]string{
		"X-Goog-Api-Key":   c.key,
		"X-Goog-FieldMask": routesFieldMask,
	}

	var resp routesAPIResponse
	if err := c.http.PostJSON(ctx, c.apiURL, headers, body, &resp); err != nil {
		return nil, fmt.Errorf("maps: routes: %w", err)
	}

	if len(resp.Routes) == 0 {
		return nil, ErrZeroResults
	}
	route := resp.Routes[0]

	durationS, err := parseDurationSeconds(route.Duration)
	if err != nil {
		return nil, fmt.Errorf("maps: routes: parse duration %q: %w", route.Duration, err)
	}

	return &RouteSummary{
		Polyline:        route.Polyline.EncodedPolyline,
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: durationS,
	}, nil
}

// waypointFor builds a Routes API waypoint from either a "lat,lng" string
// or a freeform address.
func waypointFor(loc string) routesAPIWaypoint {
	if lat, lng, ok := parseLatLng(loc); ok {
		return routesAPIWaypoint{
			Location: &routesAPILocation{
				LatLng: routesAPILatLng{Latitude: lat, Longitude: lng},
			},
		}
	}
	return routesAPIWaypoint{Address: loc}
}

// parseLatLng parses "lat,lng". Returns ok=false for anything else.
func parseLatLng(s string) (lat, lng float64, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

// routesTravelMode maps a Directions-style mode to a Routes API travel mode.
func routesTravelMode(mode string) string {
	switch mode {
	case "driving":
		return "DRIVE"
	case "transit":
		return "TRANSIT"
	case "bicycling":
		return "BICYCLE"
	default:
		return "WALK"
	}
}

// parseDurationSeconds parses a Routes API duration string like "123s".
func parseDurationSeconds(s string) (int, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("empty duration string")
	}
	if s[len(s)-1] != 's' {
		return 0, fmt.Errorf("expected duration ending in 's', got %q", s)
	}
	numStr := s[:len(s)-1]
	if numStr == "" {
		return 0, fmt.Errorf("no number before 's' in %q", s)
	}
	for _, ch := range numStr {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("non-integer duration %q", s)
		}
	}
	seconds, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return seconds, nil
}

// --- JSON types for the Google Routes API v2 ---

type routesAPIRequest struct {
	Origin       routesAPIWaypoint `json:"origin"`
	Destination  routesAPIWaypoint `json:"destination"`
	TravelMode   string            `json:"travelMode"`
	LanguageCode string            `json:"languageCode"`
	Units        string            `json:"units"`
}

type routesAPIWaypoint struct {
	Location *routesAPILocation `json:"location,omitempty"`
	Address  string             `json:"address,omitempty"`
}

type routesAPILocation struct {
	LatLng routesAPILatLng `json:"latLng"`
}

type routesAPILatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type routesAPIResponse struct {
	Routes []routesAPIRoute `json:"routes"`
}

type routesAPIRoute struct {
	DistanceMeters int               `json:"distanceMeters"`
	Duration       string            `json:"duration"`
	Polyline       routesAPIPolyline `json:"polyline"`
}

type routesAPIPolyline struct {
	EncodedPolyline string `json:"encodedPolyline"`
}
