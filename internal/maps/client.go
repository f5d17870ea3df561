// Package maps wraps the Google mapping web services used by the backend:
// geocoding, place autocomplete, place details, nearby search and the legacy
// Directions API. The Routes API v2 summary call lives in routes.go.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/zeusluffy10/tara-ai/internal/httpx"
)

const (
	geocodeURL      = "https://maps.googleapis.com/maps/api/geocode/json"
	directionsURL   = "https://maps.googleapis.com/maps/api/directions/json"
	autocompleteURL = "https://maps.googleapis.com/maps/api/place/autocomplete/json"
	detailsURL      = "https://maps.googleapis.com/maps/api/place/details/json"
	nearbyURL       = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

	// autocompleteComponents biases suggestions to the Philippines.
	autocompleteComponents = "country:ph"
)

// ErrMissingCredentials is returned when no API key is configured. Callers
// that can degrade gracefully (the landmark resolver) should check for it
// with errors.Is; required paths surface it as a configuration error.
var ErrMissingCredentials = errors.New("maps: no API key configured")

// ErrZeroResults is returned when the provider answered but found nothing.
// It is a definitive answer, never retried.
var ErrZeroResults = errors.New("maps: zero results")

// StatusError is a provider-reported failure: a valid response whose status
// field is neither OK nor ZERO_RESULTS (e.g. OVER_QUERY_LIMIT).
type StatusError struct {
	Op      string
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("maps: %s: provider status %s: %s", e.Op, e.Status, e.Message)
}

// Client calls the Google mapping web services. URLs are overridable so
// tests can point the client at an httptest server.
type Client struct {
	key  string
	http *httpx.Client

	geocodeURL      string
	directionsURL   string
	autocompleteURL string
	detailsURL      string
	nearbyURL       string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURLs overrides every endpoint with base + the default path suffix.
// Test hook: point the client at an httptest server.
func WithBaseURLs(base string) ClientOption {
	return func(c *Client) {
		c.geocodeURL = base + "/geocode/json"
		c.directionsURL = base + "/directions/json"
		c.autocompleteURL = base + "/place/autocomplete/json"
		c.detailsURL = base + "/place/details/json"
		c.nearbyURL = base + "/place/nearbysearch/json"
	}
}

// NewClient creates a Client. An empty key is allowed: every call then
// returns ErrMissingCredentials without touching the network.
func NewClient(key string, http *httpx.Client, opts ...ClientOption) *Client {
	c := &Client{
		key:             key,
		http:            http,
		geocodeURL:      geocodeURL,
		directionsURL:   directionsURL,
		autocompleteURL: autocompleteURL,
		detailsURL:      detailsURL,
		nearbyURL:       nearbyURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// HasCredentials reports whether an API key is configured.
func (c *Client) HasCredentials() bool { return c.key != "" }

// Geocode resolves a freeform place name to coordinates.
// Returns ErrZeroResults when the provider found nothing.
func (c *Client) Geocode(ctx context.Context, place string) (*Coordinate, error) {
	if c.key == "" {
		return nil, ErrMissingCredentials
	}

	var resp geocodeResponse
	params := httpx.Params{"address": place, "key": c.key}
	if err := c.http.GetJSON(ctx, c.geocodeURL, params, &resp); err != nil {
		return nil, fmt.Errorf("maps: geocode: %w", err)
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, ErrZeroResults
	default:
		return nil, &StatusError{Op: "geocode", Status: resp.Status, Message: resp.ErrorMessage}
	}
	if len(resp.Results) == 0 {
		return nil, ErrZeroResults
	}

	loc := resp.Results[0].Geometry.Location
	return &Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// Autocomplete returns place suggestions for a partial query, biased to the
// Philippines. The session token, when present, groups keystrokes for
// provider-side billing. Zero results is not an error: an empty slice.
func (c *Client) Autocomplete(ctx context.Context, query, sessionToken string) ([]Prediction, error) {
	if c.key == "" {
		return nil, ErrMissingCredentials
	}

	params := httpx.Params{
		"input":      query,
		"key":        c.key,
		"components": autocompleteComponents,
		"types":      "geocode",
	}
	if sessionToken != "" {
		params["sessiontoken"] = sessionToken
	}

	var resp autocompleteResponse
	if err := c.http.GetJSON(ctx, c.autocompleteURL, params, &resp); err != nil {
		return nil, fmt.Errorf("maps: autocomplete: %w", err)
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, &StatusError{Op: "autocomplete", Status: resp.Status}
	}

	preds := make([]Prediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		preds = append(preds, Prediction{Description: p.Description, PlaceID: p.PlaceID})
	}
	return preds, nil
}

// PlaceDetails resolves a place_id to a name, address and coordinates.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	if c.key == "" {
		return nil, ErrMissingCredentials
	}

	params := httpx.Params{
		"place_id": placeID,
		"key":      c.key,
		"fields":   "name,formatted_address,geometry,formatted_phone_number",
	}

	var resp placeDetailsResponse
	if err := c.http.GetJSON(ctx, c.detailsURL, params, &resp); err != nil {
		return nil, fmt.Errorf("maps: place details: %w", err)
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND", "INVALID_REQUEST":
		return nil, ErrZeroResults
	default:
		return nil, &StatusError{Op: "place details", Status: resp.Status}
	}

	r := resp.Result
	return &PlaceDetails{
		Name:    r.Name,
		Address: r.FormattedAddress,
		Lat:     r.Geometry.Location.Lat,
		Lng:     r.Geometry.Location.Lng,
		Phone:   r.FormattedPhone,
	}, nil
}

// NearbySearch lists places around a coordinate. placeType may be empty for
// an untyped (broadest) search. Zero results yields an empty slice.
func (c *Client) NearbySearch(ctx context.Context, lat, lng float64, radiusMeters int, placeType string) ([]Place, error) {
	if c.key == "" {
		return nil, ErrMissingCredentials
	}

	params := httpx.Params{
		"location": fmt.Sprintf("%f,%f", lat, lng),
		"radius":   strconv.Itoa(radiusMeters),
		"key":      c.key,
	}
	if placeType != "" {
		params["type"] = placeType
	}

	var resp nearbyResponse
	if err := c.http.GetJSON(ctx, c.nearbyURL, params, &resp); err != nil {
		return nil, fmt.Errorf("maps: nearby search: %w", err)
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, &StatusError{Op: "nearby search", Status: resp.Status}
	}

	places := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, Place{
			Name:     r.Name,
			Location: Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			Types:    r.Types,
		})
	}
	return places, nil
}

// Directions calls the legacy Directions API and parses the first route and
// leg, step detail included. Instructions keep their HTML markup.
// Returns ErrZeroResults when the provider reports no route.
func (c *Client) Directions(ctx context.Context, origin, destination, mode string, opts DirectionsOptions) (*DirectionsRoute, error) {
	if c.key == "" {
		return nil, ErrMissingCredentials
	}

	params := httpx.Params{
		"origin":       origin,
		"destination":  destination,
		"mode":         mode,
		"alternatives": "false",
		"key":          c.key,
	}
	if opts.Language != "" {
		params["language"] = opts.Language
	}
	if opts.Region != "" {
		params["region"] = opts.Region
	}

	var resp directionsResponse
	if err := c.http.GetJSON(ctx, c.directionsURL, params, &resp); err != nil {
		return nil, fmt.Errorf("maps: directions: %w", err)
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, ErrZeroResults
	default:
		return nil, &StatusError{Op: "directions", Status: resp.Status, Message: resp.ErrorMessage}
	}
	if len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return nil, ErrZeroResults
	}

	route := resp.Routes[0]
	leg := route.Legs[0]

	steps := make([]DirectionsStep, 0, len(leg.Steps))
	for _, s := range leg.Steps {
		steps = append(steps, DirectionsStep{
			HTMLInstruction: s.HTMLInstructions,
			Maneuver:        s.Maneuver,
			DistanceText:    s.Distance.Text,
			DistanceMeters:  s.Distance.Value,
			DurationText:    s.Duration.Text,
			DurationSeconds: s.Duration.Value,
			Start:           Coordinate{Lat: s.StartLocation.Lat, Lng: s.StartLocation.Lng},
			End:             Coordinate{Lat: s.EndLocation.Lat, Lng: s.EndLocation.Lng},
			Polyline:        s.Polyline.Points,
		})
	}

	return &DirectionsRoute{
		DistanceText:    leg.Distance.Text,
		DistanceMeters:  leg.Distance.Value,
		DurationText:    leg.Duration.Text,
		DurationSeconds: leg.Duration.Value,
		StartAddress:    leg.StartAddress,
		EndAddress:      leg.EndAddress,
		Polyline:        route.OverviewPolyline.Points,
		Steps:           steps,
	}, nil
}
