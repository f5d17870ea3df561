// Package landmark resolves a coordinate to a nearby speakable place name.
//
// Area-level names ("Quezon City", "Barangay 659") are useless as spoken
// walking cues; the resolver filters them out and prefers small everyday
// businesses, which elderly users recognize instantly. Results, including
// a definitive "nothing found", are cached per ~1.1m grid cell for an hour
// so repeated lookups along a route don't hammer the places provider. A
// lookup where every query failed outright is not cached; the next request
// retries.
package landmark

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/zeusluffy10/tara-ai/internal/maps"
)

const (
	// cacheTTL is how long a cached resolution (positive or negative)
	// remains valid. Hard cutoff, no sliding expiration.
	cacheTTL = time.Hour

	// Radius bounds in meters. 40m suits a senior walking pace; anything
	// past 300m stops being "right here".
	defaultRadiusMeters = 40
	minRadiusMeters     = 40
	maxRadiusMeters     = 300
)

// Result sources, reported for telemetry and tests.
const (
	SourceCache  = "cache"
	SourcePlaces = "places" // untyped nearby search
	SourceNone   = "none"
	// Typed category hits use "type:<category>", see typeSource.
)

// areaNameTokens block area-level/administrative names. Matched
// case-insensitively as substrings.
var areaNameTokens = []string{
	"manila",
	"quezon city",
	"makati",
	"city",
	"barangay",
	"district",
	"region",
	"philippines",
}

// placeTypes is the typed-search fallback order: small, recognizable
// everyday places before larger or generic ones. First acceptable name
// wins; there is no ranking beyond provider order within a category.
var placeTypes = []string{
	"restaurant",
	"cafe",
	"convenience_store",
	"pharmacy",
	"store",
	"supermarket",
	"shopping_mall",
}

// PlacesClient is the provider dependency of the Resolver.
// *maps.Client satisfies it.
type PlacesClient interface {
	NearbySearch(ctx context.Context, lat, lng float64, radiusMeters int, placeType string) ([]maps.Place, error)
}

// Result is a resolution outcome. Name is nil when no acceptable landmark
// exists near the coordinate.
type Result struct {
	Name   *string `json:"name"`
	Source string  `json:"source"`
}

// Resolver finds a speakable landmark near a coordinate, backed by a
// TTL-bounded cache keyed by rounded coordinate.
type Resolver struct {
	places PlacesClient // nil when no credentials: resolver degrades to "none"
	store  CacheStore
	log    logrus.FieldLogger
	now    func() time.Time

	// group collapses concurrent lookups for the same grid cell so a burst
	// of requests costs one provider call sequence.
	group singleflight.Group
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithClock replaces the resolver's time source. Test hook.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// NewResolver creates a Resolver. places may be nil when no provider
// credentials are configured; every resolution then reports "none" without
// a network call; missing credentials is degradation, not an error.
func NewResolver(places PlacesClient, store CacheStore, log logrus.FieldLogger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		places: places,
		store:  store,
		log:    log,
		now:    time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve returns the speakable landmark for a coordinate, or a nil name
// when none is available. radiusMeters of 0 means the default; out-of-range
// values are clamped. Provider failures never propagate: the resolver
// degrades to "none".
func (r *Resolver) Resolve(ctx context.Context, lat, lng float64, radiusMeters int) Result {
	if r.places == nil {
		return Result{Name: nil, Source: SourceNone}
	}

	switch {
	case radiusMeters <= 0:
		radiusMeters = defaultRadiusMeters
	case radiusMeters < minRadiusMeters:
		radiusMeters = minRadiusMeters
	case radiusMeters > maxRadiusMeters:
		radiusMeters = maxRadiusMeters
	}

	key := CacheKey(lat, lng)

	if res, ok := r.cached(key); ok {
		return res
	}

	// Collapse concurrent misses for the same cell into one lookup.
	v, _, _ := r.group.Do(key, func() (any, error) {
		// A racing caller may have populated the cell while we queued.
		if res, ok := r.cached(key); ok {
			return res, nil
		}
		res, cacheable := r.lookup(ctx, lat, lng, radiusMeters)
		if cacheable {
			r.store.Set(key, Entry{Name: res.Name, CachedAt: r.now()})
		}
		return res, nil
	})
	return v.(Result)
}

// cached returns the cached result for key if a non-expired entry exists.
func (r *Resolver) cached(key string) (Result, bool) {
	e, ok := r.store.Get(key)
	if !ok || r.now().Sub(e.CachedAt) >= cacheTTL {
		return Result{}, false
	}
	return Result{Name: e.Name, Source: SourceCache}, true
}

// lookup runs the strategy chain: untyped search first (broadest,
// fastest-to-useful), then each place type in priority order. First
// acceptable name wins.
//
// The second return reports whether the outcome is worth caching: any
// acceptable name, or a "none" backed by at least one definitive empty
// answer. When every query failed at the transport level the "none" is
// transient and must not occupy a cache cell for an hour.
func (r *Resolver) lookup(ctx context.Context, lat, lng float64, radiusMeters int) (Result, bool) {
	answered := false

	name, ok, err := r.search(ctx, lat, lng, radiusMeters, "")
	if ok {
		return Result{Name: &name, Source: SourcePlaces}, true
	}
	answered = answered || err == nil

	for _, t := range placeTypes {
		name, ok, err = r.search(ctx, lat, lng, radiusMeters, t)
		if ok {
			return Result{Name: &name, Source: typeSource(t)}, true
		}
		answered = answered || err == nil
	}

	return Result{Name: nil, Source: SourceNone}, answered
}

// search runs one nearby query and returns the first acceptable name.
// A provider error is logged and returned so the caller can tell a
// transient failure from a definitive empty answer; the chain continues
// either way.
func (r *Resolver) search(ctx context.Context, lat, lng float64, radiusMeters int, placeType string) (string, bool, error) {
	places, err := r.places.NearbySearch(ctx, lat, lng, radiusMeters, placeType)
	if err != nil {
		r.log.WithError(err).WithField("type", placeType).Debug("landmark: nearby search failed")
		return "", false, err
	}
	for _, p := range places {
		if p.Name != "" && !isAreaName(p.Name) {
			return p.Name, true, nil
		}
	}
	return "", false, nil
}

// isAreaName reports whether a place name contains an area-level token.
func isAreaName(name string) bool {
	low := strings.ToLower(strings.TrimSpace(name))
	if low == "" {
		return true
	}
	for _, tok := range areaNameTokens {
		if strings.Contains(low, tok) {
			return true
		}
	}
	return false
}

func typeSource(t string) string { return "type:" + t }
