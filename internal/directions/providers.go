package directions

import (
	"context"

	"github.com/zeusluffy10/tara-ai/internal/maps"
	"github.com/zeusluffy10/tara-ai/internal/textutil"
)

// Provider produces a route between two locations. Implementations may
// return aggregate-only results (nil Steps); the Service decides whether
// step detail must be fetched elsewhere.
type Provider interface {
	Route(ctx context.Context, origin, destination, mode string) (*UnifiedRoute, error)
}

// SummaryProvider adapts the Routes API v2 summary call: polyline and
// aggregate distance/duration, never step detail.
type SummaryProvider struct {
	routes *maps.RoutesClient
}

// NewSummaryProvider wraps a RoutesClient as a Provider.
func NewSummaryProvider(routes *maps.RoutesClient) *SummaryProvider {
	return &SummaryProvider{routes: routes}
}

func (p *SummaryProvider) Route(ctx context.Context, origin, destination, mode string) (*UnifiedRoute, error) {
	sum, err := p.routes.ComputeRoute(ctx, origin, destination, mode)
	if err != nil {
		return nil, err
	}
	return &UnifiedRoute{
		Polyline:        sum.Polyline,
		DistanceMeters:  sum.DistanceMeters,
		DurationSeconds: sum.DurationSeconds,
		Source:          SourceSummary,
	}, nil
}

// DetailProvider adapts the legacy Directions API: full leg with per-step
// instructions, which it strips of HTML markup.
type DetailProvider struct {
	client *maps.Client
	opts   maps.DirectionsOptions
}

// NewDetailProvider wraps a maps.Client as a step-detailed Provider.
// opts carries the language/region bias forwarded to every call.
func NewDetailProvider(client *maps.Client, opts maps.DirectionsOptions) *DetailProvider {
	return &DetailProvider{client: client, opts: opts}
}

func (p *DetailProvider) Route(ctx context.Context, origin, destination, mode string) (*UnifiedRoute, error) {
	r, err := p.client.Directions(ctx, origin, destination, mode, p.opts)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, Step{
			Instruction:     textutil.CleanInstruction(s.HTMLInstruction),
			Maneuver:        s.Maneuver,
			Distance:        s.DistanceText,
			DistanceMeters:  s.DistanceMeters,
			Duration:        s.DurationText,
			DurationSeconds: s.DurationSeconds,
			StartLat:        s.Start.Lat,
			StartLng:        s.Start.Lng,
			EndLat:          s.End.Lat,
			EndLng:          s.End.Lng,
			Polyline:        s.Polyline,
		})
	}

	return &UnifiedRoute{
		Polyline:        r.Polyline,
		Distance:        r.DistanceText,
		DistanceMeters:  r.DistanceMeters,
		Duration:        r.DurationText,
		DurationSeconds: r.DurationSeconds,
		StartAddress:    r.StartAddress,
		EndAddress:      r.EndAddress,
		Steps:           steps,
		Source:          SourceSteps,
	}, nil
}
