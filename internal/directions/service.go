// Package directions assembles a unified turn-by-turn route from two
// provider call shapes: a fast summary query and a richer step-detailed
// query, merged so the caller always gets the most complete result either
// can supply.
package directions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/zeusluffy10/tara-ai/internal/maps"
)

var (
	// ErrInvalidInput is returned before any network call when origin or
	// destination is empty.
	ErrInvalidInput = errors.New("directions: origin and destination are required")

	// ErrMissingCredentials is returned when no directions provider
	// credential is configured. Routing cannot degrade the way landmark
	// lookup does; the caller must surface a configuration error.
	ErrMissingCredentials = errors.New("directions: no provider credentials configured")

	// ErrNoRoute is returned when the provider answered and reported that
	// no route exists between the two points.
	ErrNoRoute = errors.New("directions: no route found")
)

// Service resolves routes with a primary/secondary provider pair.
//
// Resolution order:
//  1. Primary (summary) provider. If its result already carries step
//     detail, it is returned as-is.
//  2. Secondary (step-detailed) provider. On success its values win, with
//     primary aggregates filling any field the secondary left empty.
//  3. Secondary failed: a partial primary result (polyline plus
//     aggregates, no steps) is still returned. Partial information beats
//     an error for a caller that is already walking.
//  4. Both failed: a typed error distinguishing missing configuration,
//     provider-reported no-route, and transport failure.
type Service struct {
	primary   Provider
	secondary Provider
	log       logrus.FieldLogger
}

// NewService creates a Service from a primary summary provider and a
// secondary step-detailed provider.
func NewService(primary, secondary Provider, log logrus.FieldLogger) *Service {
	return &Service{primary: primary, secondary: secondary, log: log}
}

// GetRoute returns the unified route between origin and destination.
// Origin and destination may be freeform addresses or "lat,lng" pairs.
// An unrecognized mode silently becomes walking.
func (s *Service) GetRoute(ctx context.Context, origin, destination, mode string) (*UnifiedRoute, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil, ErrInvalidInput
	}
	mode = NormalizeMode(mode)

	primary, primaryErr := s.primary.Route(ctx, origin, destination, mode)
	if primaryErr != nil {
		s.log.WithError(primaryErr).Debug("directions: primary provider failed")
	} else if len(primary.Steps) > 0 {
		return primary, nil
	}

	secondary, secondaryErr := s.secondary.Route(ctx, origin, destination, mode)
	if secondaryErr == nil {
		return mergeRoutes(secondary, primary), nil
	}
	s.log.WithError(secondaryErr).Debug("directions: step-detail provider failed")

	// Secondary failed but the primary summary is usable on its own.
	if primaryErr == nil && (primary.Polyline != "" || primary.DistanceMeters > 0 || primary.DurationSeconds > 0) {
		return primary, nil
	}

	return nil, classify(primaryErr, secondaryErr)
}

// mergeRoutes prefers the step-detailed result, falling back to primary
// aggregates for any field the secondary left empty.
func mergeRoutes(detail, summary *UnifiedRoute) *UnifiedRoute {
	out := *detail
	if summary != nil {
		if out.Polyline == "" {
			out.Polyline = summary.Polyline
		}
		if out.DistanceMeters == 0 {
			out.DistanceMeters = summary.DistanceMeters
		}
		if out.DurationSeconds == 0 {
			out.DurationSeconds = summary.DurationSeconds
		}
	}
	return &out
}

// classify maps a total failure of both providers to a typed error.
// Missing configuration dominates, then a provider-reported empty route,
// then transport failure.
func classify(primaryErr, secondaryErr error) error {
	if errors.Is(secondaryErr, maps.ErrMissingCredentials) || errors.Is(primaryErr, maps.ErrMissingCredentials) {
		return ErrMissingCredentials
	}
	secondaryNoRoute := errors.Is(secondaryErr, maps.ErrZeroResults)
	primaryNoRoute := primaryErr == nil || errors.Is(primaryErr, maps.ErrZeroResults)
	if secondaryNoRoute && primaryNoRoute {
		return ErrNoRoute
	}
	return fmt.Errorf("directions: all providers failed: %w", errors.Join(primaryErr, secondaryErr))
}
