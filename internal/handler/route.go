package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zeusluffy10/tara-ai/internal/directions"
)

// Route handles GET /route?origin=&destination=&mode=
//
// Origin and destination accept freeform addresses or "lat,lng" pairs.
//
// Response 200: {"status": "ok", "route": {...unified route...}}
// Response 400: missing origin/destination.
// Response 404: providers answered but found no route.
// Response 503: no directions credential configured.
// Response 502: all providers failed at the transport level.
func (h *Handler) Route(c *gin.Context) {
	route, err := h.router.GetRoute(c.Request.Context(), c.Query("origin"), c.Query("destination"), c.Query("mode"))
	if err != nil {
		h.routeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "route": route})
}

// Reroute handles GET /reroute?origin_lat=&origin_lng=&dest_lat=&dest_lng=&mode=
//
// The instructions come back biased to Tagalog ("language=tl",
// "region=PH") so the client can speak them with minimal rewriting. The
// response is flattened to what a navigating client needs per step: the
// cleaned instruction, the maneuver, the step endpoint, and the
// distance.
func (h *Handler) Reroute(c *gin.Context) {
	originLat, ok := parseRequiredFloat(c, "origin_lat")
	if !ok {
		return
	}
	originLng, ok := parseRequiredFloat(c, "origin_lng")
	if !ok {
		return
	}
	destLat, ok := parseRequiredFloat(c, "dest_lat")
	if !ok {
		return
	}
	destLng, ok := parseRequiredFloat(c, "dest_lng")
	if !ok {
		return
	}
	mode := directions.NormalizeMode(c.Query("mode"))

	origin := fmt.Sprintf("%f,%f", originLat, originLng)
	destination := fmt.Sprintf("%f,%f", destLat, destLng)

	route, err := h.rerouter.GetRoute(c.Request.Context(), origin, destination, mode)
	if err != nil {
		h.routeError(c, err)
		return
	}

	steps := make([]gin.H, 0, len(route.Steps))
	for _, s := range route.Steps {
		steps = append(steps, gin.H{
			"instruction": s.Instruction,
			"maneuver":    s.Maneuver,
			"lat":         s.EndLat,
			"lng":         s.EndLng,
			"distance_m":  s.DistanceMeters,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"polyline":    route.Polyline,
		"destination": gin.H{"lat": destLat, "lng": destLng},
		"steps":       steps,
		"distance_m":  route.DistanceMeters,
		"duration_s":  route.DurationSeconds,
		"mode":        mode,
	})
}

func (h *Handler) routeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, directions.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "invalid_input", "origin and destination are required")
	case errors.Is(err, directions.ErrNoRoute):
		respondError(c, http.StatusNotFound, "no_route", "no route found between the given points")
	case errors.Is(err, directions.ErrMissingCredentials):
		respondError(c, http.StatusServiceUnavailable, "missing_credentials", "directions provider is not configured")
	default:
		h.log.WithError(err).Error("directions lookup failed")
		respondError(c, http.StatusBadGateway, "routing_failed", "failed to calculate route")
	}
}
