package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zeusluffy10/tara-ai/internal/maps"
)

// Geocode handles GET /geocode?place=
//
// Response 200: {"place": "...", "coordinates": {"lat": .., "lng": ..}, "status": "ok"}
// Response 404: no result for the place name.
func (h *Handler) Geocode(c *gin.Context) {
	place := c.Query("place")
	if place == "" {
		respondError(c, http.StatusBadRequest, "missing_parameter", "place query parameter is required")
		return
	}

	coords, err := h.places.Geocode(c.Request.Context(), place)
	if err != nil {
		if errors.Is(err, maps.ErrZeroResults) {
			respondError(c, http.StatusNotFound, "place_not_found", fmt.Sprintf("No results for %q", place))
			return
		}
		h.providerError(c, "geocode", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"place":       place,
		"coordinates": coords,
		"status":      "ok",
	})
}

// Search handles GET /search?q=&session=
//
// An empty prediction list is a normal outcome, reported with status
// "no_results" rather than an error.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, http.StatusBadRequest, "missing_parameter", "q query parameter is required")
		return
	}

	preds, err := h.places.Autocomplete(c.Request.Context(), query, c.Query("session"))
	if err != nil {
		h.providerError(c, "search", err)
		return
	}
	if len(preds) == 0 {
		c.JSON(http.StatusOK, gin.H{"predictions": []maps.Prediction{}, "status": "no_results"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": preds, "status": "ok"})
}

// PlaceDetails handles GET /placedetails?place_id=
func (h *Handler) PlaceDetails(c *gin.Context) {
	placeID := c.Query("place_id")
	if placeID == "" {
		respondError(c, http.StatusBadRequest, "missing_parameter", "place_id query parameter is required")
		return
	}

	details, err := h.places.PlaceDetails(c.Request.Context(), placeID)
	if err != nil {
		if errors.Is(err, maps.ErrZeroResults) {
			respondError(c, http.StatusNotFound, "place_not_found", "place not found")
			return
		}
		h.providerError(c, "placedetails", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "place": details})
}

// Landmark handles GET /landmark?lat=&lng=&radius=
//
// Always 200. A coordinate with no speakable landmark, a missing
// provider credential, or a provider failure all degrade to
// {"name": null}: the caller is mid-navigation and an error would help
// nobody.
func (h *Handler) Landmark(c *gin.Context) {
	lat, ok := parseRequiredFloat(c, "lat")
	if !ok {
		return
	}
	lng, ok := parseRequiredFloat(c, "lng")
	if !ok {
		return
	}

	radius := 0
	if raw := c.Query("radius"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid_parameter", "radius must be an integer")
			return
		}
		radius = v
	}

	c.JSON(http.StatusOK, h.landmarks.Resolve(c.Request.Context(), lat, lng, radius))
}

// providerError maps an unclassified provider failure to a 502 and
// logs the cause.
func (h *Handler) providerError(c *gin.Context, op string, err error) {
	h.log.WithError(err).WithField("op", op).Error("provider call failed")
	if errors.Is(err, maps.ErrMissingCredentials) {
		respondError(c, http.StatusServiceUnavailable, "missing_credentials", "maps provider is not configured")
		return
	}
	respondError(c, http.StatusBadGateway, "provider_error", "upstream provider call failed")
}
