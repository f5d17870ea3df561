// Package handler implements the HTTP surface. Handlers validate and
// translate between transport and the domain services; all provider
// logic lives below them.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/zeusluffy10/tara-ai/internal/directions"
	"github.com/zeusluffy10/tara-ai/internal/landmark"
	"github.com/zeusluffy10/tara-ai/internal/maps"
	"github.com/zeusluffy10/tara-ai/internal/ttsjob"
)

// PlacesAPI covers the geocoding-family provider calls.
type PlacesAPI interface {
	Geocode(ctx context.Context, place string) (*maps.Coordinate, error)
	Autocomplete(ctx context.Context, query, sessionToken string) ([]maps.Prediction, error)
	PlaceDetails(ctx context.Context, placeID string) (*maps.PlaceDetails, error)
}

// Router resolves unified routes.
type Router interface {
	GetRoute(ctx context.Context, origin, destination, mode string) (*directions.UnifiedRoute, error)
}

// LandmarkResolver names a speakable landmark at a coordinate.
type LandmarkResolver interface {
	Resolve(ctx context.Context, lat, lng float64, radiusMeters int) landmark.Result
}

// AIService covers the OpenAI-backed calls.
type AIService interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
	Transcribe(ctx context.Context, filePath, language string) (string, error)
	HasCredentials() bool
}

// JobService owns async TTS jobs.
type JobService interface {
	Submit(text, voice, lang, style string) (string, error)
	Status(jobID string) (ttsjob.Metadata, error)
	Result(jobID string) ([]byte, ttsjob.Metadata, error)
}

// Handler holds the domain dependencies for all HTTP handlers.
// A single Handler is shared across all routes; individual methods are
// registered as gin handler functions.
type Handler struct {
	places    PlacesAPI
	router    Router
	rerouter  Router
	landmarks LandmarkResolver
	ai        AIService
	jobs      JobService
	uploadDir string
	log       logrus.FieldLogger
}

// New creates a Handler with the given dependencies. rerouter is the
// directions service variant with Tagalog language bias.
func New(
	places PlacesAPI,
	router Router,
	rerouter Router,
	landmarks LandmarkResolver,
	ai AIService,
	jobs JobService,
	uploadDir string,
	log logrus.FieldLogger,
) *Handler {
	return &Handler{
		places:    places,
		router:    router,
		rerouter:  rerouter,
		landmarks: landmarks,
		ai:        ai,
		jobs:      jobs,
		uploadDir: uploadDir,
		log:       log,
	}
}

// Home handles GET /.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "TARA AI backend running!"})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError writes the uniform error shape: a machine-readable code
// plus a human message.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": code, "message": message})
}

// parseRequiredFloat extracts a required float64 query parameter.
// On failure it writes a 400 response and returns (0, false).
func parseRequiredFloat(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		respondError(c, http.StatusBadRequest, "missing_parameter", name+" query parameter is required")
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_parameter", name+" must be a number")
		return 0, false
	}
	return v, true
}
