// Package app wires configuration, provider clients, domain services,
// and the HTTP engine into one runnable application.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/zeusluffy10/tara-ai/internal/config"
	"github.com/zeusluffy10/tara-ai/internal/directions"
	"github.com/zeusluffy10/tara-ai/internal/handler"
	"github.com/zeusluffy10/tara-ai/internal/httpx"
	"github.com/zeusluffy10/tara-ai/internal/landmark"
	"github.com/zeusluffy10/tara-ai/internal/maps"
	"github.com/zeusluffy10/tara-ai/internal/middleware"
	"github.com/zeusluffy10/tara-ai/internal/speech"
	"github.com/zeusluffy10/tara-ai/internal/ttsjob"
)

// App holds the application-level dependencies.
type App struct {
	Router *gin.Engine

	http *httpx.Client
	jobs *ttsjob.Service
	log  logrus.FieldLogger
}

// New builds the full dependency graph and configures the HTTP engine.
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// --- Outbound HTTP ---
	httpClient := httpx.New(httpx.WithTimeout(cfg.ProviderTimeout))

	// --- Google Maps providers ---
	mapsClient := maps.NewClient(cfg.GoogleMapsKey, httpClient)
	routesClient := maps.NewRoutesClient(cfg.GoogleMapsKey, httpClient)

	// --- Directions: summary primary, step-detailed secondary. The
	// reroute variant biases instructions to Tagalog.
	summary := directions.NewSummaryProvider(routesClient)
	routeSvc := directions.NewService(
		summary,
		directions.NewDetailProvider(mapsClient, maps.DirectionsOptions{Region: "PH"}),
		log,
	)
	rerouteSvc := directions.NewService(
		summary,
		directions.NewDetailProvider(mapsClient, maps.DirectionsOptions{Language: "tl", Region: "PH"}),
		log,
	)

	// --- Landmark resolver, degraded when no maps key is configured ---
	var placesForLandmark landmark.PlacesClient
	if mapsClient.HasCredentials() {
		placesForLandmark = mapsClient
	}
	resolver := landmark.NewResolver(placesForLandmark, landmark.NewLRUStore(0), log)

	// --- OpenAI-backed speech/completion ---
	ai := speech.NewService(cfg.OpenAIKey, log)
	if !ai.HasCredentials() {
		log.Warn("OPENAI_API_KEY not set; simplify/tts/transcribe will report missing configuration")
	}

	// --- Async TTS jobs ---
	jobStore, err := ttsjob.NewStore(cfg.JobsDir)
	if err != nil {
		return nil, err
	}
	jobs := ttsjob.NewService(jobStore, ai, log)

	// --- HTTP engine ---
	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(gin.Recovery())
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	h := handler.New(mapsClient, routeSvc, rerouteSvc, resolver, ai, jobs, cfg.UploadDir, log)

	router.GET("/", h.Home)
	router.GET("/health", h.Health)

	router.GET("/geocode", h.Geocode)
	router.GET("/search", h.Search)
	router.GET("/placedetails", h.PlaceDetails)

	router.GET("/route", h.Route)
	router.GET("/reroute", h.Reroute)
	router.GET("/landmark", h.Landmark)

	router.POST("/ask", h.Ask)
	router.POST("/simplify", h.Simplify)
	router.POST("/transcribe", h.Transcribe)

	router.GET("/tts", h.TTS)
	router.POST("/tts", h.CreateTTSJob)
	router.GET("/tts/status/:job_id", h.TTSJobStatus)
	router.GET("/tts/result/:job_id", h.TTSJobResult)

	return &App{
		Router: router,
		http:   httpClient,
		jobs:   jobs,
		log:    log,
	}, nil
}

// Shutdown drains in-flight synthesis jobs and releases the outbound
// HTTP client.
func (a *App) Shutdown() {
	a.log.Info("waiting for in-flight jobs")
	a.jobs.Wait()
	a.http.Close()
	a.log.Info("application shut down")
}
