package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/swasthly/healthassist/internal/adapters/cache"
	"github.com/swasthly/healthassist/internal/adapters/database"
	"github.com/swasthly/healthassist/internal/adapters/directory"
	"github.com/swasthly/healthassist/internal/adapters/events"
	"github.com/swasthly/healthassist/internal/adapters/providers/geolocation"
	"github.com/swasthly/healthassist/internal/adapters/providers/scheduling"
	"github.com/swasthly/healthassist/internal/adapters/search"
	"github.com/swasthly/healthassist/internal/api/handlers"
	"github.com/swasthly/healthassist/internal/api/middleware"
	"github.com/swasthly/healthassist/internal/api/routes"
	"github.com/swasthly/healthassist/internal/application/services"
	"github.com/swasthly/healthassist/internal/domain/providers"
	"github.com/swasthly/healthassist/internal/domain/repositories"
	"github.com/swasthly/healthassist/internal/infrastructure/clients/gemini"
	"github.com/swasthly/healthassist/internal/infrastructure/clients/postgres"
	"github.com/swasthly/healthassist/internal/infrastructure/clients/redis"
	"github.com/swasthly/healthassist/internal/infrastructure/clients/typesense"
	"github.com/swasthly/healthassist/internal/infrastructure/observability"
	"github.com/swasthly/healthassist/pkg/config"
)

func main() {

	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		// Continue without Redis - the application can work without caching
		log.Warn().Err(err).Msg("Failed to initialize Redis client")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Typesense client")
		typesenseClient = nil
	} else {
		log.Info().Msg("Typesense client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for consultation lifecycle events
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Event bus initialized successfully")
	} else {
		log.Info().Msg("Event bus disabled (Redis not available)")
	}

	// Initialize adapters

	pharmacyDirectory := directory.NewSeedAdapter()

	var searchRepo repositories.PharmacySearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	consultationAdapter := database.NewConsultationAdapter(pgClient)
	moodAdapter := database.NewMoodAdapter(pgClient)
	reportAdapter := database.NewHealthReportAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)

	var geolocationProvider providers.GeolocationProvider
	switch cfg.Geocoding.Provider {
	case "nominatim":
		geolocationProvider = geolocation.NewNominatimProvider(
			cfg.Geocoding.BaseURL,
			cfg.Geocoding.UserAgent,
			cacheProvider,
		)
	default:
		log.Warn().Str("provider", cfg.Geocoding.Provider).Msg("Unknown geocoding provider; using mock")
		geolocationProvider = geolocation.NewMockGeolocationProvider()
	}

	schedulingProvider := scheduling.NewMockAdapter()

	var textGenerator providers.TextGenerator
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set; assistant endpoints will report unavailable")
	} else {
		geminiClient, err := gemini.NewClient(&cfg.Gemini)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			textGenerator = geminiClient
		}
	}

	// Initialize services

	pharmacyService := services.NewPharmacyService(pharmacyDirectory, searchRepo)
	assistantService := services.NewAssistantService(textGenerator)
	consultationService := services.NewConsultationService(consultationAdapter, schedulingProvider, eventBus)
	locationService := services.NewLocationService(geolocationProvider)
	wellnessService := services.NewWellnessService(moodAdapter)
	reportService := services.NewReportService(reportAdapter)
	profileService := services.NewProfileService(userAdapter)

	// Initialize handlers

	pharmacyHandler := handlers.NewPharmacyHandler(pharmacyService)
	assistantHandler := handlers.NewAssistantHandler(assistantService)
	consultationHandler := handlers.NewConsultationHandler(consultationService)
	geolocationHandler := handlers.NewGeolocationHandler(locationService)
	wellnessHandler := handlers.NewWellnessHandler(wellnessService)
	reportHandler := handlers.NewReportHandler(reportService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Info().Msg("Cache middleware initialized successfully")
	}

	// Set up router

	router := routes.NewRouter(
		pharmacyHandler,
		assistantHandler,
		consultationHandler,
		geolocationHandler,
		wellnessHandler,
		reportHandler,
		profileHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
