package routes

import (
	"net/http"

	"github.com/swasthly/healthassist/internal/api/handlers"
	"github.com/swasthly/healthassist/internal/api/middleware"
	"github.com/swasthly/healthassist/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	pharmacyHandler *handlers.PharmacyHandler

	assistantHandler *handlers.AssistantHandler

	consultationHandler *handlers.ConsultationHandler

	geolocationHandler *handlers.GeolocationHandler

	wellnessHandler *handlers.WellnessHandler
	reportHandler   *handlers.ReportHandler
	profileHandler  *handlers.ProfileHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router

func NewRouter(

	pharmacyHandler *handlers.PharmacyHandler,

	assistantHandler *handlers.AssistantHandler,

	consultationHandler *handlers.ConsultationHandler,

	geolocationHandler *handlers.GeolocationHandler,

	wellnessHandler *handlers.WellnessHandler,
	reportHandler *handlers.ReportHandler,
	profileHandler *handlers.ProfileHandler,

	cacheMiddleware *middleware.CacheMiddleware,

	metrics *observability.Metrics,

) *Router {

	return &Router{

		mux: http.NewServeMux(),

		pharmacyHandler: pharmacyHandler,

		assistantHandler: assistantHandler,

		consultationHandler: consultationHandler,

		geolocationHandler: geolocationHandler,

		wellnessHandler: wellnessHandler,
		reportHandler:   reportHandler,
		profileHandler:  profileHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}

}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {

		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}

	})

	// Pharmacy endpoints

	r.mux.HandleFunc("GET /api/pharmacies/search", r.pharmacyHandler.SearchPharmacies)

	r.mux.HandleFunc("GET /api/pharmacies/chains", r.pharmacyHandler.GetPopularChains)

	r.mux.HandleFunc("GET /api/pharmacies/{id}", r.pharmacyHandler.GetPharmacy)

	r.mux.HandleFunc("GET /api/pharmacies/{id}/directions", r.pharmacyHandler.GetDirections)
	r.mux.HandleFunc("GET /api/pharmacies/{id}/hours/today", r.pharmacyHandler.GetTodayHours)

	// Assistant endpoints

	r.mux.HandleFunc("POST /api/assistant/chat", r.assistantHandler.Chat)

	r.mux.HandleFunc("POST /api/assistant/symptoms", r.assistantHandler.AnalyzeSymptoms)

	r.mux.HandleFunc("POST /api/assistant/wellness", r.assistantHandler.WellnessSupport)

	// Consultation endpoints

	r.mux.HandleFunc("POST /api/consultations", r.consultationHandler.Book)

	r.mux.HandleFunc("GET /api/consultations", r.consultationHandler.ListConsultations)

	r.mux.HandleFunc("GET /api/consultations/availability", r.consultationHandler.GetAvailability)

	r.mux.HandleFunc("GET /api/consultations/{id}", r.consultationHandler.GetConsultation)

	r.mux.HandleFunc("DELETE /api/consultations/{id}", r.consultationHandler.Cancel)

	// Geolocation endpoints

	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)

	r.mux.HandleFunc("GET /api/reverse-geocode", r.geolocationHandler.ReverseGeocode)

	r.mux.HandleFunc("POST /api/position", r.geolocationHandler.ResolvePosition)

	// Wellness endpoints

	r.mux.HandleFunc("POST /api/wellness/moods", r.wellnessHandler.RecordMood)

	r.mux.HandleFunc("GET /api/wellness/moods", r.wellnessHandler.GetMoodHistory)

	r.mux.HandleFunc("GET /api/wellness/moods/summary", r.wellnessHandler.GetMoodSummary)

	// Health report endpoints

	r.mux.HandleFunc("GET /api/reports", r.reportHandler.ListReports)

	r.mux.HandleFunc("GET /api/reports/{id}", r.reportHandler.GetReport)

	// Profile endpoints

	r.mux.HandleFunc("GET /api/profile/{id}", r.profileHandler.GetProfile)
	r.mux.HandleFunc("PUT /api/profile/{id}", r.profileHandler.UpdateProfile)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
