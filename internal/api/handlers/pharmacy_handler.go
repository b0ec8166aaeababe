package handlers

import (
	"net/http"
	"strconv"

	"github.com/swasthly/healthassist/internal/application/services"
	"github.com/swasthly/healthassist/internal/domain/entities"
)

// PharmacyHandler handles pharmacy locator HTTP requests
type PharmacyHandler struct {
	pharmacyService *services.PharmacyService
}

// NewPharmacyHandler creates a new pharmacy handler
func NewPharmacyHandler(pharmacyService *services.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{pharmacyService: pharmacyService}
}

// SearchPharmacies handles GET /api/pharmacies/search
//
// The optional seq parameter is echoed back untouched so clients firing
// overlapping searches can drop responses that arrive out of order.
func (h *PharmacyHandler) SearchPharmacies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lat is required and must be a number")
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lon is required and must be a number")
		return
	}

	params := entities.PharmacySearchParams{
		Latitude:  lat,
		Longitude: lon,
		Query:     query.Get("q"),
	}

	if raw := query.Get("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "radius must be a number")
			return
		}
		params.RadiusKm = &radius
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		params.Limit = limit
	}

	result, err := h.pharmacyService.Search(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	response := map[string]interface{}{
		"pharmacies":      result.Pharmacies,
		"total_count":     result.TotalCount,
		"search_location": result.SearchLocation,
	}
	if seq := query.Get("seq"); seq != "" {
		response["seq"] = seq
	}

	respondWithJSON(w, http.StatusOK, response)
}

// GetPharmacy handles GET /api/pharmacies/{id}
func (h *PharmacyHandler) GetPharmacy(w http.ResponseWriter, r *http.Request) {
	pharmacyID := r.PathValue("id")
	if pharmacyID == "" {
		respondWithError(w, http.StatusBadRequest, "pharmacy ID is required")
		return
	}

	pharmacy, err := h.pharmacyService.GetDetails(r.Context(), pharmacyID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pharmacy)
}

// GetDirections handles GET /api/pharmacies/{id}/directions
func (h *PharmacyHandler) GetDirections(w http.ResponseWriter, r *http.Request) {
	pharmacy, err := h.pharmacyService.GetDetails(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	var origin *entities.Location
	query := r.URL.Query()
	if query.Get("lat") != "" && query.Get("lon") != "" {
		lat, latErr := strconv.ParseFloat(query.Get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(query.Get("lon"), 64)
		if latErr != nil || lonErr != nil {
			respondWithError(w, http.StatusBadRequest, "lat and lon must be numbers")
			return
		}
		origin = &entities.Location{Latitude: lat, Longitude: lon}
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"url": h.pharmacyService.DirectionsURL(pharmacy, origin),
	})
}

// GetTodayHours handles GET /api/pharmacies/{id}/hours/today
func (h *PharmacyHandler) GetTodayHours(w http.ResponseWriter, r *http.Request) {
	pharmacy, err := h.pharmacyService.GetDetails(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hours":   h.pharmacyService.TodayHours(pharmacy),
		"is_open": pharmacy.IsOpen,
	})
}

// GetPopularChains handles GET /api/pharmacies/chains
func (h *PharmacyHandler) GetPopularChains(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"chains": h.pharmacyService.PopularChains(),
	})
}
