package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/swasthly/healthassist/internal/application/services"
)

// GeolocationHandler handles geolocation endpoints.
type GeolocationHandler struct {
	locationService *services.LocationService
}

// NewGeolocationHandler creates a new geolocation handler.
func NewGeolocationHandler(locationService *services.LocationService) *GeolocationHandler {
	return &GeolocationHandler{locationService: locationService}
}

// Geocode handles GET /api/geocode?address=...
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		respondWithError(w, http.StatusBadRequest, "address parameter is required")
		return
	}

	location, err := h.locationService.GeocodeAddress(r.Context(), address)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, location)
}

// ReverseGeocode handles GET /api/reverse-geocode?lat=...&lon=...
func (h *GeolocationHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	latStr := strings.TrimSpace(r.URL.Query().Get("lat"))
	lonStr := strings.TrimSpace(r.URL.Query().Get("lon"))
	if latStr == "" || lonStr == "" {
		respondWithError(w, http.StatusBadRequest, "lat and lon parameters are required")
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lat parameter")
		return
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lon parameter")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"address": h.locationService.ReverseGeocode(r.Context(), lat, lon),
	})
}

// ResolvePosition handles POST /api/position. The client device reports its
// sensor reading: coordinates on success, the sensor error code otherwise.
func (h *GeolocationHandler) ResolvePosition(w http.ResponseWriter, r *http.Request) {
	var position services.DevicePosition
	if err := json.NewDecoder(r.Body).Decode(&position); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	location, err := h.locationService.ResolvePosition(r.Context(), position)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, location)
}
