package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthly/healthassist/internal/api/handlers"
	"github.com/swasthly/healthassist/internal/application/services"
	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/providers"
)

type fakeGeocoder struct {
	geocoded   *providers.GeocodedAddress
	geocodeErr error
	reverseErr error
}

func (g *fakeGeocoder) Geocode(_ context.Context, _ string) (*providers.GeocodedAddress, error) {
	return g.geocoded, g.geocodeErr
}

func (g *fakeGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (*providers.GeocodedAddress, error) {
	if g.reverseErr != nil {
		return nil, g.reverseErr
	}
	return g.geocoded, nil
}

func newGeolocationHandler(geocoder providers.GeolocationProvider) *handlers.GeolocationHandler {
	return handlers.NewGeolocationHandler(services.NewLocationService(geocoder))
}

func TestGeolocationHandler_Geocode(t *testing.T) {
	t.Run("returns geocoded location", func(t *testing.T) {
		handler := newGeolocationHandler(&fakeGeocoder{geocoded: &providers.GeocodedAddress{
			DisplayName: "Fort, Mumbai, Maharashtra",
			Coordinates: providers.Coordinates{Latitude: 18.9340, Longitude: 72.8356},
		}})

		req := httptest.NewRequest("GET", "/api/geocode?address=Fort+Mumbai", nil)
		w := httptest.NewRecorder()

		handler.Geocode(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var location entities.Location
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &location))
		assert.InDelta(t, 18.9340, location.Latitude, 0.0001)
		assert.Equal(t, "Fort, Mumbai, Maharashtra", location.Address)
	})

	t.Run("requires address", func(t *testing.T) {
		handler := newGeolocationHandler(&fakeGeocoder{})

		req := httptest.NewRequest("GET", "/api/geocode", nil)
		w := httptest.NewRecorder()

		handler.Geocode(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 when address cannot be found", func(t *testing.T) {
		handler := newGeolocationHandler(&fakeGeocoder{geocodeErr: providers.ErrAddressNotFound})

		req := httptest.NewRequest("GET", "/api/geocode?address=nowhere", nil)
		w := httptest.NewRecorder()

		handler.Geocode(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGeolocationHandler_ReverseGeocode(t *testing.T) {
	t.Run("falls back to coordinates when reverse geocoding fails", func(t *testing.T) {
		handler := newGeolocationHandler(&fakeGeocoder{reverseErr: errors.New("nominatim down")})

		req := httptest.NewRequest("GET", "/api/reverse-geocode?lat=19.0760&lon=72.8777", nil)
		w := httptest.NewRecorder()

		handler.ReverseGeocode(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "19.076, 72.8777", body["address"])
	})

	t.Run("rejects malformed coordinates", func(t *testing.T) {
		handler := newGeolocationHandler(&fakeGeocoder{})

		req := httptest.NewRequest("GET", "/api/reverse-geocode?lat=north&lon=72.8777", nil)
		w := httptest.NewRecorder()

		handler.ReverseGeocode(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGeolocationHandler_ResolvePosition(t *testing.T) {
	t.Run("resolves device coordinates", func(t *testing.T) {
		handler := newGeolocationHandler(&fakeGeocoder{geocoded: &providers.GeocodedAddress{
			DisplayName: "Bandra West, Mumbai",
		}})

		w := httptest.NewRecorder()
		handler.ResolvePosition(w, postJSON("/api/position", map[string]interface{}{
			"latitude":  19.0596,
			"longitude": 72.8295,
		}))

		require.Equal(t, http.StatusOK, w.Code)

		var location entities.Location
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &location))
		assert.Equal(t, "Bandra West, Mumbai", location.Address)
	})

	t.Run("maps permission denial to 403", func(t *testing.T) {
		handler := newGeolocationHandler(&fakeGeocoder{})

		w := httptest.NewRecorder()
		handler.ResolvePosition(w, postJSON("/api/position", map[string]interface{}{
			"sensor_error": services.SensorErrorPermissionDenied,
		}))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Location access denied")
	})
}
