package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/swasthly/healthassist/internal/domain/providers"
)

// MockGeolocationProvider implements a mock geolocation provider for
// development and tests.
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// Geocode converts an address to coordinates (mock implementation)
func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedAddress, error) {
	mockCoordinates := map[string]providers.Coordinates{
		"Mumbai":    {Latitude: 19.0760, Longitude: 72.8777},
		"Delhi":     {Latitude: 28.6139, Longitude: 77.2090},
		"Bengaluru": {Latitude: 12.9716, Longitude: 77.5946},
		"Chennai":   {Latitude: 13.0827, Longitude: 80.2707},
		"Pune":      {Latitude: 18.5204, Longitude: 73.8567},
	}

	for city, coords := range mockCoordinates {
		if strings.Contains(address, city) {
			return &providers.GeocodedAddress{
				DisplayName: city + ", India",
				Coordinates: coords,
			}, nil
		}
	}

	return nil, providers.ErrAddressNotFound
}

// ReverseGeocode converts coordinates to an address (mock implementation)
func (m *MockGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	return &providers.GeocodedAddress{
		DisplayName: fmt.Sprintf("Mock Street, %f, %f", lat, lon),
		Coordinates: providers.Coordinates{Latitude: lat, Longitude: lon},
	}, nil
}
