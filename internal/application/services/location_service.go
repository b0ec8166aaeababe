package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/providers"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

// Sensor error codes reported by client devices, mirroring the W3C
// geolocation error numbering.
const (
	SensorErrorPermissionDenied    = 1
	SensorErrorPositionUnavailable = 2
	SensorErrorTimeout             = 3
)

// DevicePosition is what a client device reports: either coordinates from
// its location sensor, or the sensor error code when the fix failed.
type DevicePosition struct {
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	SensorError *int     `json:"sensor_error,omitempty"`
}

// LocationService resolves device positions and free-text addresses to
// usable locations.
type LocationService struct {
	geocoder providers.GeolocationProvider
}

// NewLocationService creates a new location service.
func NewLocationService(geocoder providers.GeolocationProvider) *LocationService {
	return &LocationService{geocoder: geocoder}
}

// ResolvePosition turns a device position report into a location. Sensor
// errors map to typed errors; reverse geocoding the address is best-effort
// and falls back to the raw coordinate string.
func (s *LocationService) ResolvePosition(ctx context.Context, position DevicePosition) (*entities.Location, error) {
	if position.SensorError != nil {
		switch *position.SensorError {
		case SensorErrorPermissionDenied:
			return nil, apperrors.NewUnauthorizedError("Location access denied by user.")
		case SensorErrorPositionUnavailable:
			return nil, apperrors.NewValidationError("Location information is unavailable.")
		case SensorErrorTimeout:
			return nil, apperrors.NewValidationError("Location request timed out.")
		default:
			return nil, apperrors.NewValidationError("Failed to get location")
		}
	}

	if position.Latitude == nil || position.Longitude == nil {
		return nil, apperrors.NewValidationError("latitude and longitude are required")
	}

	location := &entities.Location{
		Latitude:  *position.Latitude,
		Longitude: *position.Longitude,
	}
	location.Address = s.addressFor(ctx, location.Latitude, location.Longitude)

	return location, nil
}

// GeocodeAddress converts free text into coordinates. Zero results surface
// as a not-found error naming the address.
func (s *LocationService) GeocodeAddress(ctx context.Context, address string) (*entities.Location, error) {
	if address == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	geocoded, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, providers.ErrAddressNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Failed to find location for address: %s", address))
		}
		return nil, err
	}

	return &entities.Location{
		Latitude:  geocoded.Coordinates.Latitude,
		Longitude: geocoded.Coordinates.Longitude,
		Address:   geocoded.DisplayName,
	}, nil
}

// ReverseGeocode converts coordinates into an address string. It never
// fails: when the provider errors the raw "lat, lon" string is returned.
func (s *LocationService) ReverseGeocode(ctx context.Context, lat, lon float64) string {
	return s.addressFor(ctx, lat, lon)
}

func (s *LocationService) addressFor(ctx context.Context, lat, lon float64) string {
	fallback := fmt.Sprintf("%v, %v", lat, lon)
	if s.geocoder == nil {
		return fallback
	}

	geocoded, err := s.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil || geocoded.DisplayName == "" {
		log.Warn().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("Reverse geocoding failed")
		return fallback
	}
	return geocoded.DisplayName
}
