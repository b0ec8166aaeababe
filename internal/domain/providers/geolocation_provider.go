package providers

import (
	"context"
	"errors"
)

// ErrAddressNotFound is returned by Geocode when the geocoding service
// yields zero results for the given text.
var ErrAddressNotFound = errors.New("address not found")

// GeolocationProvider defines the interface for geocoding services
type GeolocationProvider interface {
	// Geocode converts free-text to a geocoded address
	Geocode(ctx context.Context, address string) (*GeocodedAddress, error)

	// ReverseGeocode converts coordinates to an address
	ReverseGeocode(ctx context.Context, lat, lon float64) (*GeocodedAddress, error)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// GeocodedAddress represents a geocoded address
type GeocodedAddress struct {
	DisplayName string
	Coordinates Coordinates
}
