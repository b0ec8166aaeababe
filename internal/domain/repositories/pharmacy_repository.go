package repositories

import (
	"context"

	"github.com/swasthly/healthassist/internal/domain/entities"
)

// PharmacyRepository is the read boundary over the pharmacy directory. The
// default implementation serves a fixed seed list; a live data source can be
// substituted without touching the search pipeline.
type PharmacyRepository interface {
	// List returns every pharmacy in directory order
	List(ctx context.Context) ([]*entities.Pharmacy, error)

	// GetByID returns one pharmacy or a NOT_FOUND error
	GetByID(ctx context.Context, id string) (*entities.Pharmacy, error)
}

// PharmacyIndexParams are the inputs for an indexed geo search.
type PharmacyIndexParams struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Query     string
	Limit     int
}

// PharmacySearchRepository is a full-text/geo index over the directory.
type PharmacySearchRepository interface {
	// InitSchema ensures the backing collection exists
	InitSchema(ctx context.Context) error

	// Index upserts a pharmacy document
	Index(ctx context.Context, pharmacy *entities.Pharmacy) error

	// Delete removes a pharmacy from the index
	Delete(ctx context.Context, id string) error

	// Search returns pharmacies matching the query within the radius
	Search(ctx context.Context, params PharmacyIndexParams) ([]*entities.Pharmacy, error)
}
