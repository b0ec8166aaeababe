package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/repositories"
	tsclient "github.com/swasthly/healthassist/internal/infrastructure/clients/typesense"
)

// PharmaciesCollection is the Typesense collection holding pharmacy documents.
const PharmaciesCollection = "pharmacies"

// TypesenseAdapter implements pharmacy search using Typesense.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.PharmacySearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter.
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the pharmacy collection exists.
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(PharmaciesCollection).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: PharmaciesCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "address", Type: "string"},
			{Name: "services", Type: "string[]", Facet: pointer.True()},
			{Name: "location", Type: "geopoint"},
			{Name: "rating", Type: "float"},
			{Name: "review_count", Type: "int32"},
		},
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a pharmacy document.
func (a *TypesenseAdapter) Index(ctx context.Context, pharmacy *entities.Pharmacy) error {
	document := buildPharmacyDocument(pharmacy)
	if document == nil {
		return fmt.Errorf("pharmacy is required")
	}

	_, err := a.client.Client().Collection(PharmaciesCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index pharmacy: %w", err)
	}

	return nil
}

// Delete removes a pharmacy from the index.
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(PharmaciesCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete pharmacy from index: %w", err)
	}
	return nil
}

// Search returns pharmacies matching the query within the radius. Typesense
// sorts by geo distance from the search point, so results come back
// nearest-first.
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.PharmacyIndexParams) ([]*entities.Pharmacy, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		query = "*"
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name,address,services"),
		FilterBy: pointer.String(fmt.Sprintf("location:(%f, %f, %f km)", params.Latitude, params.Longitude, params.RadiusKm)),
		SortBy:   pointer.String(fmt.Sprintf("location(%f, %f):asc", params.Latitude, params.Longitude)),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(PharmaciesCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search pharmacies: %w", err)
	}

	pharmacies := []*entities.Pharmacy{}
	if result.Hits == nil {
		return pharmacies, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		var lat, lon float64
		if locInterface, ok := doc["location"].([]interface{}); ok && len(locInterface) == 2 {
			lat, _ = locInterface[0].(float64)
			lon, _ = locInterface[1].(float64)
		}

		pharmacy := &entities.Pharmacy{
			ID:      doc["id"].(string),
			Name:    doc["name"].(string),
			Address: doc["address"].(string),
			Location: entities.Location{
				Latitude:  lat,
				Longitude: lon,
			},
		}

		if val, ok := doc["rating"].(float64); ok {
			pharmacy.Rating = val
		}
		if val, ok := doc["review_count"].(float64); ok {
			pharmacy.ReviewCount = int(val)
		}
		if raw, ok := doc["services"].([]interface{}); ok {
			services := make([]string, 0, len(raw))
			for _, s := range raw {
				if str, ok := s.(string); ok {
					services = append(services, str)
				}
			}
			pharmacy.Services = services
		}

		pharmacies = append(pharmacies, pharmacy)
	}

	return pharmacies, nil
}

// buildPharmacyDocument flattens a pharmacy into the indexed document shape.
// Hours and computed fields stay out of the index; callers hydrate full
// records from the directory after a hit.
func buildPharmacyDocument(pharmacy *entities.Pharmacy) map[string]interface{} {
	if pharmacy == nil {
		return nil
	}

	services := make([]string, 0, len(pharmacy.Services))
	for _, s := range pharmacy.Services {
		s = strings.TrimSpace(s)
		if s != "" {
			services = append(services, s)
		}
	}

	return map[string]interface{}{
		"id":           pharmacy.ID,
		"name":         strings.TrimSpace(pharmacy.Name),
		"address":      strings.TrimSpace(pharmacy.Address),
		"services":     services,
		"location":     []float64{pharmacy.Location.Latitude, pharmacy.Location.Longitude},
		"rating":       pharmacy.Rating,
		"review_count": pharmacy.ReviewCount,
	}
}
