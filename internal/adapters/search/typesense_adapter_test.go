package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swasthly/healthassist/internal/domain/entities"
)

func TestBuildPharmacyDocument(t *testing.T) {
	pharmacy := &entities.Pharmacy{
		ID:      "apollo-mg-road",
		Name:    " Apollo Pharmacy ",
		Address: "MG Road, Fort, Mumbai",
		Location: entities.Location{
			Latitude:  19.0760,
			Longitude: 72.8777,
		},
		Rating:      4.5,
		ReviewCount: 120,
		Services:    []string{"Prescription", " Delivery ", ""},
	}

	doc := buildPharmacyDocument(pharmacy)

	assert.Equal(t, "apollo-mg-road", doc["id"])
	assert.Equal(t, "Apollo Pharmacy", doc["name"])
	assert.Equal(t, []float64{19.0760, 72.8777}, doc["location"])
	assert.Equal(t, []string{"Prescription", "Delivery"}, doc["services"])
	assert.Equal(t, 4.5, doc["rating"])
	assert.Equal(t, 120, doc["review_count"])
}

func TestBuildPharmacyDocumentNil(t *testing.T) {
	assert.Nil(t, buildPharmacyDocument(nil))
}
