package directory

import (
	"context"
	"fmt"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/repositories"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

// SeedAdapter serves the pharmacy directory from a fixed in-memory list.
// It stands in for a live directory API behind the same repository
// interface; List returns copies so callers can attach per-search computed
// fields without mutating the seed.
type SeedAdapter struct {
	pharmacies []*entities.Pharmacy
}

var _ repositories.PharmacyRepository = (*SeedAdapter)(nil)

// NewSeedAdapter creates a directory over the default seed list.
func NewSeedAdapter() *SeedAdapter {
	return &SeedAdapter{pharmacies: seedPharmacies()}
}

// NewSeedAdapterWithData creates a directory over a custom list (used for
// tests).
func NewSeedAdapterWithData(pharmacies []*entities.Pharmacy) *SeedAdapter {
	return &SeedAdapter{pharmacies: pharmacies}
}

// List returns every pharmacy in directory order
func (a *SeedAdapter) List(ctx context.Context) ([]*entities.Pharmacy, error) {
	out := make([]*entities.Pharmacy, len(a.pharmacies))
	for i, p := range a.pharmacies {
		out[i] = clonePharmacy(p)
	}
	return out, nil
}

// GetByID returns one pharmacy or a NOT_FOUND error
func (a *SeedAdapter) GetByID(ctx context.Context, id string) (*entities.Pharmacy, error) {
	for _, p := range a.pharmacies {
		if p.ID == id {
			return clonePharmacy(p), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("pharmacy with id %s not found", id))
}

func clonePharmacy(p *entities.Pharmacy) *entities.Pharmacy {
	copied := *p
	copied.Hours = make(map[string]string, len(p.Hours))
	for day, hours := range p.Hours {
		copied.Hours[day] = hours
	}
	copied.Services = append([]string(nil), p.Services...)
	return &copied
}

func allWeek(hours string) map[string]string {
	return map[string]string{
		"Monday":    hours,
		"Tuesday":   hours,
		"Wednesday": hours,
		"Thursday":  hours,
		"Friday":    hours,
		"Saturday":  hours,
		"Sunday":    hours,
	}
}

func weekWithSunday(weekday, sunday string) map[string]string {
	hours := allWeek(weekday)
	hours["Sunday"] = sunday
	return hours
}

func seedPharmacies() []*entities.Pharmacy {
	return []*entities.Pharmacy{
		{
			ID:          "apollo-mg-road",
			Name:        "Apollo Pharmacy",
			Address:     "123 MG Road, Mumbai, Maharashtra 400001",
			Location:    entities.Location{Latitude: 19.0760, Longitude: 72.8777},
			PhoneNumber: "+91 98765 43210",
			Website:     "https://www.apollopharmacy.in",
			Rating:      4.5,
			ReviewCount: 1250,
			Hours:       allWeek("24 hours"),
			Services:    []string{"Home Delivery", "Online Orders", "Prescription Refill", "Health Checkup"},
			PriceLevel:  2,
		},
		{
			ID:          "medplus-park-street",
			Name:        "MedPlus Health Services",
			Address:     "456 Park Street, Mumbai, Maharashtra 400002",
			Location:    entities.Location{Latitude: 19.0825, Longitude: 72.8811},
			PhoneNumber: "+91 98765 43211",
			Website:     "https://www.medplusmart.com",
			Rating:      4.3,
			ReviewCount: 890,
			Hours:       weekWithSunday("8:00 AM - 10:00 PM", "9:00 AM - 9:00 PM"),
			Services:    []string{"Home Delivery", "Health Checkup", "Insurance Accepted", "Digital Prescription"},
			PriceLevel:  2,
		},
		{
			ID:          "wellness-forever-linking",
			Name:        "Wellness Forever",
			Address:     "789 Linking Road, Mumbai, Maharashtra 400003",
			Location:    entities.Location{Latitude: 19.0544, Longitude: 72.8369},
			PhoneNumber: "+91 98765 43212",
			Website:     "https://www.wellnessforever.com",
			Rating:      4.2,
			ReviewCount: 567,
			Hours:       weekWithSunday("9:00 AM - 9:00 PM", "10:00 AM - 8:00 PM"),
			Services:    []string{"Online Orders", "Beauty Products", "Health Supplements", "Ayurvedic Medicines"},
			PriceLevel:  1,
		},
		{
			ID:          "guardian-bkc",
			Name:        "Guardian Pharmacy",
			Address:     "101 Bandra Kurla Complex, Mumbai, Maharashtra 400004",
			Location:    entities.Location{Latitude: 19.0728, Longitude: 72.8826},
			PhoneNumber: "+91 98765 43213",
			Rating:      4.6,
			ReviewCount: 1456,
			Hours:       weekWithSunday("7:00 AM - 11:00 PM", "8:00 AM - 10:00 PM"),
			Services:    []string{"Home Delivery", "Digital Prescription", "Senior Discounts", "Emergency Services"},
			PriceLevel:  3,
		},
		{
			ID:          "netmeds-andheri",
			Name:        "Netmeds Pharmacy",
			Address:     "234 Andheri East, Mumbai, Maharashtra 400069",
			Location:    entities.Location{Latitude: 19.1136, Longitude: 72.8697},
			PhoneNumber: "+91 98765 43214",
			Website:     "https://www.netmeds.com",
			Rating:      4.4,
			ReviewCount: 2134,
			Hours:       weekWithSunday("8:00 AM - 10:00 PM", "9:00 AM - 9:00 PM"),
			Services:    []string{"Home Delivery", "Online Orders", "Lab Tests", "Subscription Refills"},
			PriceLevel:  2,
		},
		{
			ID:          "dawai-dukan-bandra",
			Name:        "Dawai Dukan",
			Address:     "567 Hill Road, Bandra West, Mumbai 400050",
			Location:    entities.Location{Latitude: 19.0596, Longitude: 72.8295},
			PhoneNumber: "+91 98765 43215",
			Rating:      4.1,
			ReviewCount: 345,
			Hours:       weekWithSunday("9:00 AM - 11:00 PM", "10:00 AM - 10:00 PM"),
			Services:    []string{"Home Delivery", "Generic Medicines", "Prescription Upload", "Quick Delivery"},
			PriceLevel:  1,
		},
	}
}
