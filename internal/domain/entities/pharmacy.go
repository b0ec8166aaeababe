package entities

// HoursUnavailable is returned when a pharmacy has no hours recorded for the
// requested weekday.
const HoursUnavailable = "Hours not available"

// Pharmacy represents a pharmacy in the directory. IsOpen, Distance and
// DistanceText are computed per lookup relative to the caller's location and
// are never stored.
type Pharmacy struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	Location     Location          `json:"location"`
	PhoneNumber  string            `json:"phone_number"`
	Website      string            `json:"website,omitempty"`
	Rating       float64           `json:"rating"`
	ReviewCount  int               `json:"review_count,omitempty"`
	IsOpen       bool              `json:"is_open"`
	Hours        map[string]string `json:"hours"`
	Services     []string          `json:"services"`
	Distance     float64           `json:"distance,omitempty"`
	DistanceText string            `json:"distance_text,omitempty"`
	PriceLevel   int               `json:"price_level,omitempty"`
}

// PharmacySearchParams is the input for a directory search. RadiusKm nil
// means unset; an explicit radius is honored as given, zero included.
type PharmacySearchParams struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	RadiusKm  *float64 `json:"radius_km,omitempty"`
	Query     string   `json:"query,omitempty"`
	Limit     int      `json:"limit,omitempty"`
}

// PharmacySearchResult is rebuilt on every search call.
type PharmacySearchResult struct {
	Pharmacies     []*Pharmacy `json:"pharmacies"`
	TotalCount     int         `json:"total_count"`
	SearchLocation Location    `json:"search_location"`
}

// Location represents geographical coordinates with an optional
// human-readable address.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}
