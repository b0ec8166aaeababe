package services

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swasthly/healthassist/internal/domain/entities"
	"github.com/swasthly/healthassist/internal/domain/repositories"
	"github.com/swasthly/healthassist/pkg/geo"
)

const (
	defaultSearchRadiusKm = 10.0
	defaultSearchLimit    = 20
)

var hoursRangePattern = regexp.MustCompile(`(?i)(\d{1,2}:\d{2})\s*(AM|PM)?\s*-\s*(\d{1,2}:\d{2})\s*(AM|PM)?`)

// PharmacyService handles business logic for the pharmacy locator.
type PharmacyService struct {
	repo       repositories.PharmacyRepository
	searchRepo repositories.PharmacySearchRepository
	now        func() time.Time
}

// NewPharmacyService creates a new pharmacy service. searchRepo may be nil,
// in which case searches run against the directory directly.
func NewPharmacyService(repo repositories.PharmacyRepository, searchRepo repositories.PharmacySearchRepository) *PharmacyService {
	return &PharmacyService{
		repo:       repo,
		searchRepo: searchRepo,
		now:        time.Now,
	}
}

// Search finds pharmacies near a location. Results are filtered by the text
// query, restricted to the radius, sorted nearest first and truncated to the
// limit. Open state, distance and distance text are computed per call.
func (s *PharmacyService) Search(ctx context.Context, params entities.PharmacySearchParams) (*entities.PharmacySearchResult, error) {
	// An explicit radius is honored as given: zero keeps only pharmacies at
	// the exact search coordinates.
	radius := defaultSearchRadiusKm
	if params.RadiusKm != nil {
		radius = *params.RadiusKm
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	pharmacies, err := s.candidates(ctx, params, radius, limit)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(params.Query))
	matched := make([]*entities.Pharmacy, 0, len(pharmacies))
	for _, pharmacy := range pharmacies {
		if query != "" && !matchesQuery(pharmacy, query) {
			continue
		}

		pharmacy.Distance = geo.Distance(params.Latitude, params.Longitude, pharmacy.Location.Latitude, pharmacy.Location.Longitude)
		if pharmacy.Distance > radius {
			continue
		}
		pharmacy.DistanceText = geo.FormatDistance(pharmacy.Distance)
		pharmacy.IsOpen = s.isOpenNow(pharmacy)

		matched = append(matched, pharmacy)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Distance < matched[j].Distance
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	return &entities.PharmacySearchResult{
		Pharmacies: matched,
		TotalCount: len(matched),
		SearchLocation: entities.Location{
			Latitude:  params.Latitude,
			Longitude: params.Longitude,
		},
	}, nil
}

// candidates fetches the pharmacies to score. The search index narrows the
// candidate set when available; the directory is the fallback.
func (s *PharmacyService) candidates(ctx context.Context, params entities.PharmacySearchParams, radius float64, limit int) ([]*entities.Pharmacy, error) {
	// A zero-radius geo filter would drop exact-coordinate hits at the index;
	// the precise cut happens on recomputed distances in Search.
	if s.searchRepo != nil && radius > 0 {
		indexed, err := s.searchRepo.Search(ctx, repositories.PharmacyIndexParams{
			Latitude:  params.Latitude,
			Longitude: params.Longitude,
			RadiusKm:  radius,
			Query:     params.Query,
			Limit:     limit,
		})
		if err == nil {
			// Index hits carry partial records; hydrate from the directory.
			hydrated := make([]*entities.Pharmacy, 0, len(indexed))
			for _, hit := range indexed {
				full, err := s.repo.GetByID(ctx, hit.ID)
				if err != nil {
					log.Warn().Err(err).Str("pharmacy_id", hit.ID).Msg("Indexed pharmacy missing from directory")
					continue
				}
				hydrated = append(hydrated, full)
			}
			return hydrated, nil
		}
		log.Warn().Err(err).Msg("Pharmacy index search failed, falling back to directory scan")
	}

	return s.repo.List(ctx)
}

// GetDetails returns one pharmacy with its open state recomputed. Distance
// fields stay zero since no caller location is known here.
func (s *PharmacyService) GetDetails(ctx context.Context, id string) (*entities.Pharmacy, error) {
	pharmacy, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pharmacy.IsOpen = s.isOpenNow(pharmacy)
	return pharmacy, nil
}

// PopularChains returns well-known pharmacy chain names for search
// suggestions.
func (s *PharmacyService) PopularChains() []string {
	return []string{
		"Apollo Pharmacy",
		"MedPlus",
		"Wellness Forever",
		"Guardian Pharmacy",
		"Netmeds",
		"1mg",
		"PharmEasy",
		"Dawai Dukan",
	}
}

// DirectionsURL builds a Google Maps link for a pharmacy. With an origin it
// returns turn-by-turn directions, otherwise a place search on the address.
func (s *PharmacyService) DirectionsURL(pharmacy *entities.Pharmacy, origin *entities.Location) string {
	destination := fmt.Sprintf("%v,%v", pharmacy.Location.Latitude, pharmacy.Location.Longitude)
	if origin != nil {
		return fmt.Sprintf("https://www.google.com/maps/dir/%v,%v/%s", origin.Latitude, origin.Longitude, destination)
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(pharmacy.Address)
}

// TodayHours returns the pharmacy's hours for the current weekday.
func (s *PharmacyService) TodayHours(pharmacy *entities.Pharmacy) string {
	today := s.now().Weekday().String()
	if hours, ok := pharmacy.Hours[today]; ok && hours != "" {
		return hours
	}
	return entities.HoursUnavailable
}

// FormatPhoneForCalling strips everything but digits and the leading plus so
// the number can go straight into a tel: link.
func FormatPhoneForCalling(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func matchesQuery(pharmacy *entities.Pharmacy, query string) bool {
	if strings.Contains(strings.ToLower(pharmacy.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(pharmacy.Address), query) {
		return true
	}
	for _, service := range pharmacy.Services {
		if strings.Contains(strings.ToLower(service), query) {
			return true
		}
	}
	return false
}

// isOpenNow evaluates the current weekday's hours string. Missing or
// malformed hours count as closed.
func (s *PharmacyService) isOpenNow(pharmacy *entities.Pharmacy) bool {
	now := s.now()
	todayHours, ok := pharmacy.Hours[now.Weekday().String()]
	if !ok || todayHours == "" {
		return false
	}

	if strings.Contains(todayHours, "24 hours") {
		return true
	}
	if strings.Contains(strings.ToLower(todayHours), "closed") {
		return false
	}

	match := hoursRangePattern.FindStringSubmatch(todayHours)
	if match == nil {
		return false
	}

	openTime := parseClockTime(match[1], match[2])
	closeTime := parseClockTime(match[3], match[4])
	currentTime := now.Hour()*100 + now.Minute()

	return currentTime >= openTime && currentTime <= closeTime
}

// parseClockTime converts "9:00" + "PM" into an HHMM integer for comparison.
func parseClockTime(clock, period string) int {
	parts := strings.SplitN(clock, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes := 0
	if len(parts) == 2 {
		minutes, _ = strconv.Atoi(parts[1])
	}

	switch strings.ToUpper(period) {
	case "PM":
		if hours != 12 {
			hours += 12
		}
	case "AM":
		if hours == 12 {
			hours = 0
		}
	}

	return hours*100 + minutes
}
