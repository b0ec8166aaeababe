package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/swasthly/healthassist/internal/domain/providers"
)

const (
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 30
	defaultReverseCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
)

// NominatimProvider implements the GeolocationProvider using the public
// OpenStreetMap Nominatim API. Requests are unauthenticated GETs; Nominatim
// asks for an identifying User-Agent, which is configurable.
type NominatimProvider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      providers.CacheProvider
}

// NewNominatimProvider creates a new Nominatim geolocation provider.
func NewNominatimProvider(baseURL, userAgent string, cache providers.CacheProvider) providers.GeolocationProvider {
	return NewNominatimProviderWithOptions(baseURL, userAgent, cache, nil)
}

// NewNominatimProviderWithOptions allows overriding the HTTP client (used
// for tests).
func NewNominatimProviderWithOptions(baseURL, userAgent string, cache providers.CacheProvider, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &NominatimProvider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
		cache:      cache,
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode converts free text to a geocoded address.
func (p *NominatimProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedAddress, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, fmt.Errorf("address is required")
	}

	cacheKey := "geo:v1:geocode:" + hashKey(strings.ToLower(trimmed))
	if cached := p.cachedAddress(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", trimmed)
	params.Set("limit", "1")

	var results []nominatimResult
	if err := p.doRequest(ctx, p.baseURL+"/search?"+params.Encode(), &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, providers.ErrAddressNotFound
	}

	addr, err := resultToAddress(results[0])
	if err != nil {
		return nil, err
	}

	p.storeAddress(ctx, cacheKey, addr, defaultGeocodeCacheTTL)
	return addr, nil
}

// ReverseGeocode converts coordinates to an address.
func (p *NominatimProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	cacheKey := "geo:v1:reverse:" + hashKey(fmt.Sprintf("%.5f,%.5f", lat, lon))
	if cached := p.cachedAddress(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("zoom", "18")
	params.Set("addressdetails", "1")

	var result nominatimResult
	if err := p.doRequest(ctx, p.baseURL+"/reverse?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	if result.DisplayName == "" {
		return nil, providers.ErrAddressNotFound
	}

	addr := &providers.GeocodedAddress{
		DisplayName: result.DisplayName,
		Coordinates: providers.Coordinates{Latitude: lat, Longitude: lon},
	}

	p.storeAddress(ctx, cacheKey, addr, defaultReverseCacheTTL)
	return addr, nil
}

func (p *NominatimProvider) doRequest(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build geocode request: %w", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode geocode response: %w", err)
	}
	return nil
}

func (p *NominatimProvider) cachedAddress(ctx context.Context, key string) *providers.GeocodedAddress {
	if p.cache == nil {
		return nil
	}
	cached, err := p.cache.Get(ctx, key)
	if err != nil || len(cached) == 0 {
		return nil
	}
	var addr providers.GeocodedAddress
	if err := json.Unmarshal(cached, &addr); err != nil {
		return nil
	}
	if addr.Coordinates.Latitude == 0 && addr.Coordinates.Longitude == 0 {
		return nil
	}
	return &addr
}

func (p *NominatimProvider) storeAddress(ctx context.Context, key string, addr *providers.GeocodedAddress, ttl int) {
	if p.cache == nil {
		return
	}
	if payload, err := json.Marshal(addr); err == nil {
		_ = p.cache.Set(ctx, key, payload, ttl)
	}
}

func resultToAddress(result nominatimResult) (*providers.GeocodedAddress, error) {
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocode response: %w", err)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocode response: %w", err)
	}
	return &providers.GeocodedAddress{
		DisplayName: result.DisplayName,
		Coordinates: providers.Coordinates{Latitude: lat, Longitude: lon},
	}, nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
