package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/paveup/paveup/internal/config"
	"github.com/paveup/paveup/internal/models"
	"github.com/rs/zerolog/log"
)

// ReverseGeocoder looks up a human-readable address for coordinates.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, coords models.Coordinates) (models.Address, error)

	// Available returns whether this geocoder is configured for use.
	Available() bool
}

// NominatimClient reverse-geocodes through the OpenStreetMap Nominatim API.
// Responses are cached so repeated lookups for the same spot do not hit the
// service again.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	enabled    bool
	httpClient *http.Client
	cache      *cache.Cache
}

// NewNominatimClient creates a reverse geocoder from configuration.
func NewNominatimClient(cfg *config.GeocodingConfig) *NominatimClient {
	ttl := time.Duration(cfg.CacheTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &NominatimClient{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		enabled:    cfg.Enabled,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache.New(ttl, ttl),
	}
}

// Available returns whether the geocoder is enabled and configured.
func (c *NominatimClient) Available() bool {
	return c.enabled && c.baseURL != ""
}

type nominatimResponse struct {
	Address struct {
		Road     string `json:"road"`
		Suburb   string `json:"suburb"`
		Postcode string `json:"postcode"`
	} `json:"address"`
	Error string `json:"error,omitempty"`
}

// ReverseGeocode looks up the road or area and pincode for the coordinates.
// Failures return a zero Address and an error the caller may log and ignore.
func (c *NominatimClient) ReverseGeocode(ctx context.Context, coords models.Coordinates) (models.Address, error) {
	if !c.Available() {
		return models.Address{}, fmt.Errorf("reverse geocoding is not configured")
	}

	key := cacheKey(coords)
	if cached, found := c.cache.Get(key); found {
		return cached.(models.Address), nil
	}

	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		c.baseURL,
		url.QueryEscape(fmt.Sprintf("%.6f", coords.Lat)),
		url.QueryEscape(fmt.Sprintf("%.6f", coords.Lng)))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return models.Address{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Address{}, fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Address{}, fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Address{}, fmt.Errorf("failed to parse reverse geocode response: %w", err)
	}
	if result.Error != "" {
		return models.Address{}, fmt.Errorf("reverse geocode error: %s", result.Error)
	}

	addr := models.Address{
		RoadOrArea: result.Address.Road,
		Pincode:    result.Address.Postcode,
	}
	if addr.RoadOrArea == "" {
		addr.RoadOrArea = result.Address.Suburb
	}

	c.cache.Set(key, addr, cache.DefaultExpiration)
	log.Debug().Float64("lat", coords.Lat).Float64("lng", coords.Lng).Str("area", addr.RoadOrArea).Msg("Reverse geocoded")

	return addr, nil
}

// cacheKey rounds coordinates to four decimals (~11 m) so nearby lookups share
// a cache entry.
func cacheKey(coords models.Coordinates) string {
	return fmt.Sprintf("%.4f,%.4f", coords.Lat, coords.Lng)
}
