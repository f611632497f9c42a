package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"school-map-service/internal/domain"
	"school-map-service/internal/platform/obs"
	"school-map-service/internal/ports"
)

// HTTPClient allows the transport to be mocked in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeocodeCache is the memoization boundary for address lookups.
// Get returns nil on a miss.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (*domain.Coordinates, error)
	Put(ctx context.Context, address string, c domain.Coordinates) error
}

// NominatimGeocoder resolves free-text addresses through OpenStreetMap's
// Nominatim API. The public endpoint enforces fair use (1 request/second);
// cached hits never reach the network.
//
// A request that exceeds the client timeout is reported as a not-found, not
// a hard failure: the caller prompts the user to correct the address.
type NominatimGeocoder struct {
	client    HTTPClient
	baseURL   string
	userAgent string
	cache     GeocodeCache
}

func NewNominatimGeocoder(geocodeCache GeocodeCache) *NominatimGeocoder {
	return &NominatimGeocoder{
		client:    &http.Client{Timeout: 10 * time.Second},
		baseURL:   "https://nominatim.openstreetmap.org/search",
		userAgent: "school-map-service/1.0",
		cache:     geocodeCache,
	}
}

// NewNominatimGeocoderWithClient is used by tests to inject a transport.
func NewNominatimGeocoderWithClient(client HTTPClient, baseURL string, geocodeCache GeocodeCache) *NominatimGeocoder {
	return &NominatimGeocoder{
		client:    client,
		baseURL:   baseURL,
		userAgent: "school-map-service/1.0",
		cache:     geocodeCache,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves an address to coordinates.
// Returns ports.ErrAddressNotFound on an empty result set or a timeout.
func (n *NominatimGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("geocode: %w", ports.ErrAddressNotFound)
	}

	if n.cache != nil {
		hit, err := n.cache.Get(ctx, norm)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode: geocode cache: %w", err)
		}
		if hit != nil {
			return *hit, nil
		}
	}

	reqURL, err := url.Parse(n.baseURL)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: parse base URL: %w", err)
	}

	q := reqURL.Query()
	q.Set("q", norm)
	q.Set("format", "json")
	q.Set("limit", "1")
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		// Timeouts degrade to not-found so the user can retry with a
		// corrected address instead of seeing an internal failure.
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return domain.Coordinates{}, fmt.Errorf("geocode %q: timeout: %w", norm, ports.ErrAddressNotFound)
		}
		return domain.Coordinates{}, fmt.Errorf("geocode %q: execute request: %w", norm, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: unexpected status: %d", norm, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: decode response: %w", norm, err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, ports.ErrAddressNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: invalid latitude %q: %w", norm, results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: invalid longitude %q: %w", norm, results[0].Lon, err)
	}

	coords := domain.Coordinates{Lat: lat, Lon: lon}

	if n.cache != nil {
		if err := n.cache.Put(ctx, norm, coords); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coords, nil
}
