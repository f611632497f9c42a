package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-map-service/internal/adapters/cache"
	"school-map-service/internal/domain"
	"school-map-service/internal/geo"
)

type memRouteCache struct {
	mu      sync.Mutex
	entries map[cache.RouteKey]cache.CachedRoute
}

func newMemRouteCache() *memRouteCache {
	return &memRouteCache{entries: make(map[cache.RouteKey]cache.CachedRoute)}
}

func (c *memRouteCache) Get(_ context.Context, key cache.RouteKey) (*cache.CachedRoute, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.entries[key]; ok {
		return &r, nil
	}
	return nil, nil
}

func (c *memRouteCache) Put(_ context.Context, key cache.RouteKey, r cache.CachedRoute) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = r
	return nil
}

var (
	testStart = domain.Coordinates{Lat: 45.0, Lon: 9.0}
	testEnd   = domain.Coordinates{Lat: 45.0746, Lon: 9.0153}
)

func testProvider(baseURL string, routeCache RouteCache) *ORSRouteProvider {
	return &ORSRouteProvider{
		session: http.DefaultClient,
		apiKey:  "test-key",
		baseURL: baseURL,
		cache:   routeCache,
	}
}

func directionsHandler(t *testing.T, hits *int, geometry string, distance, duration float64) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		*hits++

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/directions/cycling-regular", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		var body directionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Coordinates, 2)
		// The wire order is [lon, lat].
		assert.Equal(t, []float64{testStart.Lon, testStart.Lat}, body.Coordinates[0])
		assert.Equal(t, []float64{testEnd.Lon, testEnd.Lat}, body.Coordinates[1])

		resp := directionsResponse{}
		resp.Routes = append(resp.Routes, struct {
			Summary  routeSummary `json:"summary"`
			Geometry string       `json:"geometry"`
		}{
			Summary:  routeSummary{Distance: distance, Duration: duration},
			Geometry: geometry,
		})
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestFetchRouteDecodesAndRounds(t *testing.T) {
	points := []domain.Coordinates{testStart, {Lat: 45.03, Lon: 9.01}, testEnd}
	geometry := geo.EncodePolyline(points)

	hits := 0
	srv := httptest.NewServer(directionsHandler(t, &hits, geometry, 9140, 1950))
	defer srv.Close()

	provider := testProvider(srv.URL, nil)

	route, err := provider.FetchRoute(context.Background(), testStart, testEnd, "Brugherio", "cycling-regular")
	require.NoError(t, err)

	assert.Equal(t, 32.5, route.DurationMin) // 1950 s
	assert.Equal(t, 9.1, route.DistanceKm)   // 9140 m

	require.Len(t, route.Points, 3)
	assert.InDelta(t, testStart.Lat, route.Points[0].Lat, 1e-5)
	assert.InDelta(t, testEnd.Lon, route.Points[2].Lon, 1e-5)

	assert.Equal(t, 1, hits)
}

func TestFetchRouteMemoizes(t *testing.T) {
	geometry := geo.EncodePolyline([]domain.Coordinates{testStart, testEnd})

	hits := 0
	srv := httptest.NewServer(directionsHandler(t, &hits, geometry, 9140, 1950))
	defer srv.Close()

	provider := testProvider(srv.URL, newMemRouteCache())

	first, err := provider.FetchRoute(context.Background(), testStart, testEnd, "Brugherio", "cycling-regular")
	require.NoError(t, err)
	second, err := provider.FetchRoute(context.Background(), testStart, testEnd, "Brugherio", "cycling-regular")
	require.NoError(t, err)

	assert.Equal(t, 1, hits, "second lookup must be served from the cache")
	assert.Equal(t, first.DurationMin, second.DurationMin)
	assert.Equal(t, first.DistanceKm, second.DistanceKm)
	assert.Equal(t, first.Points, second.Points)
}

func TestFetchRouteCacheKeyIncludesProfile(t *testing.T) {
	geometry := geo.EncodePolyline([]domain.Coordinates{testStart, testEnd})

	hits := 0
	srv := httptest.NewServer(func() http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			hits++
			resp := directionsResponse{}
			resp.Routes = append(resp.Routes, struct {
				Summary  routeSummary `json:"summary"`
				Geometry string       `json:"geometry"`
			}{
				Summary:  routeSummary{Distance: 9140, Duration: 1950},
				Geometry: geometry,
			})
			json.NewEncoder(w).Encode(resp)
		}
	}())
	defer srv.Close()

	provider := testProvider(srv.URL, newMemRouteCache())

	_, err := provider.FetchRoute(context.Background(), testStart, testEnd, "Brugherio", "cycling-regular")
	require.NoError(t, err)
	_, err = provider.FetchRoute(context.Background(), testStart, testEnd, "Brugherio", "foot-walking")
	require.NoError(t, err)

	assert.Equal(t, 2, hits, "a different profile must not hit the cached entry")
}

func TestFetchRouteZeroRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"routes": []}`))
	}))
	defer srv.Close()

	provider := testProvider(srv.URL, nil)

	_, err := provider.FetchRoute(context.Background(), testStart, testEnd, "Brugherio", "cycling-regular")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero routes")
}

func TestFetchRouteEmptyProfile(t *testing.T) {
	provider := testProvider("http://unused", nil)

	_, err := provider.FetchRoute(context.Background(), testStart, testEnd, "Brugherio", "")
	require.Error(t, err)
}

func TestNewORSRouteProviderRejectsEmptyKey(t *testing.T) {
	_, err := NewORSRouteProvider("", nil)
	assert.Error(t, err)
}
