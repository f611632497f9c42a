package routing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"school-map-service/internal/adapters/cache"
	"school-map-service/internal/domain"
	"school-map-service/internal/geo"
	"school-map-service/internal/platform/obs"
)

// RouteCache is the memoization boundary for directions lookups.
// Get returns nil on a miss; only successes are ever stored.
type RouteCache interface {
	Get(ctx context.Context, key cache.RouteKey) (*cache.CachedRoute, error)
	Put(ctx context.Context, key cache.RouteKey, r cache.CachedRoute) error
}

// ORSRouteProvider implements RouteProvider using OpenRouteService.
//
// It coordinates:
//   - Persistent route caching keyed on endpoints, municipality and profile
//   - External directions calls with retry/backoff and a per-call timeout
//   - A shared rate limiter as a courtesy toward the public API
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	cache   RouteCache
}

func NewORSRouteProvider(apiKey string, routeCache RouteCache) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSRouteProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		// The free ORS tier allows 40 directions requests per minute.
		limiter: rate.NewLimiter(rate.Every(1500*time.Millisecond), 1),
		cache:   routeCache,
	}

	return provider, nil
}

// coordKey formats an endpoint as a stable cache key component.
func coordKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FetchRoute returns the route from start to end for the given travel
// profile. Cached results are served without touching the external service.
func (o *ORSRouteProvider) FetchRoute(
	ctx context.Context,
	start domain.Coordinates,
	end domain.Coordinates,
	municipality string,
	profile string,
) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "ors.FetchRoute")(&err)

	if profile == "" {
		return nil, errors.New("fetch route: profile must be non-empty")
	}

	key := cache.RouteKey{
		Origin:       coordKey(start),
		Destination:  coordKey(end),
		Municipality: municipality,
		Profile:      profile,
	}

	if o.cache != nil {
		hit, err := o.cache.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("fetch route: route cache: %w", err)
		}
		if hit != nil {
			points, err := geo.DecodePolyline(hit.Geometry)
			if err != nil {
				return nil, fmt.Errorf("fetch route: decode cached geometry: %w", err)
			}
			return &domain.RouteResult{
				Points:      points,
				DurationMin: hit.DurationMin,
				DistanceKm:  hit.DistanceKm,
			}, nil
		}
	}

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("fetch route: rate limit wait: %w", err)
		}
	}

	geometry, summary, err := o.fetchDirections(ctx, start, end, profile)
	if err != nil {
		return nil, fmt.Errorf("fetch route %s -> %s: %w", key.Origin, key.Destination, err)
	}

	points, err := geo.DecodePolyline(geometry)
	if err != nil {
		return nil, fmt.Errorf("fetch route: decode geometry: %w", err)
	}

	result := &domain.RouteResult{
		Points:      points,
		DurationMin: round1(summary.Duration / 60),
		DistanceKm:  round1(summary.Distance / 1000),
	}

	if o.cache != nil {
		put := cache.CachedRoute{
			Geometry:    geometry,
			DurationMin: result.DurationMin,
			DistanceKm:  result.DistanceKm,
		}
		if err := o.cache.Put(ctx, key, put); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return result, nil
}
