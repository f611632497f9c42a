package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"school-map-service/internal/platform/obs"
)

// SQLRouteCache is the Postgres variant of the route cache, used when
// multiple instances share one cache database.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Get returns the cached route for the key, or nil on a miss.
func (s *SQLRouteCache) Get(ctx context.Context, key RouteKey) (_ *CachedRoute, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}
	if key.Origin == "" || key.Destination == "" {
		return nil, errors.New("get route cache: origin and destination must be non-empty")
	}

	q := `
	SELECT geometry, duration_min, distance_km
    FROM route_cache
    WHERE origin = $1
        AND destination = $2
        AND municipality = $3
        AND profile = $4;
	`

	var out CachedRoute
	row := s.DB.QueryRowContext(ctx, q, key.Origin, key.Destination, key.Municipality, key.Profile)
	if err := row.Scan(&out.Geometry, &out.DurationMin, &out.DistanceKm); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return &out, nil
}

// Put stores a successful route lookup.
func (s *SQLRouteCache) Put(ctx context.Context, key RouteKey, r CachedRoute) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key.Origin == "" || key.Destination == "" {
		return errors.New("insert route cache: origin and destination must be non-empty")
	}

	q := `
	INSERT INTO route_cache (origin, destination, municipality, profile, geometry, duration_min, distance_km)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (origin, destination, municipality, profile) DO UPDATE
	SET geometry = EXCLUDED.geometry,
		duration_min = EXCLUDED.duration_min,
		distance_km = EXCLUDED.distance_km;
	`

	if _, err := s.DB.ExecContext(
		ctx, q,
		key.Origin, key.Destination, key.Municipality, key.Profile,
		r.Geometry, r.DurationMin, r.DistanceKm,
	); err != nil {
		return fmt.Errorf("insert route cache dest=%q: %w", key.Destination, err)
	}

	return nil
}
