package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"school-map-service/internal/platform/obs"
)

// SQLite backed cache for route lookups. Only successful responses are
// stored; a routing failure stays absent so a later session may retry.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

// Get returns the cached route for the key, or nil on a miss.
func (s *SqliteRouteCache) Get(ctx context.Context, key RouteKey) (_ *CachedRoute, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}
	if key.Origin == "" || key.Destination == "" {
		return nil, errors.New("get route cache: origin and destination must be non-empty")
	}

	q := `
	SELECT
        geometry,
        duration_min,
        distance_km
    FROM route_cache
    WHERE origin = ?
        AND destination = ?
        AND municipality = ?
        AND profile = ?;
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
func (s *SqliteRouteCache) Put(ctx context.Context, key RouteKey, r CachedRoute) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key.Origin == "" || key.Destination == "" {
		return errors.New("insert route cache: origin and destination must be non-empty")
	}

	q := `
	INSERT OR REPLACE INTO route_cache (
        origin,
        destination,
        municipality,
        profile,
        geometry,
        duration_min,
        distance_km
    )
    VALUES (?, ?, ?, ?, ?, ?, ?);
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
