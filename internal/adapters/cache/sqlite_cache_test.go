package cache

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"school-map-service/internal/domain"
)

func openCacheDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	statements := []string{
		`CREATE TABLE route_cache (
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			municipality TEXT NOT NULL,
			profile TEXT NOT NULL,
			geometry TEXT NOT NULL,
			duration_min REAL NOT NULL,
			distance_km REAL NOT NULL,
			PRIMARY KEY (origin, destination, municipality, profile)
		);`,
		`CREATE TABLE geocode_cache (
			address TEXT PRIMARY KEY,
			lat REAL NOT NULL,
			lon REAL NOT NULL
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}

func TestSqliteRouteCacheRoundTrip(t *testing.T) {
	c := NewSqliteRouteCache(openCacheDB(t))
	ctx := context.Background()

	key := RouteKey{
		Origin:       "45.000000,9.000000",
		Destination:  "45.074600,9.015300",
		Municipality: "Brugherio",
		Profile:      "cycling-regular",
	}

	hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get (miss): %v", err)
	}
	if hit != nil {
		t.Fatal("expected nil on cache miss")
	}

	stored := CachedRoute{Geometry: "_p~iF~ps|U", DurationMin: 32.5, DistanceKm: 9.1}
	if err := c.Put(ctx, key, stored); err != nil {
		t.Fatalf("Put: %v", err)
	}

	hit, err = c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get (hit): %v", err)
	}
	if hit == nil {
		t.Fatal("expected a cache hit")
	}
	if *hit != stored {
		t.Errorf("got %+v, want %+v", *hit, stored)
	}

	// A different profile is a distinct entry.
	other := key
	other.Profile = "foot-walking"
	hit, err = c.Get(ctx, other)
	if err != nil {
		t.Fatalf("Get (other profile): %v", err)
	}
	if hit != nil {
		t.Error("profile must participate in the cache key")
	}
}

func TestSqliteRouteCachePutReplaces(t *testing.T) {
	c := NewSqliteRouteCache(openCacheDB(t))
	ctx := context.Background()

	key := RouteKey{Origin: "a", Destination: "b", Municipality: "m", Profile: "p"}

	if err := c.Put(ctx, key, CachedRoute{Geometry: "x", DurationMin: 1, DistanceKm: 1}); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := c.Put(ctx, key, CachedRoute{Geometry: "y", DurationMin: 2, DistanceKm: 2}); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit == nil || hit.Geometry != "y" {
		t.Errorf("got %+v, want replaced entry", hit)
	}
}

func TestSqliteRouteCacheRejectsEmptyEndpoints(t *testing.T) {
	c := NewSqliteRouteCache(openCacheDB(t))

	if _, err := c.Get(context.Background(), RouteKey{}); err == nil {
		t.Error("Get accepted an empty key")
	}
	if err := c.Put(context.Background(), RouteKey{}, CachedRoute{}); err == nil {
		t.Error("Put accepted an empty key")
	}
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	c := NewSqliteGeocodeCache(openCacheDB(t))
	ctx := context.Background()

	hit, err := c.Get(ctx, "Via Roma 1, Brugherio")
	if err != nil {
		t.Fatalf("Get (miss): %v", err)
	}
	if hit != nil {
		t.Fatal("expected nil on cache miss")
	}

	coords := domain.Coordinates{Lat: 45.5031, Lon: 9.3008}
	if err := c.Put(ctx, "Via Roma 1, Brugherio", coords); err != nil {
		t.Fatalf("Put: %v", err)
	}

	hit, err = c.Get(ctx, "Via Roma 1, Brugherio")
	if err != nil {
		t.Fatalf("Get (hit): %v", err)
	}
	if hit == nil || *hit != coords {
		t.Errorf("got %+v, want %+v", hit, coords)
	}
}
