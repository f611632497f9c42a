package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSchoolsQuery := `
	CREATE TABLE IF NOT EXISTS schools (
		row_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		municipality TEXT NOT NULL,
		address TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		municipal_seats INTEGER NOT NULL,
		montessori_seats INTEGER NOT NULL,
		support_seats INTEGER NOT NULL
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        municipality TEXT NOT NULL,
        profile TEXT NOT NULL,
        geometry TEXT NOT NULL,
        duration_min REAL NOT NULL,
        distance_km REAL NOT NULL,
        PRIMARY KEY (origin, destination, municipality, profile)
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lon REAL NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_cache_destination_origin
    ON route_cache(destination, origin);
	`

	statements := []string{
		createSchoolsQuery,
		createRouteCacheQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
