package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema. Mirrors InitSchema for deployments that
// share the roster and caches across instances.
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS schools (
		row_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		municipality TEXT NOT NULL,
		address TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		municipal_seats INTEGER NOT NULL,
		montessori_seats INTEGER NOT NULL,
		support_seats INTEGER NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS route_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        municipality TEXT NOT NULL,
        profile TEXT NOT NULL,
        geometry TEXT NOT NULL,
        duration_min DOUBLE PRECISION NOT NULL,
        distance_km DOUBLE PRECISION NOT NULL,
        PRIMARY KEY (origin, destination, municipality, profile)
    );
	`,
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL
    );
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_route_cache_destination_origin
    ON route_cache(destination, origin);
	`,
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

// SeedFromCSVPostgres loads the roster file into the Postgres schools table.
func SeedFromCSVPostgres(db *sql.DB, csvPath string) error {
	schools, err := LoadRosterFile(csvPath)
	if err != nil {
		return fmt.Errorf("seed schools: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed schools: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO schools (
		row_id, name, municipality, address, lat, lon,
		municipal_seats, montessori_seats, support_seats
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (row_id) DO UPDATE
	SET name = EXCLUDED.name,
		municipality = EXCLUDED.municipality,
		address = EXCLUDED.address,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		municipal_seats = EXCLUDED.municipal_seats,
		montessori_seats = EXCLUDED.montessori_seats,
		support_seats = EXCLUDED.support_seats;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed schools: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range schools {
		_, err := stmt.Exec(
			s.RowID, s.Name, s.Municipality, s.Address,
			s.Position.Lat, s.Position.Lon,
			s.MunicipalSeats, s.MontessoriSeats, s.SupportSeats,
		)
		if err != nil {
			return fmt.Errorf("seed schools: insert row_id=%d: %w", s.RowID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed schools: commit tx: %w", err)
	}

	return nil
}
