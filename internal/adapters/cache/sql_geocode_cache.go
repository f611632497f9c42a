package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"school-map-service/internal/domain"
)

// SQLGeocodeCache is the Postgres variant of the geocode cache.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Get returns the cached coordinates for an address, or nil on a miss.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (*domain.Coordinates, error) {
	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.New("get geocode cache: address must be non-empty")
	}

	q := `
	SELECT lat, lon
    FROM geocode_cache
    WHERE address = $1;
	`

	var c domain.Coordinates
	row := s.DB.QueryRowContext(ctx, q, address)
	if err := row.Scan(&c.Lat, &c.Lon); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return &c, nil
}

// Put stores an address -> coordinates mapping.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := `
	INSERT INTO geocode_cache (address, lat, lon)
    VALUES ($1, $2, $3)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`

	if _, err := s.DB.ExecContext(ctx, q, address, c.Lat, c.Lon); err != nil {
		return fmt.Errorf("insert geocode cache addr=%q: %w", address, err)
	}

	return nil
}
