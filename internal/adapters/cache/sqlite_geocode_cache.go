package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"school-map-service/internal/domain"
)

// SQLite backed cache mapping address strings to geographic coordinates.
// Address keys are expected to be normalized by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Get returns the cached coordinates for an address, or nil on a miss.
func (s *SqliteGeocodeCache) Get(ctx context.Context, address string) (*domain.Coordinates, error) {
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
    WHERE address = ?;
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
func (s *SqliteGeocodeCache) Put(ctx context.Context, address string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
        address,
        lat,
        lon
    )
    VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, address, c.Lat, c.Lon); err != nil {
		return fmt.Errorf("insert geocode cache addr=%q: %w", address, err)
	}

	return nil
}
