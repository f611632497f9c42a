package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"school-map-service/internal/domain"
)

// Postgres-backed implementation of the SchoolRepository port.
type SQLSchoolRepository struct{ DB *sql.DB }

func NewSQLSchoolRepository(db *sql.DB) *SQLSchoolRepository {
	return &SQLSchoolRepository{DB: db}
}

// Return all schools in source row order.
func (s *SQLSchoolRepository) ListSchools(ctx context.Context) ([]*domain.School, error) {
	if s.DB == nil {
		return nil, errors.New("sql school repository: DB is nil")
	}

	query := `
	SELECT
		row_id, name, municipality, address, lat, lon,
		municipal_seats, montessori_seats, support_seats
	FROM schools
	ORDER BY row_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schools: query schools table: %w", err)
	}
	defer rows.Close()

	schools := make([]*domain.School, 0, 64)
	for rows.Next() {
		var rec domain.School
		err := rows.Scan(
			&rec.RowID,
			&rec.Name,
			&rec.Municipality,
			&rec.Address,
			&rec.Position.Lat,
			&rec.Position.Lon,
			&rec.MunicipalSeats,
			&rec.MontessoriSeats,
			&rec.SupportSeats,
		)
		if err != nil {
			return nil, fmt.Errorf("list schools: scan row: %w", err)
		}
		schools = append(schools, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list schools: row iteration: %w", err)
	}

	return schools, nil
}
