package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"school-map-service/internal/domain"
)

// SQLite-backed implementation of the SchoolRepository port.
type SqliteSchoolRepository struct{ DB *sql.DB }

func NewSqliteSchoolRepository(db *sql.DB) *SqliteSchoolRepository {
	return &SqliteSchoolRepository{DB: db}
}

// Return all schools in source row order.
func (s *SqliteSchoolRepository) ListSchools(ctx context.Context) ([]*domain.School, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite school repository: DB is nil")
	}

	query := `
	SELECT
		row_id,
		name,
		municipality,
		address,
		lat,
		lon,
		municipal_seats,
		montessori_seats,
		support_seats
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

// SeedFromCSV loads the roster file into the schools table, replacing
// previously imported rows with the same row_id.
func SeedFromCSV(db *sql.DB, csvPath string) error {
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
	INSERT OR REPLACE INTO schools (
		row_id,
		name,
		municipality,
		address,
		lat,
		lon,
		municipal_seats,
		montessori_seats,
		support_seats
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
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
