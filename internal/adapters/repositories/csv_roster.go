package repositories

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"school-map-service/internal/domain"
)

// Required roster columns. The source file carries embedded spaces in two of
// the capacity headers; headers are matched exactly after whitespace trimming.
const (
	colName         = "Denominazione"
	colMunicipality = "Comune"
	colAddress      = "Indirizzo"
	colLat          = "latitudine"
	colLon          = "longitudine"
	colMunicipal    = "sum_COMUNE"
	colMontessori   = "sum_CON METODO MONTESSORI"
	colSupport      = "sum_SOSTEGNO PSICOFISICO"
)

// ParseRosterCSV reads the school roster from a CSV stream.
// Row order defines record identity; no uniqueness is enforced.
// A missing required column is an explicit error naming the column.
func ParseRosterCSV(r io.Reader) ([]*domain.School, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("parse roster: read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	required := []string{
		colName, colMunicipality, colAddress, colLat, colLon,
		colMunicipal, colMontessori, colSupport,
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("parse roster: missing required column %q", col)
		}
	}

	field := func(record []string, col string) (string, error) {
		i := idx[col]
		if i >= len(record) {
			return "", fmt.Errorf("column %q out of range", col)
		}
		return strings.TrimSpace(record[i]), nil
	}

	schools := make([]*domain.School, 0, 64)
	rowID := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse roster: read row %d: %w", rowID+1, err)
		}

		rowID++
		s := &domain.School{RowID: rowID}

		if s.Name, err = field(record, colName); err != nil {
			return nil, fmt.Errorf("parse roster: row %d: %w", rowID, err)
		}
		if s.Municipality, err = field(record, colMunicipality); err != nil {
			return nil, fmt.Errorf("parse roster: row %d: %w", rowID, err)
		}
		if s.Address, err = field(record, colAddress); err != nil {
			return nil, fmt.Errorf("parse roster: row %d: %w", rowID, err)
		}

		if s.Position.Lat, err = parseFloatField(record, idx, colLat, rowID); err != nil {
			return nil, err
		}
		if s.Position.Lon, err = parseFloatField(record, idx, colLon, rowID); err != nil {
			return nil, err
		}

		if s.MunicipalSeats, err = parseSeatField(record, idx, colMunicipal, rowID); err != nil {
			return nil, err
		}
		if s.MontessoriSeats, err = parseSeatField(record, idx, colMontessori, rowID); err != nil {
			return nil, err
		}
		if s.SupportSeats, err = parseSeatField(record, idx, colSupport, rowID); err != nil {
			return nil, err
		}

		schools = append(schools, s)
	}

	return schools, nil
}

// LoadRosterFile opens and parses the roster CSV.
// Absence of the file is a recoverable, user-visible error; the caller halts.
func LoadRosterFile(path string) ([]*domain.School, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load roster: open %q: %w", path, err)
	}
	defer f.Close()

	return ParseRosterCSV(f)
}

func parseFloatField(record []string, idx map[string]int, col string, rowID int) (float64, error) {
	i := idx[col]
	if i >= len(record) {
		return 0, fmt.Errorf("parse roster: row %d: column %q out of range", rowID, col)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
	if err != nil {
		return 0, fmt.Errorf("parse roster: row %d: column %q: %w", rowID, col, err)
	}
	return v, nil
}

func parseSeatField(record []string, idx map[string]int, col string, rowID int) (int, error) {
	i := idx[col]
	if i >= len(record) {
		return 0, fmt.Errorf("parse roster: row %d: column %q out of range", rowID, col)
	}

	raw := strings.TrimSpace(record[i])
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse roster: row %d: column %q: %w", rowID, col, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("parse roster: row %d: column %q: negative seat count %d", rowID, col, v)
	}
	return v, nil
}
