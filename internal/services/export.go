package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// placeholder rendered for route fields when no route is available.
const routePlaceholder = "?"

var exportHeader = []string{
	"Nome",
	"Comune",
	"Indirizzo",
	"Distanza (km)",
	"Distanza_Bici (km)",
	"Fascia",
	"Posti_COMUNE",
	"Posti_Montessori",
	"Posti_Sostegno",
}

// WriteCSV writes the filtered table as a comma-separated export.
// Rows follow the model's order (sorted by distance).
func WriteCSV(w io.Writer, model *RenderModel) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write export: header: %w", err)
	}

	for _, v := range model.Schools {
		bikeKm := routePlaceholder
		if v.Route != nil {
			bikeKm = strconv.FormatFloat(v.Route.DistanceKm, 'f', 1, 64)
		}

		row := []string{
			v.School.Name,
			v.School.Municipality,
			v.School.Address,
			strconv.FormatFloat(v.DistanceKm, 'f', 1, 64),
			bikeKm,
			string(v.Band),
			strconv.Itoa(v.School.MunicipalSeats),
			strconv.Itoa(v.School.MontessoriSeats),
			strconv.Itoa(v.School.SupportSeats),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write export: row for %q: %w", v.School.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write export: flush: %w", err)
	}

	return nil
}

// ExportFilename derives the download name from the selected bands.
func ExportFilename(criteria FilterCriteria) string {
	if len(criteria.Bands) == 0 {
		return "scuole_filtrate.csv"
	}

	labels := make([]string, 0, len(criteria.Bands))
	for _, b := range criteria.Bands {
		labels = append(labels, string(b))
	}
	return fmt.Sprintf("scuole_filtrate_%s.csv", strings.Join(labels, "-"))
}
