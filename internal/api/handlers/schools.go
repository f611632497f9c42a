package handlers

import (
	"log"
	"net/http"

	"school-map-service/internal/api/dto"
	"school-map-service/internal/ports"
)

// SchoolHandler exposes read-only roster retrieval endpoints.
type SchoolHandler struct {
	Repo ports.SchoolRepository
}

func (h *SchoolHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	schools, err := h.Repo.ListSchools(r.Context())
	if err != nil {
		log.Printf("list schools failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListSchoolsResponse{
		Schools: make([]dto.SchoolResponse, 0, len(schools)),
	}
	for _, s := range schools {
		res.Schools = append(res.Schools, dto.SchoolResponse{
			RowID:           s.RowID,
			Name:            s.Name,
			Municipality:    s.Municipality,
			Address:         s.Address,
			Lat:             s.Position.Lat,
			Lon:             s.Position.Lon,
			MunicipalSeats:  s.MunicipalSeats,
			MontessoriSeats: s.MontessoriSeats,
			SupportSeats:    s.SupportSeats,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
