package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"school-map-service/internal/api/dto"
	"school-map-service/internal/domain"
	"school-map-service/internal/ports"
	"school-map-service/internal/services"
)

// DashboardHandler orchestrates the full dashboard pipeline: origin
// resolution, distance tagging, filtering, statistics and optional route
// enrichment. Handlers stay unaware of concrete adapters.
type DashboardHandler struct {
	Repo     ports.SchoolRepository
	Geocoder ports.Geocoder
	Provider ports.RouteProvider
}

// Dashboard computes and returns the render model for the requested origin
// and filters.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	model, _, ok := h.evaluate(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, buildDashboardResponse(model))
}

// Export streams the currently filtered table as a CSV download.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	model, criteria, ok := h.evaluate(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", services.ExportFilename(criteria)),
	)
	w.WriteHeader(http.StatusOK)

	if err := services.WriteCSV(w, model); err != nil {
		log.Printf("export write failed: %v", err)
	}
}

// evaluate decodes the shared request shape and runs the pipeline.
// On failure it writes the error response and reports !ok.
func (h *DashboardHandler) evaluate(
	w http.ResponseWriter,
	r *http.Request,
) (*services.RenderModel, services.FilterCriteria, bool) {
	var none services.FilterCriteria

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return nil, none, false
	}

	var req dto.DashboardRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return nil, none, false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return nil, none, false
	}

	svcReq, err := buildPipelineRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, none, false
	}

	model, err := services.EvaluateDashboard(r.Context(), svcReq, h.Repo, h.Geocoder, h.Provider)
	if err != nil {
		if errors.Is(err, ports.ErrAddressNotFound) {
			writeError(w, r, http.StatusUnprocessableEntity, "address not found, correct it and retry")
			return nil, none, false
		}
		log.Printf("evaluate dashboard failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, none, false
	}

	return model, svcReq.Criteria, true
}

func buildPipelineRequest(req dto.DashboardRequest) (services.DashboardRequest, error) {
	bands := make([]domain.DistanceBand, 0, len(req.Bands))
	for _, raw := range req.Bands {
		band, ok := domain.ParseBand(strings.TrimSpace(raw))
		if !ok {
			return services.DashboardRequest{}, fmt.Errorf("unknown distance band %q", raw)
		}
		bands = append(bands, band)
	}

	svcReq := services.DashboardRequest{
		Criteria: services.FilterCriteria{
			Bands:             bands,
			RequireMunicipal:  req.RequireMunicipal,
			RequireMontessori: req.RequireMontessori,
			RequireSupport:    req.RequireSupport,
		},
		IncludeRoutes: req.IncludeRoutes,
		Profile:       strings.TrimSpace(req.Profile),
	}

	switch {
	case req.Lat != nil && req.Lon != nil:
		svcReq.Origin = &domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon}
	case req.Lat != nil || req.Lon != nil:
		return services.DashboardRequest{}, errors.New("lat and lon must be provided together")
	case strings.TrimSpace(req.Address) != "":
		svcReq.OriginAddress = strings.TrimSpace(req.Address)
	default:
		return services.DashboardRequest{}, errors.New("origin is required: provide address or lat/lon")
	}

	return svcReq, nil
}

func buildDashboardResponse(model *services.RenderModel) dto.DashboardResponse {
	res := dto.DashboardResponse{
		Origin: dto.OriginResponse{
			Lat:   model.Origin.Lat,
			Lon:   model.Origin.Lon,
			Label: model.OriginLabel,
		},
		Schools:         make([]dto.SchoolViewResponse, 0, len(model.Schools)),
		Stats:           make([]dto.BandStatsResponse, 0, len(model.Stats)),
		TotalSchools:    len(model.Schools),
		MeanDistanceKm:  model.MeanDistanceKm,
		MunicipalCount:  model.MunicipalCount,
		MontessoriCount: model.MontessoriCount,
		SupportCount:    model.SupportCount,
		Warnings:        model.Warnings,
	}

	for _, v := range model.Schools {
		view := dto.SchoolViewResponse{
			Name:            v.School.Name,
			Municipality:    v.School.Municipality,
			Address:         v.School.Address,
			Lat:             v.School.Position.Lat,
			Lon:             v.School.Position.Lon,
			DistanceKm:      v.DistanceKm,
			Band:            string(v.Band),
			Color:           v.Color,
			MunicipalSeats:  v.School.MunicipalSeats,
			MontessoriSeats: v.School.MontessoriSeats,
			SupportSeats:    v.School.SupportSeats,
			BikeMinutes:     "?",
			BikeKm:          "?",
			TransitURL:      v.TransitURL,
		}

		if v.Route != nil {
			points := make([][]float64, 0, len(v.Route.Points))
			for _, p := range v.Route.Points {
				points = append(points, []float64{p.Lat, p.Lon})
			}
			view.Route = &dto.RouteResponse{
				Points:      points,
				DurationMin: v.Route.DurationMin,
				DistanceKm:  v.Route.DistanceKm,
			}
			view.BikeMinutes = strconv.FormatFloat(v.Route.DurationMin, 'f', 1, 64)
			view.BikeKm = strconv.FormatFloat(v.Route.DistanceKm, 'f', 1, 64)
		}

		res.Schools = append(res.Schools, view)
	}

	// Stats follow fixed band display order; absent bands stay absent.
	for _, band := range domain.AllBands() {
		s, ok := model.Stats[band]
		if !ok {
			continue
		}
		res.Stats = append(res.Stats, dto.BandStatsResponse{
			Band:   string(band),
			Color:  band.Color(),
			Count:  s.Count,
			MinKm:  s.MinKm,
			MaxKm:  s.MaxKm,
			MeanKm: s.MeanKm,
		})
	}

	return res
}
