package api

import (
	"net/http"

	"school-map-service/internal/api/handlers"
	"school-map-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.SchoolRepository,
	geocoder ports.Geocoder,
	provider ports.RouteProvider,
) http.Handler {
	mux := http.NewServeMux()

	schoolHandler := &handlers.SchoolHandler{Repo: repo}
	dashboardHandler := &handlers.DashboardHandler{
		Repo:     repo,
		Geocoder: geocoder,
		Provider: provider,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/schools", schoolHandler.List)
	mux.HandleFunc("/dashboard", dashboardHandler.Dashboard)
	mux.HandleFunc("/export", dashboardHandler.Export)

	return loggingMiddleware(mux)
}
