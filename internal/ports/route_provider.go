package ports

import (
	"context"

	"school-map-service/internal/domain"
)

// Contract for retrieving a travel route between two points.
//
// The municipality label participates in memoization keys alongside the
// endpoints and the travel profile, so repeated requests for identical
// parameters do not re-invoke the external service.
type RouteProvider interface {
	FetchRoute(
		ctx context.Context,
		start domain.Coordinates,
		end domain.Coordinates,
		municipality string,
		profile string,
	) (*domain.RouteResult, error)
}
