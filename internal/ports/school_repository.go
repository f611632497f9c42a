package ports

import (
	"context"

	"school-map-service/internal/domain"
)

// Port: a boundary for retrieving School records from a data source.
type SchoolRepository interface {
	// Retrieve all schools in source row order.
	ListSchools(ctx context.Context) ([]*domain.School, error)
}
