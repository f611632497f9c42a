package ports

import (
	"context"
	"errors"

	"school-map-service/internal/domain"
)

// ErrAddressNotFound reports a geocoding miss (including timeout, which is
// treated as not-found rather than a hard failure).
var ErrAddressNotFound = errors.New("address not found")

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
