package routing

import (
	"context"
	"fmt"
	"sync"

	"school-map-service/internal/domain"
)

// MockRouteProvider serves canned routes keyed by destination, with optional
// per-destination failures. Intended for pipeline tests; safe for the
// concurrent fan-out the pipeline performs.
type MockRouteProvider struct {
	Routes map[string]*domain.RouteResult
	Fail   map[string]error

	mu    sync.Mutex
	calls int
}

func (p *MockRouteProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func destKey(end domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", end.Lat, end.Lon)
}

func (p *MockRouteProvider) FetchRoute(
	_ context.Context,
	_ domain.Coordinates,
	end domain.Coordinates,
	_ string,
	_ string,
) (*domain.RouteResult, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	k := destKey(end)
	if err, ok := p.Fail[k]; ok {
		return nil, err
	}

	r, ok := p.Routes[k]
	if !ok {
		return nil, fmt.Errorf("missing route for destination %q", k)
	}

	return r, nil
}
