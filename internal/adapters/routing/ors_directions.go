package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"school-map-service/internal/domain"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type routeSummary struct {
	Distance float64 `json:"distance"` // meters
	Duration float64 `json:"duration"` // seconds
}

type directionsResponse struct {
	Routes []struct {
		Summary  routeSummary `json:"summary"`
		Geometry string       `json:"geometry"`
	} `json:"routes"`
}

// fetchDirections requests a single route from the OpenRouteService
// directions endpoint and returns the encoded geometry plus summary metrics.
// The request body carries [lon, lat] pairs, as the service expects.
func (o *ORSRouteProvider) fetchDirections(
	ctx context.Context,
	start domain.Coordinates,
	end domain.Coordinates,
	profile string,
) (string, routeSummary, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, profile)

	bodyObj := directionsRequest{
		Coordinates: [][]float64{start.LonLat(), end.LonLat()},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return "", routeSummary{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		return "", routeSummary{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return "", routeSummary{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return "", routeSummary{}, errors.New("directions response contains zero routes")
	}

	route := dr.Routes[0]
	if route.Geometry == "" {
		return "", routeSummary{}, errors.New("directions response missing geometry")
	}

	return route.Geometry, route.Summary, nil
}
