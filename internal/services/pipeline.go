package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"school-map-service/internal/domain"
	"school-map-service/internal/platform/obs"
	"school-map-service/internal/ports"
)

// DefaultProfile is the travel profile used when a request leaves it unset.
const DefaultProfile = "cycling-regular"

const (
	routeFetchWorkers = 4
	routeFetchTimeout = 30 * time.Second
)

// DashboardRequest is the explicit, request-scoped configuration for one
// pipeline evaluation. Either Origin carries raw coordinates or
// OriginAddress is geocoded; Origin wins when both are set.
type DashboardRequest struct {
	OriginAddress string
	Origin        *domain.Coordinates
	Criteria      FilterCriteria
	IncludeRoutes bool
	Profile       string
}

// SchoolView is one school enriched with its derived fields.
// Route stays nil when routing was not requested or failed for this record;
// the record itself is never dropped for a routing failure.
type SchoolView struct {
	School     *domain.School
	DistanceKm float64
	Band       domain.DistanceBand
	Color      string
	Route      *domain.RouteResult
	TransitURL string
}

// RenderModel is the computed dashboard state, decoupled from any
// presentation trigger: origin marker, retained schools sorted by distance,
// per-band statistics, headline metrics and non-fatal warnings.
type RenderModel struct {
	Origin      domain.Coordinates
	OriginLabel string
	Schools     []SchoolView
	Stats       map[domain.DistanceBand]BandStats

	MeanDistanceKm  float64
	MunicipalCount  int
	MontessoriCount int
	SupportCount    int

	Warnings []string
}

// EvaluateDashboard runs the full pipeline: resolve origin, tag every school
// with distance and band, apply filters, aggregate per-band statistics, and
// optionally enrich each retained school with a route.
//
// Route fetching fans out through a bounded worker pool; any per-record
// failure degrades that record to a placeholder and continues the batch.
func EvaluateDashboard(
	ctx context.Context,
	req DashboardRequest,
	repo ports.SchoolRepository,
	geocoder ports.Geocoder,
	provider ports.RouteProvider,
) (_ *RenderModel, err error) {
	defer obs.Time(ctx, "pipeline.EvaluateDashboard")(&err)

	origin, label, err := resolveOrigin(ctx, req, geocoder)
	if err != nil {
		return nil, err
	}

	schools, err := repo.ListSchools(ctx)
	if err != nil {
		return nil, fmt.Errorf("evaluate dashboard: list schools: %w", err)
	}

	tagged := Tag(origin, schools)
	retained := Filter(tagged, req.Criteria)

	sort.SliceStable(retained, func(i, j int) bool {
		if retained[i].DistanceKm != retained[j].DistanceKm {
			return retained[i].DistanceKm < retained[j].DistanceKm
		}
		return retained[i].School.RowID < retained[j].School.RowID
	})

	model := &RenderModel{
		Origin:      origin,
		OriginLabel: label,
		Schools:     retained,
		Stats:       ComputeBandStats(retained),
	}
	fillHeadlineMetrics(model)

	if req.IncludeRoutes && provider != nil && len(retained) > 0 {
		profile := req.Profile
		if profile == "" {
			profile = DefaultProfile
		}
		model.Warnings = fetchRoutes(ctx, origin, retained, provider, profile)
	}

	return model, nil
}

func resolveOrigin(
	ctx context.Context,
	req DashboardRequest,
	geocoder ports.Geocoder,
) (domain.Coordinates, string, error) {
	if req.Origin != nil {
		c := *req.Origin
		return c, fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lon), nil
	}

	if geocoder == nil {
		return domain.Coordinates{}, "", fmt.Errorf("evaluate dashboard: no geocoder configured: %w", ports.ErrAddressNotFound)
	}

	c, err := geocoder.Geocode(ctx, req.OriginAddress)
	if err != nil {
		return domain.Coordinates{}, "", fmt.Errorf("evaluate dashboard: resolve origin: %w", err)
	}

	return c, req.OriginAddress, nil
}

// fetchRoutes enriches retained schools in place and returns the warnings
// produced by per-record failures. Results land in pre-sized slots indexed
// by record position, so the workers share nothing but the errgroup.
func fetchRoutes(
	ctx context.Context,
	origin domain.Coordinates,
	retained []SchoolView,
	provider ports.RouteProvider,
	profile string,
) []string {
	slots := make([]string, len(retained))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(routeFetchWorkers)

	for i := range retained {
		i := i
		g.Go(func() error {
			v := &retained[i]

			callCtx, cancel := context.WithTimeout(gctx, routeFetchTimeout)
			defer cancel()

			route, err := provider.FetchRoute(callCtx, origin, v.School.Position, v.School.Municipality, profile)
			if err != nil {
				// Routing failures are non-fatal: keep the marker, render
				// placeholders, skip the overlay line.
				log.Printf("route fetch failed school=%q municipality=%q err=%v", v.School.Name, v.School.Municipality, err)
				slots[i] = fmt.Sprintf("route unavailable for %s (%s)", v.School.Name, v.School.Municipality)
				return nil
			}

			v.Route = route
			return nil
		})
	}

	// Workers never return errors; Wait only observes context cancellation.
	_ = g.Wait()

	warnings := make([]string, 0, len(slots))
	for _, w := range slots {
		if w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

func fillHeadlineMetrics(model *RenderModel) {
	if len(model.Schools) == 0 {
		return
	}

	sum := 0.0
	for _, v := range model.Schools {
		sum += v.DistanceKm
		if v.School.MunicipalSeats > 0 {
			model.MunicipalCount++
		}
		if v.School.MontessoriSeats > 0 {
			model.MontessoriCount++
		}
		if v.School.SupportSeats > 0 {
			model.SupportCount++
		}
	}
	model.MeanDistanceKm = math.Round(sum/float64(len(model.Schools))*10) / 10
}

// transitURL builds the external deep link for public-transport directions.
func transitURL(origin, dest domain.Coordinates) string {
	return fmt.Sprintf(
		"https://www.google.com/maps/dir/?api=1&origin=%.6f,%.6f&destination=%.6f,%.6f&travelmode=transit",
		origin.Lat, origin.Lon, dest.Lat, dest.Lon,
	)
}
