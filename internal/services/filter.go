package services

import (
	"school-map-service/internal/domain"
	"school-map-service/internal/geo"
)

// FilterCriteria selects which tagged schools stay visible.
//
// Bands has set semantics: an empty selection retains nothing. The three
// capacity requirements are independent and compose by logical AND; each one
// demands that the corresponding seat counter is positive.
type FilterCriteria struct {
	Bands             []domain.DistanceBand
	RequireMunicipal  bool
	RequireMontessori bool
	RequireSupport    bool
}

func (c FilterCriteria) bandSet() map[domain.DistanceBand]struct{} {
	set := make(map[domain.DistanceBand]struct{}, len(c.Bands))
	for _, b := range c.Bands {
		set[b] = struct{}{}
	}
	return set
}

// Matches reports whether a single tagged school passes all active filters.
func (c FilterCriteria) Matches(v SchoolView) bool {
	if _, ok := c.bandSet()[v.Band]; !ok {
		return false
	}
	if c.RequireMunicipal && v.School.MunicipalSeats <= 0 {
		return false
	}
	if c.RequireMontessori && v.School.MontessoriSeats <= 0 {
		return false
	}
	if c.RequireSupport && v.School.SupportSeats <= 0 {
		return false
	}
	return true
}

// Tag attaches the derived distance and band to every school.
// Derived fields depend only on the origin, so re-tagging with the same
// origin reproduces identical values.
func Tag(origin domain.Coordinates, schools []*domain.School) []SchoolView {
	views := make([]SchoolView, 0, len(schools))
	for _, s := range schools {
		d := geo.DistanceKm(origin, s.Position)
		band := domain.BandFor(d)
		views = append(views, SchoolView{
			School:     s,
			DistanceKm: d,
			Band:       band,
			Color:      band.Color(),
			TransitURL: transitURL(origin, s.Position),
		})
	}
	return views
}

// Filter retains the views matching the criteria. It is an idempotent
// projection: applying it twice yields the same set as applying it once.
func Filter(views []SchoolView, criteria FilterCriteria) []SchoolView {
	retained := make([]SchoolView, 0, len(views))
	for _, v := range views {
		if criteria.Matches(v) {
			retained = append(retained, v)
		}
	}
	return retained
}
