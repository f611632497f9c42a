package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"school-map-service/internal/domain"
)

func view(name string, distance float64) SchoolView {
	band := domain.BandFor(distance)
	return SchoolView{
		School:     &domain.School{Name: name},
		DistanceKm: distance,
		Band:       band,
		Color:      band.Color(),
	}
}

func TestComputeBandStats(t *testing.T) {
	views := []SchoolView{
		view("a", 5.0),
		view("b", 7.5),
		view("c", 25.0),
	}

	stats := ComputeBandStats(views)

	assert.Len(t, stats, 2)

	near := stats[domain.BandNear]
	assert.Equal(t, 2, near.Count)
	assert.Equal(t, 5.0, near.MinKm)
	assert.Equal(t, 7.5, near.MaxKm)
	assert.Equal(t, 6.25, near.MeanKm)

	far := stats[domain.BandFar]
	assert.Equal(t, 1, far.Count)
	assert.Equal(t, 25.0, far.MinKm)
	assert.Equal(t, 25.0, far.MaxKm)
	assert.Equal(t, 25.0, far.MeanKm)

	_, ok := stats[domain.BandMid]
	assert.False(t, ok, "bands with no retained school must be absent")
}

func TestComputeBandStatsRoundsToTwoDecimals(t *testing.T) {
	views := []SchoolView{
		view("a", 3.333),
		view("b", 6.667),
	}

	stats := ComputeBandStats(views)
	near := stats[domain.BandNear]

	assert.Equal(t, 3.33, near.MinKm)
	assert.Equal(t, 6.67, near.MaxKm)
	assert.Equal(t, 5.0, near.MeanKm)
}

func TestComputeBandStatsEmptyInput(t *testing.T) {
	assert.Empty(t, ComputeBandStats(nil))
}
