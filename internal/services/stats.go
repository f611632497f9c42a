package services

import (
	"math"

	"school-map-service/internal/domain"
)

// BandStats summarizes straight-line distances within one band.
type BandStats struct {
	Count  int
	MinKm  float64
	MaxKm  float64
	MeanKm float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeBandStats groups retained schools by band and computes count, min,
// max and mean distance per group, rounded to two decimals. Bands with no
// retained school are simply absent from the result.
func ComputeBandStats(views []SchoolView) map[domain.DistanceBand]BandStats {
	type acc struct {
		count int
		min   float64
		max   float64
		sum   float64
	}

	groups := make(map[domain.DistanceBand]*acc)
	for _, v := range views {
		g, ok := groups[v.Band]
		if !ok {
			g = &acc{min: v.DistanceKm, max: v.DistanceKm}
			groups[v.Band] = g
		}
		if v.DistanceKm < g.min {
			g.min = v.DistanceKm
		}
		if v.DistanceKm > g.max {
			g.max = v.DistanceKm
		}
		g.count++
		g.sum += v.DistanceKm
	}

	out := make(map[domain.DistanceBand]BandStats, len(groups))
	for band, g := range groups {
		out[band] = BandStats{
			Count:  g.count,
			MinKm:  round2(g.min),
			MaxKm:  round2(g.max),
			MeanKm: round2(g.sum / float64(g.count)),
		}
	}

	return out
}
