package domain

// DistanceBand classifies a school's straight-line distance from the origin
// into one of three fixed ranges.
type DistanceBand string

const (
	BandNear DistanceBand = "0-10 km"
	BandMid  DistanceBand = "10-20 km"
	BandFar  DistanceBand = "20+ km"
)

// AllBands returns the defined bands in display order.
func AllBands() []DistanceBand {
	return []DistanceBand{BandNear, BandMid, BandFar}
}

// BandFor maps a distance in kilometers to its band.
// Upper thresholds are inclusive: exactly 10.0 is "0-10 km" and exactly
// 20.0 is "10-20 km". Negative input falls into the first band by the same
// inequality; distances are non-negative by construction so this is never
// rejected explicitly.
func BandFor(distanceKm float64) DistanceBand {
	switch {
	case distanceKm <= 10:
		return BandNear
	case distanceKm <= 20:
		return BandMid
	default:
		return BandFar
	}
}

// ParseBand validates a band label received from a client.
func ParseBand(s string) (DistanceBand, bool) {
	switch DistanceBand(s) {
	case BandNear, BandMid, BandFar:
		return DistanceBand(s), true
	}
	return "", false
}

// Color returns the display color associated with the band.
// Labels outside the three defined bands map to gray.
func (b DistanceBand) Color() string {
	switch b {
	case BandNear:
		return "green"
	case BandMid:
		return "orange"
	case BandFar:
		return "red"
	default:
		return "gray"
	}
}
