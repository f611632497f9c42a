package domain

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat]. OpenRouteService expects longitude
// first, inverted from the domain's lat/lon convention.
func (c Coordinates) LonLat() []float64 { return []float64{c.Lon, c.Lat} }
