package cache

// RouteKey identifies one memoized route: origin and destination as
// normalized "lat,lon" strings, plus the municipality label and travel
// profile. Keys are expected to be formatted consistently by the caller.
type RouteKey struct {
	Origin       string
	Destination  string
	Municipality string
	Profile      string
}

// CachedRoute is the stored form of a successful directions response.
// Geometry keeps the encoded polyline; decoding happens at read time.
type CachedRoute struct {
	Geometry    string
	DurationMin float64
	DistanceKm  float64
}
