package domain

// Represents a decoded travel route between the origin and one school.
// A RouteResult is the output of a directions request: the ordered waypoints
// of the path plus aggregate duration and distance, already converted to
// minutes and kilometers and rounded to one decimal. A nil *RouteResult is
// the absence marker used when the routing service failed or was not asked.
type RouteResult struct {
	Points      []Coordinates
	DurationMin float64
	DistanceKm  float64
}
