package dto

type DashboardRequest struct {
	Address           string   `json:"address"`
	Lat               *float64 `json:"lat"`
	Lon               *float64 `json:"lon"`
	Bands             []string `json:"bands"`
	RequireMunicipal  bool     `json:"require_municipal_seats"`
	RequireMontessori bool     `json:"require_montessori_seats"`
	RequireSupport    bool     `json:"require_support_seats"`
	IncludeRoutes     bool     `json:"include_routes"`
	Profile           string   `json:"profile"`
}

// RouteResponse is the overlay for one school; points are [lat, lon] pairs.
type RouteResponse struct {
	Points      [][]float64 `json:"points"`
	DurationMin float64     `json:"duration_min"`
	DistanceKm  float64     `json:"distance_km"`
}

type SchoolViewResponse struct {
	Name            string         `json:"name"`
	Municipality    string         `json:"municipality"`
	Address         string         `json:"address"`
	Lat             float64        `json:"lat"`
	Lon             float64        `json:"lon"`
	DistanceKm      float64        `json:"distance_km"`
	Band            string         `json:"band"`
	Color           string         `json:"color"`
	MunicipalSeats  int            `json:"municipal_seats"`
	MontessoriSeats int            `json:"montessori_seats"`
	SupportSeats    int            `json:"support_seats"`
	BikeMinutes     string         `json:"bike_minutes"`
	BikeKm          string         `json:"bike_km"`
	Route           *RouteResponse `json:"route"`
	TransitURL      string         `json:"transit_url"`
}

type OriginResponse struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

type BandStatsResponse struct {
	Band   string  `json:"band"`
	Color  string  `json:"color"`
	Count  int     `json:"count"`
	MinKm  float64 `json:"min_km"`
	MaxKm  float64 `json:"max_km"`
	MeanKm float64 `json:"mean_km"`
}

type DashboardResponse struct {
	Origin          OriginResponse       `json:"origin"`
	Schools         []SchoolViewResponse `json:"schools"`
	Stats           []BandStatsResponse  `json:"stats"`
	TotalSchools    int                  `json:"total_schools"`
	MeanDistanceKm  float64              `json:"mean_distance_km"`
	MunicipalCount  int                  `json:"municipal_count"`
	MontessoriCount int                  `json:"montessori_count"`
	SupportCount    int                  `json:"support_count"`
	Warnings        []string             `json:"warnings"`
}
