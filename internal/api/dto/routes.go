package dto

type LegResponse struct {
	OriginIndex     int     `json:"origin_index"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type RouteResponse struct {
	Legs        []LegResponse `json:"legs"`
	EncodedPath string        `json:"encoded_path"`
	IsFallback  bool          `json:"is_fallback"`
}

type DayRouteResponse struct {
	DayIndex int           `json:"day_index"`
	Color    string        `json:"color"`
	Route    RouteResponse `json:"route"`
}

type DayFailureResponse struct {
	DayIndex int    `json:"day_index"`
	Reason   string `json:"reason"`
}

type DrivingMetricResponse struct {
	MinutesFromPrevious int     `json:"minutes_from_previous"`
	MetersFromPrevious  float64 `json:"meters_from_previous"`
}

type ComputeRoutesResponse struct {
	DayRoutes []DayRouteResponse `json:"day_routes"`
	// Incremental driving metrics keyed by stop uid.
	MetricsByStop map[string]DrivingMetricResponse `json:"metrics_by_stop"`
	DayFailures   []DayFailureResponse             `json:"day_failures"`
}
