package domain

// Represents the computed route for a single itinerary day.
// A DayRoute is the output of the routing flow and pairs the provider (or
// fallback) route with per-stop driving metrics and a display color for the
// map layer. It is immutable planning data and contains no side effects.
type DayRoute struct {
	DayIndex int
	Color    string
	Route    Route
	Metrics  []DrivingMetric
}

// Records a day whose route could not be computed. The itinerary-wide
// computation carries on past failed days, so callers receive both the
// routed days and the failures side by side.
type DayFailure struct {
	DayIndex int
	Reason   string
}
