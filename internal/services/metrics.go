package services

import (
	"fmt"
	"itinerary-route-service/internal/domain"
	"math"
)

// RouteShapeError reports a route whose leg count cannot correspond to the
// stop list it was computed for. A mismatched route is never truncated to
// fit; the day is abandoned instead.
type RouteShapeError struct {
	Legs  int
	Stops int
}

func (e *RouteShapeError) Error() string {
	return fmt.Sprintf("route shape mismatch: %d legs for %d stops", e.Legs, e.Stops)
}

// ExtractMetrics converts a route's legs into per-stop incremental driving
// metrics. Each leg's time and distance are attributed to its destination
// stop, so the first stop in the list (including a cross-day synthetic
// prefix) never receives an entry. Minutes are rounded to the nearest
// whole minute.
func ExtractMetrics(route domain.Route, stops []domain.Stop) ([]domain.DrivingMetric, error) {
	if len(route.Legs) != len(stops)-1 {
		return nil, &RouteShapeError{Legs: len(route.Legs), Stops: len(stops)}
	}

	metrics := make([]domain.DrivingMetric, 0, len(route.Legs))
	for i, leg := range route.Legs {
		metrics = append(metrics, domain.DrivingMetric{
			StopUID:             stops[i+1].UID,
			MinutesFromPrevious: int(math.Round(leg.DurationSeconds / 60)),
			MetersFromPrevious:  leg.DistanceMeters,
		})
	}

	return metrics, nil
}
