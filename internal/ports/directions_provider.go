package ports

import (
	"context"
	"itinerary-route-service/internal/domain"
)

// Port: a boundary for computing a driving route through an ordered list
// of stops.
type DirectionsProvider interface {
	// Return the route visiting stops in their given order. Implementations
	// must reject lists shorter than two stops with ErrInvalidInput and may
	// answer from a cache without any network call.
	Route(ctx context.Context, stops []domain.Stop, mode domain.TravelMode) (domain.Route, error)
}
