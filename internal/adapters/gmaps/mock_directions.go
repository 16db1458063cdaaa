package gmaps

import (
	"context"
	"itinerary-route-service/internal/domain"
)

// Scripted DirectionsProvider for tests. RouteFn decides each response;
// when nil, every call answers with a synthesized fallback. Calls counts
// invocations so tests can assert the cache kept the provider idle.
type MockDirectionsProvider struct {
	RouteFn func(stops []domain.Stop, mode domain.TravelMode) (domain.Route, error)
	Calls   int
}

func (m *MockDirectionsProvider) Route(ctx context.Context, stops []domain.Stop, mode domain.TravelMode) (domain.Route, error) {
	m.Calls++
	if m.RouteFn == nil {
		return SynthesizeFallback(stops), nil
	}
	return m.RouteFn(stops, mode)
}
