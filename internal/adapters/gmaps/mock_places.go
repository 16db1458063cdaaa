package gmaps

import (
	"context"
	"itinerary-route-service/internal/domain"
)

// Scripted PlaceProvider for tests. Unset functions answer with zero
// values and no error.
type MockPlaceProvider struct {
	TextSearchFn   func(query string) ([]domain.Place, error)
	PlaceDetailsFn func(placeID string) (domain.Place, error)
	PhotoURLFn     func(photoRef string, maxWidth int) (string, error)

	SearchCalls  int
	DetailsCalls int
	PhotoCalls   int
}

func (m *MockPlaceProvider) TextSearch(ctx context.Context, query string) ([]domain.Place, error) {
	m.SearchCalls++
	if m.TextSearchFn == nil {
		return nil, nil
	}
	return m.TextSearchFn(query)
}

func (m *MockPlaceProvider) PlaceDetails(ctx context.Context, placeID string) (domain.Place, error) {
	m.DetailsCalls++
	if m.PlaceDetailsFn == nil {
		return domain.Place{}, nil
	}
	return m.PlaceDetailsFn(placeID)
}

func (m *MockPlaceProvider) PhotoURL(ctx context.Context, photoRef string, maxWidth int) (string, error) {
	m.PhotoCalls++
	if m.PhotoURLFn == nil {
		return "", nil
	}
	return m.PhotoURLFn(photoRef, maxWidth)
}
