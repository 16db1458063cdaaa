package ports

import (
	"context"
	"itinerary-route-service/internal/domain"
)

// Port: a boundary for place lookups against the external provider.
// All three operations share the response cache with the directions path.
type PlaceProvider interface {
	// Return places matching a free-text query.
	TextSearch(ctx context.Context, query string) ([]domain.Place, error)
	// Return the full record for a single place.
	PlaceDetails(ctx context.Context, placeID string) (domain.Place, error)
	// Return the resolved image URL for a provider photo reference.
	PhotoURL(ctx context.Context, photoRef string, maxWidth int) (string, error)
}
