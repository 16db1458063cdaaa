package cache

import (
	"fmt"
	"itinerary-route-service/internal/domain"
	"strings"
)

// Cache keys are pure functions of their semantic inputs and must stay
// stable across processes and versions, or persisted snapshots lose their
// value. Never mix wall-clock time or call order into a key.

// DirectionsKey builds the key for a routed stop list. Coordinates are
// rounded to 6 decimal places (~11 cm), so stops that differ only below
// that precision share an entry.
func DirectionsKey(stops []domain.Stop, mode domain.TravelMode) string {
	parts := make([]string, 0, len(stops)+1)
	parts = append(parts, string(mode))
	for _, s := range stops {
		parts = append(parts, fmt.Sprintf("%.6f,%.6f", s.Coords.Lat, s.Coords.Lng))
	}
	return "directions:" + strings.Join(parts, "|")
}

func PlaceSearchKey(query string) string {
	return "textsearch:" + NormalizeQuery(query)
}

func PlaceDetailsKey(placeID string) string {
	return "placedetails:" + placeID
}

func PlacePhotoKey(photoRef string, maxWidth int) string {
	return fmt.Sprintf("placephoto:%s:w%d", photoRef, maxWidth)
}

// NormalizeQuery lowers, trims and collapses inner whitespace so
// equivalent queries share a cache entry.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
