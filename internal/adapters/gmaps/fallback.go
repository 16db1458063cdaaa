package gmaps

import (
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/geo"
	"strconv"
	"strings"
)

// SynthesizeFallback builds a straight-line stand-in when the provider
// knows no route between the stops. Every leg carries the great-circle
// distance between its endpoints and a duration of zero: an unknown
// driving time is reported as zero, never guessed from distance.
//
// The encoded path is a pipe-joined "lat,lng" list rather than a provider
// polyline; IsFallback tells consumers which decoder to use.
func SynthesizeFallback(stops []domain.Stop) domain.Route {
	legs := make([]domain.Leg, 0, max(len(stops)-1, 0))
	path := make([]string, 0, len(stops))

	for i, s := range stops {
		path = append(path, formatLatLng(s.Coords))
		if i == 0 {
			continue
		}
		prev := stops[i-1].Coords
		legs = append(legs, domain.Leg{
			OriginIndex:     i - 1,
			DistanceMeters:  geo.Haversine(prev.Lat, prev.Lng, s.Coords.Lat, s.Coords.Lng),
			DurationSeconds: 0,
		})
	}

	return domain.Route{
		Legs:        legs,
		EncodedPath: strings.Join(path, "|"),
		IsFallback:  true,
	}
}

// formatLatLng renders the shortest exact decimal form, so the path stays
// decodable into the same float values the stops carried.
func formatLatLng(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
