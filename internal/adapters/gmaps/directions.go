package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-route-service/internal/adapters/cache"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"log"
	"net/url"
	"strings"
)

// Route returns the driving route visiting stops in order, consulting the
// response cache before the provider. No-route answers degrade to a
// synthesized straight-line fallback, cached like a real route so the
// provider is not re-asked about a hopeless stop list for three days.
// Other non-success statuses return a ProviderError and are not cached.
func (c *Client) Route(ctx context.Context, stops []domain.Stop, mode domain.TravelMode) (_ domain.Route, err error) {
	defer obs.Time(ctx, "gmaps.Route")(&err)

	if len(stops) < 2 {
		return domain.Route{}, fmt.Errorf("route: need at least 2 stops, got %d: %w", len(stops), ports.ErrInvalidInput)
	}
	if mode == "" {
		mode = domain.ModeDriving
	}

	key := cache.DirectionsKey(stops, mode)
	if c.cache != nil {
		if payload, ok := c.cache.Get(key); ok {
			var cached domain.Route
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
			// An unreadable entry means a stale payload schema; refetch.
			log.Printf("gmaps: dropping unreadable cached route key=%q", key)
		}
	}

	decoded, err := c.fetchDirections(ctx, stops, mode)
	if err != nil {
		return domain.Route{}, err
	}

	var route domain.Route
	switch decoded.Status {
	case statusOK:
		if len(decoded.Routes) == 0 {
			return domain.Route{}, &ports.ProviderError{
				Operation: "directions",
				Status:    decoded.Status,
				Message:   "response contained no routes",
			}
		}
		route = parseRoute(decoded.Routes[0])
	case statusZeroResults:
		route = SynthesizeFallback(stops)
	default:
		return domain.Route{}, &ports.ProviderError{
			Operation: "directions",
			Status:    decoded.Status,
			Message:   decoded.ErrorMessage,
		}
	}

	c.cacheSet(key, route, cache.TTLDirections)

	return route, nil
}

func (c *Client) fetchDirections(ctx context.Context, stops []domain.Stop, mode domain.TravelMode) (*directionsResponse, error) {
	params := url.Values{}
	params.Set("origin", formatCoord(stops[0].Coords))
	params.Set("destination", formatCoord(stops[len(stops)-1].Coords))
	if len(stops) > 2 {
		waypoints := make([]string, 0, len(stops)-2)
		for _, s := range stops[1 : len(stops)-1] {
			waypoints = append(waypoints, formatCoord(s.Coords))
		}
		params.Set("waypoints", strings.Join(waypoints, "|"))
	}
	params.Set("mode", string(mode))
	params.Set("units", "metric")
	params.Set("key", c.apiKey)

	req, err := c.newRequest(ctx, c.baseURL+"/directions/json?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("directions request: %w", err)
	}

	// No retry here: a failed day is abandoned by the caller, not hammered.
	resp, err := c.do(req)
	if err != nil {
		return nil, providerErr("directions", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	return &decoded, nil
}

// parseRoute flattens the provider route into the domain shape. Leg i
// starts at stop i, so OriginIndex is just the position.
func parseRoute(r wireRoute) domain.Route {
	legs := make([]domain.Leg, 0, len(r.Legs))
	for i, l := range r.Legs {
		legs = append(legs, domain.Leg{
			OriginIndex:     i,
			DistanceMeters:  float64(l.Distance.Value),
			DurationSeconds: float64(l.Duration.Value),
		})
	}
	return domain.Route{
		Legs:        legs,
		EncodedPath: r.OverviewPolyline.Points,
		IsFallback:  false,
	}
}
