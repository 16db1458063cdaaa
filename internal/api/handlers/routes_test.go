package handlers

import (
	"encoding/json"
	"itinerary-route-service/internal/adapters/gmaps"
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/ports"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const twoDayItinerary = `{
	"days": [
		{"index": 0, "stops": [
			{"uid": "a1", "name": "Sensoji", "lat": 35.714765, "lng": 139.796655, "role": "place"},
			{"uid": "a2", "name": "Skytree", "lat": 35.710063, "lng": 139.8107, "role": "place"}
		]},
		{"index": 1, "stops": [
			{"uid": "b1", "name": "Tokyo Tower", "lat": 35.658581, "lng": 139.745438, "role": "place"}
		]}
	]
}`

func providedRoute(stops []domain.Stop, mode domain.TravelMode) (domain.Route, error) {
	legs := make([]domain.Leg, 0, len(stops)-1)
	for i := 0; i < len(stops)-1; i++ {
		legs = append(legs, domain.Leg{OriginIndex: i, DistanceMeters: 2500, DurationSeconds: 300})
	}
	return domain.Route{Legs: legs, EncodedPath: "poly"}, nil
}

func TestComputeRoutes(t *testing.T) {
	handler := &RouteHandler{Provider: &gmaps.MockDirectionsProvider{RouteFn: providedRoute}}

	req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(twoDayItinerary))
	rec := httptest.NewRecorder()
	handler.Compute(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var res dto.ComputeRoutesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(res.DayRoutes) != 2 {
		t.Fatalf("got %d day routes, want 2", len(res.DayRoutes))
	}
	if res.DayRoutes[0].DayIndex != 0 || res.DayRoutes[1].DayIndex != 1 {
		t.Errorf("day indices %d, %d; want 0, 1", res.DayRoutes[0].DayIndex, res.DayRoutes[1].DayIndex)
	}
	if len(res.DayFailures) != 0 {
		t.Errorf("unexpected failures %+v", res.DayFailures)
	}

	// Day 0 has one leg; day 1 is the carried-over stop plus b1.
	if got := len(res.DayRoutes[0].Route.Legs); got != 1 {
		t.Errorf("day 0 has %d legs, want 1", got)
	}
	if got := len(res.DayRoutes[1].Route.Legs); got != 1 {
		t.Errorf("day 1 has %d legs, want 1", got)
	}

	for _, uid := range []string{"a2", "b1"} {
		m, ok := res.MetricsByStop[uid]
		if !ok {
			t.Errorf("metrics_by_stop missing %q", uid)
			continue
		}
		if m.MinutesFromPrevious != 5 || m.MetersFromPrevious != 2500 {
			t.Errorf("metric for %q = %+v", uid, m)
		}
	}
	if _, ok := res.MetricsByStop["a1"]; ok {
		t.Error("the first stop of the itinerary must not receive a metric")
	}
}

func TestComputeRoutesReportsDayFailures(t *testing.T) {
	provider := &gmaps.MockDirectionsProvider{RouteFn: func(stops []domain.Stop, mode domain.TravelMode) (domain.Route, error) {
		return domain.Route{}, &ports.ProviderError{Operation: "directions", Status: "OVER_QUERY_LIMIT"}
	}}
	handler := &RouteHandler{Provider: provider}

	req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(twoDayItinerary))
	rec := httptest.NewRecorder()
	handler.Compute(rec, req)

	// Per-day failures are part of a successful response, not an HTTP error.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var res dto.ComputeRoutesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.DayRoutes) != 0 {
		t.Errorf("got %d day routes, want 0", len(res.DayRoutes))
	}
	if len(res.DayFailures) != 2 {
		t.Fatalf("got %d failures, want 2", len(res.DayFailures))
	}
	if !strings.Contains(res.DayFailures[0].Reason, "OVER_QUERY_LIMIT") {
		t.Errorf("failure reason = %q", res.DayFailures[0].Reason)
	}
}

func TestComputeRoutesRejectsWrongMethod(t *testing.T) {
	handler := &RouteHandler{Provider: &gmaps.MockDirectionsProvider{}}

	req := httptest.NewRequest(http.MethodGet, "/routes", nil)
	rec := httptest.NewRecorder()
	handler.Compute(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != http.MethodPost {
		t.Errorf("Allow = %q, want POST", got)
	}
}

func TestComputeRoutesRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"days": [`},
		{"unknown fields", `{"days": [], "extra": true}`},
		{"trailing data", `{"days": []}{"days": []}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			provider := &gmaps.MockDirectionsProvider{}
			handler := &RouteHandler{Provider: provider}

			req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.Compute(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if provider.Calls != 0 {
				t.Errorf("provider called %d times for a rejected body", provider.Calls)
			}
		})
	}
}

func TestComputeRoutesEmptyItinerary(t *testing.T) {
	handler := &RouteHandler{Provider: &gmaps.MockDirectionsProvider{}}

	req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(`{"days": []}`))
	rec := httptest.NewRecorder()
	handler.Compute(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res dto.ComputeRoutesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.DayRoutes) != 0 || len(res.DayFailures) != 0 || len(res.MetricsByStop) != 0 {
		t.Errorf("expected an empty result, got %+v", res)
	}
}
