package handlers

import (
	"encoding/json"
	"io"
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/ports"
	"itinerary-route-service/internal/services"
	"net/http"
)

// RouteHandler exposes itinerary route computation.
type RouteHandler struct {
	Provider ports.DirectionsProvider
}

// Compute runs the full routing flow for the posted itinerary and returns
// per-day routes, per-stop driving metrics and per-day failures.
func (h *RouteHandler) Compute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ComputeRoutesRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	result, err := services.ComputeItineraryRoutes(r.Context(), itineraryFromRequest(req), h.Provider)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, routesResponse(result))
}

func itineraryFromRequest(req dto.ComputeRoutesRequest) domain.Itinerary {
	days := make([]domain.ItineraryDay, 0, len(req.Days))
	for _, d := range req.Days {
		stops := make([]domain.ItineraryStop, 0, len(d.Stops))
		for _, s := range d.Stops {
			stops = append(stops, domain.ItineraryStop{
				UID:              s.UID,
				Name:             s.Name,
				Lat:              s.Lat,
				Lng:              s.Lng,
				Role:             domain.StopRole(s.Role),
				IsDayEndOverride: s.IsDayEndOverride,
			})
		}
		days = append(days, domain.ItineraryDay{Index: d.Index, Stops: stops})
	}
	return domain.Itinerary{Days: days}
}

func routesResponse(result services.ItineraryRoutesResult) dto.ComputeRoutesResponse {
	res := dto.ComputeRoutesResponse{
		DayRoutes:     make([]dto.DayRouteResponse, 0, len(result.DayRoutes)),
		MetricsByStop: make(map[string]dto.DrivingMetricResponse),
		DayFailures:   make([]dto.DayFailureResponse, 0, len(result.DayFailures)),
	}

	for _, day := range result.DayRoutes {
		legs := make([]dto.LegResponse, 0, len(day.Route.Legs))
		for _, leg := range day.Route.Legs {
			legs = append(legs, dto.LegResponse{
				OriginIndex:     leg.OriginIndex,
				DistanceMeters:  leg.DistanceMeters,
				DurationSeconds: leg.DurationSeconds,
			})
		}

		res.DayRoutes = append(res.DayRoutes, dto.DayRouteResponse{
			DayIndex: day.DayIndex,
			Color:    day.Color,
			Route: dto.RouteResponse{
				Legs:        legs,
				EncodedPath: day.Route.EncodedPath,
				IsFallback:  day.Route.IsFallback,
			},
		})

		for _, m := range day.Metrics {
			res.MetricsByStop[m.StopUID] = dto.DrivingMetricResponse{
				MinutesFromPrevious: m.MinutesFromPrevious,
				MetersFromPrevious:  m.MetersFromPrevious,
			}
		}
	}

	for _, f := range result.DayFailures {
		res.DayFailures = append(res.DayFailures, dto.DayFailureResponse{
			DayIndex: f.DayIndex,
			Reason:   f.Reason,
		})
	}

	return res
}
