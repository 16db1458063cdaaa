package services

import (
	"context"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"log"
)

// Display colors assigned to routed days, rotating when an itinerary has
// more days than the palette.
var dayRoutePalette = []string{
	"#4285F4", // blue
	"#EA4335", // red
	"#34A853", // green
	"#9C27B0", // purple
	"#FF6D00", // orange
	"#00BCD4", // cyan
	"#F4B400", // amber
	"#795548", // brown
}

// DayRouteColor returns the display color for the nth successfully routed
// day. Colors follow routed order, not day index, so a failed day does not
// burn a palette slot.
func DayRouteColor(ordinal int) string {
	if ordinal < 0 {
		ordinal = 0
	}
	return dayRoutePalette[ordinal%len(dayRoutePalette)]
}

// The aggregated outcome of routing one itinerary: routed days and failed
// days side by side, both keyed by the original day index.
type ItineraryRoutesResult struct {
	DayRoutes   []domain.DayRoute
	DayFailures []domain.DayFailure
}

// ComputeItineraryRoutes runs the full routing flow for one itinerary:
// segment stops by day, chain each day from the previous day's ending
// stop, fetch a route per day, and extract per-stop driving metrics.
//
// Days are processed sequentially in ascending index order because each
// day's stop list depends on the previous day's ending stop. Failures
// resolve at day granularity: a day whose route cannot be computed is
// reported as a DayFailure and later days still run, chained through the
// failed day's resolved stops. Only context cancellation aborts the whole
// computation.
func ComputeItineraryRoutes(
	ctx context.Context,
	it domain.Itinerary,
	provider ports.DirectionsProvider,
) (_ ItineraryRoutesResult, err error) {
	defer obs.Time(ctx, "compute_itinerary_routes")(&err)

	plans := ConnectDays(SegmentDays(it))

	result := ItineraryRoutesResult{
		DayRoutes:   make([]domain.DayRoute, 0, len(plans)),
		DayFailures: []domain.DayFailure{},
	}

	for _, plan := range plans {
		if err := ctx.Err(); err != nil {
			return ItineraryRoutesResult{}, err
		}

		route, routeErr := provider.Route(ctx, plan.Stops, domain.ModeDriving)
		if routeErr != nil {
			if ctx.Err() != nil {
				return ItineraryRoutesResult{}, ctx.Err()
			}
			log.Printf("routes: day abandoned day=%d stops=%d err=%v", plan.Index, len(plan.Stops), routeErr)
			result.DayFailures = append(result.DayFailures, domain.DayFailure{
				DayIndex: plan.Index,
				Reason:   routeErr.Error(),
			})
			continue
		}

		metrics, metricsErr := ExtractMetrics(route, plan.Stops)
		if metricsErr != nil {
			log.Printf("routes: day abandoned day=%d stops=%d err=%v", plan.Index, len(plan.Stops), metricsErr)
			result.DayFailures = append(result.DayFailures, domain.DayFailure{
				DayIndex: plan.Index,
				Reason:   metricsErr.Error(),
			})
			continue
		}

		result.DayRoutes = append(result.DayRoutes, domain.DayRoute{
			DayIndex: plan.Index,
			Color:    DayRouteColor(len(result.DayRoutes)),
			Route:    route,
			Metrics:  metrics,
		})
	}

	return result, nil
}
