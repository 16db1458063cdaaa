package services

import (
	"itinerary-route-service/internal/domain"
)

// A single day's routable stop list as produced by the cross-day
// connector. Stops is the list the route is computed over; when Prefixed
// is true its first element is a copy of the previous day's ending stop,
// carried over so the route continues from where the traveler stopped.
type DayPlan struct {
	Index    int
	Stops    []domain.Stop
	Prefixed bool
}

// DayEndStop resolves where a day's route terminates, evaluated against
// the day's own stop list in priority order: an explicit day-end override
// wins; otherwise the last stop that is not lodging; otherwise the last
// stop regardless of role. The lodging rule reflects that travelers
// typically sightsee after checking in, so the hotel rarely marks the true
// end of the day's driving.
func DayEndStop(stops []domain.Stop) (domain.Stop, bool) {
	if len(stops) == 0 {
		return domain.Stop{}, false
	}

	for _, s := range stops {
		if s.IsDayEndOverride {
			return s, true
		}
	}

	for i := len(stops) - 1; i >= 0; i-- {
		if stops[i].Role != domain.RoleLodging {
			return stops[i], true
		}
	}

	return stops[len(stops)-1], true
}

// ConnectDays walks the segmented days in ascending index order and builds
// the stop list each day's route is computed over. Every day after the
// first present day is prefixed with the nearest preceding day's ending
// stop. A day whose list still has fewer than 2 stops cannot form a leg
// and yields no plan, but its ending stop keeps chaining into later days.
func ConnectDays(days map[int][]domain.Stop) []DayPlan {
	plans := make([]DayPlan, 0, len(days))

	var prevEnd *domain.Stop

	for _, idx := range sortedDayIndices(days) {
		native := days[idx]

		stops := native
		prefixed := false
		if prevEnd != nil {
			stops = append([]domain.Stop{*prevEnd}, native...)
			prefixed = true
		}

		// The day-end rule reads the native list only; the synthetic
		// prefix belongs to the previous day.
		if end, ok := DayEndStop(native); ok {
			prevEnd = &end
		}

		if len(stops) < 2 {
			continue
		}

		plans = append(plans, DayPlan{Index: idx, Stops: stops, Prefixed: prefixed})
	}

	return plans
}
