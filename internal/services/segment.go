package services

import (
	"itinerary-route-service/internal/domain"
	"sort"
)

// SegmentDays groups an itinerary's stops by day index, keeping only stops
// that resolve to concrete coordinates and a usable name. Unresolved
// free-text entries are dropped silently rather than failing the day; days
// left with no valid stop are omitted from the result entirely.
func SegmentDays(it domain.Itinerary) map[int][]domain.Stop {
	days := make(map[int][]domain.Stop, len(it.Days))

	for _, day := range it.Days {
		for _, raw := range day.Stops {
			stop, ok := raw.Resolve()
			if !ok {
				continue
			}
			days[day.Index] = append(days[day.Index], stop)
		}
	}

	return days
}

// Return the present day indices in ascending order. Downstream processing
// is strictly day-ordered because each day chains from the previous one.
func sortedDayIndices(days map[int][]domain.Stop) []int {
	indices := make([]int, 0, len(days))
	for idx := range days {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}
