package domain

// Represents one day of an itinerary: an ordered group of stops visited
// together. Index is zero-based and assigned by the editor; order within
// Stops is the intended visiting order and is significant.
type ItineraryDay struct {
	Index int
	Stops []ItineraryStop
}

// Represents a full multi-day itinerary as supplied by the editor or the
// generation layer. The engine never mutates it in place.
type Itinerary struct {
	Days []ItineraryDay
}
