package domain

import "strings"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as [lat, lng] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lat, c.Lng} }

// Role of a stop within a day. Lodging stops are treated specially when
// resolving where a day's route ends.
type StopRole string

const (
	RolePlace   StopRole = "place"
	RoleLodging StopRole = "lodging"
)

// Represents a single stop as supplied by the itinerary editor.
// Free-text entries that were never resolved against the place provider
// carry no coordinates; those are dropped during segmentation rather
// than treated as errors.
type ItineraryStop struct {
	UID              string
	Name             string
	Lat              *float64
	Lng              *float64
	Role             StopRole
	IsDayEndOverride bool
}

// Represents a validated stop with concrete coordinates. Identity is the
// caller-assigned UID; coordinates are immutable once a Stop is built.
type Stop struct {
	UID              string
	Name             string
	Coords           Coordinates
	Role             StopRole
	IsDayEndOverride bool
}

// Resolve converts an editor stop into a routable Stop. The second return
// is false when the stop lacks coordinates or a usable name.
func (s ItineraryStop) Resolve() (Stop, bool) {
	if s.Lat == nil || s.Lng == nil {
		return Stop{}, false
	}
	if strings.TrimSpace(s.Name) == "" {
		return Stop{}, false
	}
	return Stop{
		UID:              s.UID,
		Name:             s.Name,
		Coords:           Coordinates{Lat: *s.Lat, Lng: *s.Lng},
		Role:             s.Role,
		IsDayEndOverride: s.IsDayEndOverride,
	}, true
}
