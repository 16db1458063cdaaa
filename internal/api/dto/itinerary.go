package dto

// Inbound itinerary shape for route computation. Stops may arrive without
// coordinates (free-text entries the editor never resolved); the engine
// drops those rather than rejecting the request.
type StopRequest struct {
	UID              string   `json:"uid"`
	Name             string   `json:"name"`
	Lat              *float64 `json:"lat"`
	Lng              *float64 `json:"lng"`
	Role             string   `json:"role"`
	IsDayEndOverride bool     `json:"is_day_end_override"`
}

type DayRequest struct {
	Index int           `json:"index"`
	Stops []StopRequest `json:"stops"`
}

type ComputeRoutesRequest struct {
	Days []DayRequest `json:"days"`
}
