package domain

// Travel mode requested from the directions provider.
type TravelMode string

const ModeDriving TravelMode = "driving"

// Represents the distance/duration segment between two consecutive stops
// in a route. Legs are 1:1 with consecutive stop pairs; OriginIndex is the
// position of the leg's starting stop within the routed stop list.
//
// JSON tags define the cache payload schema and must stay stable across
// releases, or persisted snapshots stop being readable.
type Leg struct {
	OriginIndex     int     `json:"origin_index"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Represents the drivable (or synthesized) path connecting an ordered list
// of stops. EncodedPath is a provider-native encoded polyline, or for
// fallback routes a pipe-delimited list of "lat,lng" pairs. The two
// encodings are distinguishable only via IsFallback and must be decoded
// differently by consumers.
type Route struct {
	Legs        []Leg  `json:"legs"`
	EncodedPath string `json:"encoded_path"`
	IsFallback  bool   `json:"is_fallback"`
}

// Incremental driving time and distance attributed to the destination stop
// of a leg. MinutesFromPrevious is rounded to the nearest whole minute.
type DrivingMetric struct {
	StopUID             string
	MinutesFromPrevious int
	MetersFromPrevious  float64
}
