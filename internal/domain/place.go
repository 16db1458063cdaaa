package domain

// Represents a place record returned by the lookup provider. Search
// results populate the basic fields; a details lookup fills the rest.
type Place struct {
	PlaceID string
	Name    string
	Address string
	Lat     float64
	Lng     float64
	Rating  float64
	Phone   string
	Website string
}
