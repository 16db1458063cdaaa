package gmaps

// Provider wire formats. The HTTP layer always answers 200 for
// application-level failures; the JSON status field carries the outcome.

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

type directionsResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	Routes       []wireRoute `json:"routes"`
}

type wireRoute struct {
	Legs             []wireLeg    `json:"legs"`
	OverviewPolyline wirePolyline `json:"overview_polyline"`
}

type wireLeg struct {
	Distance wireValue `json:"distance"`
	Duration wireValue `json:"duration"`
}

type wirePolyline struct {
	Points string `json:"points"`
}

type wireValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type placesSearchResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	Results      []wirePlace `json:"results"`
}

type placeDetailsResponse struct {
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Result       wirePlace `json:"result"`
}

type wirePlace struct {
	PlaceID              string       `json:"place_id"`
	Name                 string       `json:"name"`
	FormattedAddress     string       `json:"formatted_address"`
	Geometry             wireGeometry `json:"geometry"`
	Rating               float64      `json:"rating"`
	FormattedPhoneNumber string       `json:"formatted_phone_number"`
	Website              string       `json:"website"`
}

type wireGeometry struct {
	Location wireLatLng `json:"location"`
}

type wireLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
