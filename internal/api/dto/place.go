package dto

type PlaceResponse struct {
	PlaceID string  `json:"place_id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Rating  float64 `json:"rating"`
	Phone   string  `json:"phone"`
	Website string  `json:"website"`
}

type SearchPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}

type PhotoURLResponse struct {
	URL string `json:"url"`
}
