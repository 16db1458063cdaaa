package handlers

import (
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/ports"
	"net/http"
	"strconv"
)

// PlaceHandler exposes cached place lookups.
type PlaceHandler struct {
	Provider ports.PlaceProvider
}

func (h *PlaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	places, err := h.Provider.TextSearch(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.SearchPlacesResponse{Places: make([]dto.PlaceResponse, 0, len(places))}
	for _, p := range places {
		res.Places = append(res.Places, placeResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PlaceHandler) Details(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	place, err := h.Provider.PlaceDetails(r.Context(), r.URL.Query().Get("place_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, placeResponse(place))
}

func (h *PlaceHandler) Photo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	maxWidth := 0
	if raw := r.URL.Query().Get("max_width"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "max_width must be an integer")
			return
		}
		maxWidth = parsed
	}

	url, err := h.Provider.PhotoURL(r.Context(), r.URL.Query().Get("ref"), maxWidth)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PhotoURLResponse{URL: url})
}

func placeResponse(p domain.Place) dto.PlaceResponse {
	return dto.PlaceResponse{
		PlaceID: p.PlaceID,
		Name:    p.Name,
		Address: p.Address,
		Lat:     p.Lat,
		Lng:     p.Lng,
		Rating:  p.Rating,
		Phone:   p.Phone,
		Website: p.Website,
	}
}
