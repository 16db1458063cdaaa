package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-route-service/internal/ports"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps the engine's error taxonomy onto HTTP statuses:
// invalid input is the caller's fault, a provider failure is upstream
// trouble, anything else stays an opaque internal error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *ports.ProviderError
	switch {
	case errors.Is(err, ports.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &pe):
		log.Printf("provider failure: method=%s path=%s op=%s status=%s", r.Method, r.URL.Path, pe.Operation, pe.Status)
		writeError(w, r, http.StatusBadGateway, fmt.Sprintf("provider rejected %s with status %s", pe.Operation, pe.Status))
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
