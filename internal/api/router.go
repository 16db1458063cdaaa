package api

import (
	"itinerary-route-service/internal/api/handlers"
	"itinerary-route-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	directions ports.DirectionsProvider,
	places ports.PlaceProvider,
	cacheStats ports.CacheStatsSource,
) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Provider: directions}
	placeHandler := &handlers.PlaceHandler{Provider: places}
	healthHandler := &handlers.HealthHandler{Cache: cacheStats}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/routes", routeHandler.Compute)
	mux.HandleFunc("/places/search", placeHandler.Search)
	mux.HandleFunc("/places/details", placeHandler.Details)
	mux.HandleFunc("/places/photo", placeHandler.Photo)

	return loggingMiddleware(mux)
}
