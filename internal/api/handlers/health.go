package handlers

import (
	"itinerary-route-service/internal/ports"
	"net/http"
)

// HealthHandler provides a liveness check with cache counters attached.
type HealthHandler struct {
	Cache ports.CacheStatsSource
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]any{"status": "ok"}
	if h.Cache != nil {
		st := h.Cache.Stats()
		res["cache"] = map[string]int64{
			"entries": int64(st.Entries),
			"hits":    st.Hits,
			"misses":  st.Misses,
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
