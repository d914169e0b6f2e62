package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// Handler serves the aggregated health as JSON. It always answers 200; the
// body says healthy or unhealthy.
func Handler(h *ServiceHealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "unhealthy"
		if h.IsHealthy() {
			status = "healthy"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":     status,
			"components": h.Components(),
			"timestamp":  time.Now().Format(time.RFC3339),
		})
	}
}
