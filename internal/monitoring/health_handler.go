package monitoring

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// HealthHandler answers 200 once the model is loaded and the last probe
// succeeded, and 503 otherwise.
func HealthHandler(loaded func() bool, healthy *atomic.Bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", ModelLoaded: loaded()}
		status := http.StatusOK
		switch {
		case !resp.ModelLoaded:
			resp.Status = "not_loaded"
			status = http.StatusServiceUnavailable
		case !healthy.Load():
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
