package httpd

import (
	"net/http"
	"time"
)

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "similarity-service",
		"time":    time.Now().UTC(),
	})
}

func (h *Handler) GetServiceStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	}

	if h.health != nil {
		if err := h.health.PingStore(r); err != nil {
			status["status"] = "degraded"
			status["store"] = err.Error()
		} else {
			status["store"] = "ok"
		}
		status["workers"] = h.health.WorkerStats()
	}

	writeJSON(w, http.StatusOK, status)
}
