package httpd

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/edugrade/similarity-service/internal/service"
)

type Handler struct {
	detectionService service.DetectionService
	reportService    service.ReportService
	health           HealthChecker
	logger           zerolog.Logger
}

// HealthChecker reports on the service's dependencies for /status.
type HealthChecker interface {
	PingStore(r *http.Request) error
	WorkerStats() map[string]interface{}
}

func NewHandler(
	detectionService service.DetectionService,
	reportService service.ReportService,
	health HealthChecker,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		detectionService: detectionService,
		reportService:    reportService,
		health:           health,
		logger:           logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)
	router.Get("/status", h.GetServiceStatus)

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/analysis", func(r chi.Router) {
			r.Post("/compare", h.ComparePair)
			r.Post("/batch", h.RunBatch)
			r.Post("/batch/async", h.RunBatchAsync)
		})

		api.Route("/reports", func(r chi.Router) {
			r.Get("/", h.QueryReports)
			r.Get("/student/{student_id}", h.GetStudentHistory)
		})
	})
}

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}
