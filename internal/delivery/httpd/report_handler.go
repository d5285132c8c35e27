package httpd

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edugrade/similarity-service/internal/models"
	"github.com/edugrade/similarity-service/internal/service"
)

// QueryReports returns persisted cases ordered by composite score, filtered
// by course and/or level.
func (h *Handler) QueryReports(w http.ResponseWriter, r *http.Request) {
	q := models.ReportQuery{
		Course: r.URL.Query().Get("course"),
		Level:  models.Level(strings.ToUpper(r.URL.Query().Get("level"))),
		Limit:  getIntQueryParam(r, "limit", 0),
	}

	results, err := h.reportService.Query(r.Context(), q)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLevel) {
			writeError(w, http.StatusBadRequest, "Unknown severity level")
			return
		}
		h.logger.Error().Err(err).Msg("Failed to query reports")
		writeError(w, http.StatusInternalServerError, "Failed to query reports")
		return
	}

	writeSuccess(w, results)
}

// GetStudentHistory returns every case the student appears in, newest first.
func (h *Handler) GetStudentHistory(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "student_id")
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "Student ID is required")
		return
	}

	results, err := h.reportService.History(r.Context(), studentID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load student history")
		writeError(w, http.StatusInternalServerError, "Failed to load student history")
		return
	}

	writeSuccess(w, results)
}
