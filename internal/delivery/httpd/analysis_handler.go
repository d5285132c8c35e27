package httpd

import (
	"net/http"

	"github.com/edugrade/similarity-service/internal/models"
	"github.com/edugrade/similarity-service/pkg/utils"
)

// ComparePair runs an ad-hoc single-pair check. Unlike batch runs it returns
// results of any level, or a null result when the pair is not comparable.
func (h *Handler) ComparePair(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.detectionService.Compare(r.Context(), req.SubmissionA, req.SubmissionB)

	writeSuccess(w, models.CompareResponse{
		Comparable: result != nil,
		Result:     result,
	})
}

// RunBatch runs a synchronous all-pairs batch over the requested scope.
func (h *Handler) RunBatch(w http.ResponseWriter, r *http.Request) {
	var scope models.BatchScope
	if err := utils.ReadJSON(r, &scope); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.detectionService.RunBatch(r.Context(), scope)
	if err != nil {
		h.logger.Error().Err(err).Msg("Batch run failed")
		writeError(w, http.StatusBadGateway, "Failed to run detection batch")
		return
	}

	writeSuccess(w, response)
}

// RunBatchAsync enqueues a batch request for the background worker.
func (h *Handler) RunBatchAsync(w http.ResponseWriter, r *http.Request) {
	var scope models.BatchScope
	if err := utils.ReadJSON(r, &scope); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.detectionService.EnqueueBatch(r.Context(), scope); err != nil {
		h.logger.Error().Err(err).Msg("Failed to enqueue batch request")
		writeError(w, http.StatusServiceUnavailable, "Failed to enqueue batch request")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"success": true,
		"status":  "queued",
	})
}
