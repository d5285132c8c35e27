package queue

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edugrade/similarity-service/internal/models"
)

// MessageHandler decodes queue payloads into typed events.
type MessageHandler struct {
	logger zerolog.Logger
}

func NewMessageHandler(logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{logger: logger}
}

// ParseBatchRequest decodes a detection.batch.requested payload. An empty
// scope is valid and means "everything".
func (h *MessageHandler) ParseBatchRequest(body []byte) (*models.BatchRequestedEvent, error) {
	var event models.BatchRequestedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to decode batch request event: %w", err)
	}

	h.logger.Debug().
		Str("course", event.Course).
		Str("submission_type", event.SubmissionType).
		Msg("Parsed batch request event")

	return &event, nil
}
