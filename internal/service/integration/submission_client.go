package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/edugrade/similarity-service/internal/models"
)

// SubmissionClient pulls submission records from the external submission
// repository. How the text was extracted upstream (PDF, form field) is not
// this service's concern.
type SubmissionClient interface {
	GetSubmissions(ctx context.Context, scope models.BatchScope) ([]models.SubmissionRef, error)
}

type submissionClient struct {
	baseURL    string
	endpoint   string
	retryCount int
	retryDelay time.Duration
	client     *http.Client
	logger     zerolog.Logger
}

func NewSubmissionClient(baseURL, endpoint string, timeout time.Duration, retryCount int, retryDelay time.Duration, logger zerolog.Logger) SubmissionClient {
	return &submissionClient{
		baseURL:    baseURL,
		endpoint:   endpoint,
		retryCount: retryCount,
		retryDelay: retryDelay,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type submissionListResponse struct {
	Submissions []models.SubmissionRef `json:"submissions"`
}

func (c *submissionClient) GetSubmissions(ctx context.Context, scope models.BatchScope) ([]models.SubmissionRef, error) {
	query := url.Values{}
	if scope.Course != "" {
		query.Set("course", scope.Course)
	}
	if scope.SubmissionType != "" {
		query.Set("type", scope.SubmissionType)
	}

	reqURL := c.baseURL + c.endpoint
	if encoded := query.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	var lastErr error
	for i := 0; i <= c.retryCount; i++ {
		if i > 0 {
			c.logger.Warn().Int("attempt", i).Msg("Retrying submission fetch")
			time.Sleep(c.retryDelay * time.Duration(i))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			lastErr = fmt.Errorf("failed to create request: %w", err)
			continue
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to fetch submissions: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			var listResp submissionListResponse
			if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
				resp.Body.Close()
				lastErr = fmt.Errorf("failed to decode submissions response: %w", err)
				continue
			}
			resp.Body.Close()

			c.logger.Debug().
				Int("count", len(listResp.Submissions)).
				Str("course", scope.Course).
				Str("type", scope.SubmissionType).
				Msg("Got submissions")

			return listResp.Submissions, nil
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("submission service returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil, fmt.Errorf("failed to fetch submissions after %d attempts: %w", c.retryCount+1, lastErr)
}
