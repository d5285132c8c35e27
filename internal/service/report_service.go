package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edugrade/similarity-service/internal/models"
	"github.com/edugrade/similarity-service/internal/repository"
)

// ErrInvalidLevel is returned for queries with an unknown severity filter.
var ErrInvalidLevel = errors.New("invalid severity level")

// ReportService is the dashboard-facing read side of the result store.
type ReportService interface {
	Query(ctx context.Context, q models.ReportQuery) ([]models.ComparisonResult, error)
	History(ctx context.Context, studentID string) ([]models.ComparisonResult, error)
}

type reportService struct {
	results repository.ResultRepository
	logger  zerolog.Logger
}

func NewReportService(results repository.ResultRepository, logger zerolog.Logger) ReportService {
	return &reportService{
		results: results,
		logger:  logger,
	}
}

func (s *reportService) Query(ctx context.Context, q models.ReportQuery) ([]models.ComparisonResult, error) {
	if q.Level != "" && !q.Level.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLevel, q.Level)
	}

	results, err := s.results.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}

	return results, nil
}

func (s *reportService) History(ctx context.Context, studentID string) ([]models.ComparisonResult, error) {
	results, err := s.results.History(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student history: %w", err)
	}

	return results, nil
}
