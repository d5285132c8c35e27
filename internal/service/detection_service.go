package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/edugrade/similarity-service/internal/models"
	"github.com/edugrade/similarity-service/internal/repository"
	"github.com/edugrade/similarity-service/internal/service/analyzer"
	"github.com/edugrade/similarity-service/internal/service/integration"
	"github.com/edugrade/similarity-service/internal/worker/queue"
)

// DetectionService runs similarity analysis: ad-hoc single-pair checks,
// synchronous all-pairs batch runs, and enqueueing batch requests for the
// background worker.
type DetectionService interface {
	Compare(ctx context.Context, a, b models.SubmissionRef) *models.ComparisonResult
	RunBatch(ctx context.Context, scope models.BatchScope) (*models.BatchRunResponse, error)
	EnqueueBatch(ctx context.Context, scope models.BatchScope) error
}

// DetectionConfig carries the wiring knobs that are not part of the analyzer
// tuning surface.
type DetectionConfig struct {
	MaxWorkers int
	Exchange   string
	BatchKey   string
	CaseKey    string
}

type detectionService struct {
	submissions integration.SubmissionClient
	comparator  *analyzer.Comparator
	results     repository.ResultRepository
	publisher   queue.Publisher
	cfg         DetectionConfig
	logger      zerolog.Logger
}

func NewDetectionService(
	submissions integration.SubmissionClient,
	comparator *analyzer.Comparator,
	results repository.ResultRepository,
	publisher queue.Publisher,
	cfg DetectionConfig,
	logger zerolog.Logger,
) DetectionService {
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}
	return &detectionService{
		submissions: submissions,
		comparator:  comparator,
		results:     results,
		publisher:   publisher,
		cfg:         cfg,
		logger:      logger,
	}
}

// Compare runs one pair through the pipeline without persisting anything.
// LOW and NONE results are returned too; nil means not comparable.
func (s *detectionService) Compare(ctx context.Context, a, b models.SubmissionRef) *models.ComparisonResult {
	return s.comparator.Compare(ctx, a, b)
}

// RunBatch compares every submission in scope against every other, skipping
// same-student pairs, and persists the MODERATE and above cases. Pairs are
// compared in parallel; the final list is ordered by composite descending.
// Malformed submissions simply produce no result, never an abort.
func (s *detectionService) RunBatch(ctx context.Context, scope models.BatchScope) (*models.BatchRunResponse, error) {
	startTime := time.Now()

	submissions, err := s.submissions.GetSubmissions(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to collect submissions: %w", err)
	}

	s.logger.Info().
		Int("submissions", len(submissions)).
		Str("course", scope.Course).
		Str("submission_type", scope.SubmissionType).
		Msg("Starting detection batch")

	type pair struct {
		a, b models.SubmissionRef
	}

	pairs := make(chan pair)
	var mu sync.Mutex
	var cases []models.ComparisonResult

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.MaxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range pairs {
				result := s.comparator.Compare(ctx, p.a, p.b)
				if result == nil || !result.Level.Reportable() {
					continue
				}
				mu.Lock()
				cases = append(cases, *result)
				mu.Unlock()
			}
		}()
	}

	comparisons := 0
	for i := 0; i < len(submissions); i++ {
		for j := i + 1; j < len(submissions); j++ {
			// A student cannot plagiarize themselves.
			if submissions[i].StudentID == submissions[j].StudentID {
				continue
			}
			comparisons++
			pairs <- pair{a: submissions[i], b: submissions[j]}
		}
	}
	close(pairs)
	wg.Wait()

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].CompositeScore > cases[j].CompositeScore
	})

	for i := range cases {
		if err := s.results.Save(ctx, &cases[i]); err != nil {
			s.logger.Error().Err(err).
				Str("student_a", cases[i].SubmissionA.StudentID).
				Str("student_b", cases[i].SubmissionB.StudentID).
				Msg("Failed to persist comparison result")
			continue
		}
		s.publishCase(ctx, cases[i])
	}

	s.logger.Info().
		Int("submissions", len(submissions)).
		Int("comparisons", comparisons).
		Int("cases_found", len(cases)).
		Dur("elapsed", time.Since(startTime)).
		Msg("Detection batch completed")

	return &models.BatchRunResponse{
		Submissions: len(submissions),
		Comparisons: comparisons,
		CasesFound:  len(cases),
		Results:     cases,
		CompletedAt: time.Now().UTC(),
	}, nil
}

// EnqueueBatch publishes a batch request for the background worker.
func (s *detectionService) EnqueueBatch(ctx context.Context, scope models.BatchScope) error {
	if s.publisher == nil {
		return fmt.Errorf("no queue publisher configured")
	}

	event := models.BatchRequestedEvent{
		Course:         scope.Course,
		SubmissionType: scope.SubmissionType,
		RequestedAt:    time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal batch request event: %w", err)
	}

	if err := s.publisher.Publish(ctx, s.cfg.Exchange, s.cfg.BatchKey, body); err != nil {
		return fmt.Errorf("failed to publish batch request: %w", err)
	}

	s.logger.Info().
		Str("course", scope.Course).
		Str("submission_type", scope.SubmissionType).
		Msg("Batch request enqueued")

	return nil
}

func (s *detectionService) publishCase(ctx context.Context, result models.ComparisonResult) {
	if s.publisher == nil {
		return
	}

	event := models.CaseDetectedEvent{
		ResultID:       result.ID,
		Course:         result.SubmissionA.Course,
		Level:          result.Level,
		CompositeScore: result.CompositeScore,
		StudentA:       result.SubmissionA.StudentID,
		StudentB:       result.SubmissionB.StudentID,
		AnalyzedAt:     result.AnalyzedAt,
	}

	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal case detected event")
		return
	}

	if err := s.publisher.Publish(ctx, s.cfg.Exchange, s.cfg.CaseKey, body); err != nil {
		s.logger.Error().Err(err).
			Str("result_id", result.ID).
			Msg("Failed to publish case detected event")
	}
}
