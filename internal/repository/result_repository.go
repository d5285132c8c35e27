package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edugrade/similarity-service/internal/models"
	"github.com/edugrade/similarity-service/pkg/utils"
)

// ResultRepository is the result store: append-only persistence of classified
// comparison results plus the dashboard-facing queries. Every save creates a
// new record; nothing is overwritten or merged.
type ResultRepository interface {
	Save(ctx context.Context, result *models.ComparisonResult) error
	Query(ctx context.Context, q models.ReportQuery) ([]models.ComparisonResult, error)
	History(ctx context.Context, studentID string) ([]models.ComparisonResult, error)
	Ping(ctx context.Context) error
}

type resultRepository struct {
	*PostgresRepository
}

func NewResultRepository(db *sql.DB, logger zerolog.Logger) ResultRepository {
	return &resultRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// Save assigns the record its id and inserts it as one unit, with the full
// result mirrored into a JSONB payload for dashboard consumers.
func (r *resultRepository) Save(ctx context.Context, result *models.ComparisonResult) error {
	if result.ID == "" {
		result.ID = utils.GenerateUUID()
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal comparison result: %w", err)
	}

	query := `
		INSERT INTO comparison_results (
			id, course, level, student_a, student_b,
			composite_score, analyzed_at, result
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		result.ID,
		result.SubmissionA.Course,
		result.Level.String(),
		result.SubmissionA.StudentID,
		result.SubmissionB.StudentID,
		result.CompositeScore,
		result.AnalyzedAt,
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comparison result: %w", err)
	}

	return nil
}

// Query returns results ordered by composite score descending, optionally
// filtered by course and level, truncated to q.Limit after sorting.
func (r *resultRepository) Query(ctx context.Context, q models.ReportQuery) ([]models.ComparisonResult, error) {
	query := `
		SELECT id, result
		FROM comparison_results
		WHERE ($1 = '' OR course = $1)
			AND ($2 = '' OR level = $2)
		ORDER BY composite_score DESC, analyzed_at DESC
	`
	args := []interface{}{q.Course, q.Level.String()}

	if q.Limit > 0 {
		query += " LIMIT $3"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparison results: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// History returns every result where the student appears on either side,
// newest analysis first.
func (r *resultRepository) History(ctx context.Context, studentID string) ([]models.ComparisonResult, error) {
	query := `
		SELECT id, result
		FROM comparison_results
		WHERE student_a = $1 OR student_b = $1
		ORDER BY analyzed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query student history: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// collect scans id/payload rows, skipping individually corrupt records so a
// single bad row never fails a whole read.
func (r *resultRepository) collect(rows *sql.Rows) ([]models.ComparisonResult, error) {
	results := []models.ComparisonResult{}
	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			r.logger.Warn().Err(err).Msg("Skipping unreadable comparison result row")
			continue
		}

		var result models.ComparisonResult
		if err := json.Unmarshal(payload, &result); err != nil {
			r.logger.Warn().Err(err).Str("result_id", id).Msg("Skipping corrupt comparison result payload")
			continue
		}

		result.ID = id
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comparison results: %w", err)
	}

	return results, nil
}
