package models

import "time"

// CompareRequest is the body of an ad-hoc single-pair check.
type CompareRequest struct {
	SubmissionA SubmissionRef `json:"submission_a"`
	SubmissionB SubmissionRef `json:"submission_b"`
}

// CompareResponse wraps a single-pair check outcome. Result is null when the
// pair was not comparable (empty or too-short text on either side).
type CompareResponse struct {
	Comparable bool              `json:"comparable"`
	Result     *ComparisonResult `json:"result"`
}

// BatchRunResponse summarizes a completed batch run.
type BatchRunResponse struct {
	Submissions int                `json:"submissions"`
	Comparisons int                `json:"comparisons"`
	CasesFound  int                `json:"cases_found"`
	Results     []ComparisonResult `json:"results"`
	CompletedAt time.Time          `json:"completed_at"`
}

// ReportQuery carries the result store filters. Limit <= 0 means no limit.
type ReportQuery struct {
	Course string
	Level  Level
	Limit  int
}
