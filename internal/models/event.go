package models

import "time"

// BatchRequestedEvent asks the worker to run a batch over a scope. Published by
// the async HTTP endpoint and consumed from the detection queue.
type BatchRequestedEvent struct {
	Course         string    `json:"course,omitempty"`
	SubmissionType string    `json:"submission_type,omitempty"`
	RequestedBy    string    `json:"requested_by,omitempty"`
	RequestedAt    time.Time `json:"requested_at"`
}

// CaseDetectedEvent notifies downstream consumers (dashboards) that a new
// reportable case was persisted.
type CaseDetectedEvent struct {
	ResultID       string    `json:"result_id"`
	Course         string    `json:"course"`
	Level          Level     `json:"level"`
	CompositeScore float64   `json:"composite_score"`
	StudentA       string    `json:"student_a"`
	StudentB       string    `json:"student_b"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
}
