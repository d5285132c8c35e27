package models

// SubmissionRef is one student's answer content plus metadata, as served by the
// external submission repository. RawText may be empty; an empty submission is
// treated as non-comparable, never as an error.
type SubmissionRef struct {
	StudentID       string `json:"student_id"`
	Course          string `json:"course"`
	AssignmentTitle string `json:"assignment_title"`
	SubmittedAt     string `json:"submitted_at"`
	RawText         string `json:"raw_text"`
}

// SubmissionInfo is the metadata snapshot embedded into a ComparisonResult.
// The full text is never persisted with the result.
type SubmissionInfo struct {
	StudentID       string `json:"student_id"`
	Course          string `json:"course"`
	AssignmentTitle string `json:"assignment_title"`
	SubmittedAt     string `json:"submitted_at"`
}

// Info returns the persistable metadata snapshot of a submission.
func (s SubmissionRef) Info() SubmissionInfo {
	return SubmissionInfo{
		StudentID:       s.StudentID,
		Course:          s.Course,
		AssignmentTitle: s.AssignmentTitle,
		SubmittedAt:     s.SubmittedAt,
	}
}

// BatchScope narrows a batch run to a course and/or submission type.
// Empty fields match everything.
type BatchScope struct {
	Course         string `json:"course,omitempty"`
	SubmissionType string `json:"submission_type,omitempty"`
}
