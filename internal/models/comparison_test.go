package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLevel_Reportable(t *testing.T) {
	cases := []struct {
		level Level
		want  bool
	}{
		{LevelNone, false},
		{LevelLow, false},
		{LevelModerate, true},
		{LevelHigh, true},
		{LevelCritical, true},
	}
	for _, c := range cases {
		if got := c.level.Reportable(); got != c.want {
			t.Errorf("%s.Reportable() = %v, want %v", c.level, got, c.want)
		}
	}
}

func TestLevel_Valid(t *testing.T) {
	for _, level := range []Level{LevelNone, LevelLow, LevelModerate, LevelHigh, LevelCritical} {
		if !level.Valid() {
			t.Errorf("%s.Valid() = false, want true", level)
		}
	}
	for _, level := range []Level{"", "SEVERE", "none", "critical"} {
		if level.Valid() {
			t.Errorf("%q.Valid() = true, want false", level)
		}
	}
}

// The result store persists the whole result as a JSON payload, so a stored
// record must read back with its scores and level intact.
func TestComparisonResult_SurvivesPersistenceEncoding(t *testing.T) {
	original := ComparisonResult{
		ID:             "3f1c2a9e-0000-4000-8000-000000000001",
		SubmissionA:    SubmissionInfo{StudentID: "alice@school.edu", Course: "BIO-101"},
		SubmissionB:    SubmissionInfo{StudentID: "bob@school.edu", Course: "BIO-101"},
		Level:          LevelHigh,
		Description:    "High similarity detected - Significant plagiarism suspected",
		CompositeScore: 88.52,
		SimilarityScores: SimilarityScores{
			Exact: 91.3, NGram: 84.01, Semantic: 90.25, Sequence: 77.8, Jaccard: 95.0,
		},
		StructuralSimilarity:   64.1,
		WritingStyleSimilarity: 93.47,
		CommonPhrases:          []string{"mitochondria produce usable chemical energy continuously"},
		AnalyzedAt:             time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
		TextLengths:            TextLengths{SubmissionA: 812, SubmissionB: 798},
	}

	payload, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var restored ComparisonResult
	if err := json.Unmarshal(payload, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if restored.CompositeScore != original.CompositeScore {
		t.Errorf("composite = %v, want %v", restored.CompositeScore, original.CompositeScore)
	}
	if restored.Level != original.Level {
		t.Errorf("level = %s, want %s", restored.Level, original.Level)
	}
	if restored.SimilarityScores != original.SimilarityScores {
		t.Errorf("scores = %+v, want %+v", restored.SimilarityScores, original.SimilarityScores)
	}
	if restored.SubmissionA != original.SubmissionA || restored.SubmissionB != original.SubmissionB {
		t.Error("submission snapshots did not survive encoding")
	}
}

func TestSubmissionRef_Info(t *testing.T) {
	ref := SubmissionRef{
		StudentID:       "alice@school.edu",
		Course:          "BIO-101",
		AssignmentTitle: "Midterm essay",
		SubmittedAt:     "2025-03-12T10:00:00Z",
		RawText:         "the full text must never leak into the persisted snapshot",
	}

	info := ref.Info()
	if info.StudentID != ref.StudentID || info.Course != ref.Course ||
		info.AssignmentTitle != ref.AssignmentTitle || info.SubmittedAt != ref.SubmittedAt {
		t.Errorf("Info() dropped metadata: %+v", info)
	}
}
