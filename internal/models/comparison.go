package models

import "time"

// Level is the severity classification of one pairwise comparison.
type Level string

const (
	LevelNone     Level = "NONE"
	LevelLow      Level = "LOW"
	LevelModerate Level = "MODERATE"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

func (l Level) String() string {
	return string(l)
}

// Reportable reports whether a case of this level is retained by batch runs.
// LOW and NONE results are still returned by ad-hoc single-pair checks.
func (l Level) Reportable() bool {
	switch l {
	case LevelModerate, LevelHigh, LevelCritical:
		return true
	default:
		return false
	}
}

// Valid reports whether l is one of the known severity levels.
func (l Level) Valid() bool {
	switch l {
	case LevelNone, LevelLow, LevelModerate, LevelHigh, LevelCritical:
		return true
	default:
		return false
	}
}

// SimilarityScores holds the five metric outputs for one pair as percentages
// (0-100, two decimals). A metric that could not be computed is 0.
type SimilarityScores struct {
	Exact    float64 `json:"exact"`
	NGram    float64 `json:"ngram"`
	Semantic float64 `json:"semantic"`
	Sequence float64 `json:"sequence"`
	Jaccard  float64 `json:"jaccard"`
}

// TextLengths records the character lengths of the two raw texts that were
// compared.
type TextLengths struct {
	SubmissionA int `json:"submission_a"`
	SubmissionB int `json:"submission_b"`
}

// ComparisonResult is the immutable record of one pairwise analysis. All score
// fields are percentages (0-100, two decimals). ID is assigned by the result
// store on save.
type ComparisonResult struct {
	ID                     string           `json:"id,omitempty"`
	SubmissionA            SubmissionInfo   `json:"submission_a_info"`
	SubmissionB            SubmissionInfo   `json:"submission_b_info"`
	Level                  Level            `json:"level"`
	Description            string           `json:"description"`
	CompositeScore         float64          `json:"composite_score"`
	SimilarityScores       SimilarityScores `json:"similarity_scores"`
	StructuralSimilarity   float64          `json:"structural_similarity"`
	WritingStyleSimilarity float64          `json:"writing_style_similarity"`
	CommonPhrases          []string         `json:"common_phrases"`
	AnalyzedAt             time.Time        `json:"analyzed_at"`
	TextLengths            TextLengths      `json:"text_lengths"`
}
