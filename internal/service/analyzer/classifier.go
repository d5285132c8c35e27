package analyzer

import (
	"github.com/edugrade/similarity-service/internal/models"
)

// lowThreshold separates LOW from NONE. The three upper boundaries are
// deployment configuration; this one is fixed.
const lowThreshold = 0.50

// Weights are the per-metric contributions to the composite score. They are
// expected to sum to at most 1; the style bonus comes on top.
type Weights struct {
	Exact    float64
	NGram    float64
	Semantic float64
	Sequence float64
	Jaccard  float64
}

// Config is the tuning surface of the detection pipeline, passed into the
// comparator and classifier at construction time.
type Config struct {
	MinimumTextLength   int
	ExactMatchThreshold float64
	HighThreshold       float64
	ModerateThreshold   float64
	Weights             Weights
	StyleWeight         float64
}

// DefaultConfig returns the stock tuning. Semantic similarity carries the
// largest weight since paraphrased copies evade exact and n-gram matching;
// the style bonus can nudge borderline cases but never dominate.
func DefaultConfig() Config {
	return Config{
		MinimumTextLength:   50,
		ExactMatchThreshold: 0.95,
		HighThreshold:       0.85,
		ModerateThreshold:   0.70,
		Weights: Weights{
			Exact:    0.25,
			NGram:    0.25,
			Semantic: 0.30,
			Sequence: 0.15,
			Jaccard:  0.05,
		},
		StyleWeight: 0.10,
	}
}

// Classifier aggregates metric scores into one composite value and maps it to
// a severity level.
type Classifier struct {
	cfg Config
}

func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Composite is the weighted sum of the five metrics plus the style bonus,
// capped at 1.0.
func (c *Classifier) Composite(scores Scores, styleCloseness float64) float64 {
	w := c.cfg.Weights
	composite := scores.Exact*w.Exact +
		scores.NGram*w.NGram +
		scores.Semantic*w.Semantic +
		scores.Sequence*w.Sequence +
		scores.Jaccard*w.Jaccard

	composite += styleCloseness * c.cfg.StyleWeight

	if composite > 1.0 {
		composite = 1.0
	}
	return composite
}

// Classify maps a composite score in [0,1] to a severity level and a
// human-readable rationale, evaluating thresholds highest-first.
func (c *Classifier) Classify(composite float64) (models.Level, string) {
	switch {
	case composite >= c.cfg.ExactMatchThreshold:
		return models.LevelCritical, "Extremely high similarity - Likely exact copy or minimal changes"
	case composite >= c.cfg.HighThreshold:
		return models.LevelHigh, "High similarity detected - Significant plagiarism suspected"
	case composite >= c.cfg.ModerateThreshold:
		return models.LevelModerate, "Moderate similarity - Possible plagiarism or common source"
	case composite >= lowThreshold:
		return models.LevelLow, "Low similarity - May share common concepts or sources"
	default:
		return models.LevelNone, "No significant similarity detected"
	}
}
