package analyzer

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/edugrade/similarity-service/internal/models"
)

const (
	minPhraseWords   = 5
	maxCommonPhrases = 5
)

// Comparator runs the full pipeline for one submission pair: normalize,
// metric bank, style profiles, composite, classification, plus the auxiliary
// evidence (structural similarity and shared phrases). It is stateless and
// safe for concurrent use.
type Comparator struct {
	normalizer *Normalizer
	metrics    *MetricBank
	profiler   StyleProfiler
	classifier *Classifier
	logger     zerolog.Logger
}

func NewComparator(cfg Config, embedder Embedder, profiler StyleProfiler, logger zerolog.Logger) *Comparator {
	if profiler == nil {
		profiler = NewStyleProfiler()
	}
	return &Comparator{
		normalizer: NewNormalizer(cfg.MinimumTextLength),
		metrics:    NewMetricBank(embedder, logger),
		profiler:   profiler,
		classifier: NewClassifier(cfg),
		logger:     logger,
	}
}

// Compare analyzes one pair and returns nil when either text is not
// comparable (empty or below the minimum length). A nil result is a normal
// outcome, not a failure.
func (c *Comparator) Compare(ctx context.Context, a, b models.SubmissionRef) *models.ComparisonResult {
	normA := c.normalizer.Normalize(a.RawText)
	normB := c.normalizer.Normalize(b.RawText)
	if normA == "" || normB == "" {
		return nil
	}

	scores := c.metrics.Scores(ctx, normA, normB)

	styleA := c.profiler.Profile(a.RawText)
	styleB := c.profiler.Profile(b.RawText)
	styleCloseness := c.profiler.Closeness(styleA, styleB)

	composite := c.classifier.Composite(scores, styleCloseness)
	level, description := c.classifier.Classify(composite)

	structural := structuralSimilarity(a.RawText, b.RawText)
	phrases := commonPhrases(normA, normB)

	c.logger.Debug().
		Str("student_a", a.StudentID).
		Str("student_b", b.StudentID).
		Float64("composite", composite).
		Str("level", level.String()).
		Msg("Pair compared")

	return &models.ComparisonResult{
		SubmissionA:    a.Info(),
		SubmissionB:    b.Info(),
		Level:          level,
		Description:    description,
		CompositeScore: roundPct(composite),
		SimilarityScores: models.SimilarityScores{
			Exact:    roundPct(scores.Exact),
			NGram:    roundPct(scores.NGram),
			Semantic: roundPct(scores.Semantic),
			Sequence: roundPct(scores.Sequence),
			Jaccard:  roundPct(scores.Jaccard),
		},
		StructuralSimilarity:   roundPct(structural),
		WritingStyleSimilarity: roundPct(styleCloseness),
		CommonPhrases:          phrases,
		AnalyzedAt:             time.Now().UTC(),
		TextLengths: models.TextLengths{
			SubmissionA: len(a.RawText),
			SubmissionB: len(b.RawText),
		},
	}
}

// structuralSimilarity aligns the original texts sentence by sentence and
// averages the per-pair character ratio. Differing sentence counts score 0:
// the alignment is strictly positional, so reordered or merged sentences are
// not matched. Known limitation, kept deliberately.
func structuralSimilarity(textA, textB string) float64 {
	sentencesA := SplitSentences(textA)
	sentencesB := SplitSentences(textB)

	if len(sentencesA) == 0 || len(sentencesA) != len(sentencesB) {
		return 0
	}

	var sum float64
	for i := range sentencesA {
		sum += MatchRatio(strings.ToLower(sentencesA[i]), strings.ToLower(sentencesB[i]))
	}
	return sum / float64(len(sentencesA))
}

// commonPhrases collects word n-grams (n >= 5) shared verbatim between the
// two normalized texts and returns the longest five, longest first. If no
// n-gram matches at some length, no longer one can either, so the scan stops.
func commonPhrases(normA, normB string) []string {
	wordsA := strings.Fields(normA)
	wordsB := strings.Fields(normB)

	maxN := len(wordsA)
	if len(wordsB) < maxN {
		maxN = len(wordsB)
	}

	found := make(map[string]int)
	for n := minPhraseWords; n <= maxN; n++ {
		grams := make(map[string]struct{}, len(wordsB)-n+1)
		for j := 0; j+n <= len(wordsB); j++ {
			grams[strings.Join(wordsB[j:j+n], " ")] = struct{}{}
		}

		matched := false
		for i := 0; i+n <= len(wordsA); i++ {
			phrase := strings.Join(wordsA[i:i+n], " ")
			if _, ok := grams[phrase]; ok {
				found[phrase] = n
				matched = true
			}
		}
		if !matched {
			break
		}
	}

	phrases := make([]string, 0, len(found))
	for phrase := range found {
		phrases = append(phrases, phrase)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if found[phrases[i]] != found[phrases[j]] {
			return found[phrases[i]] > found[phrases[j]]
		}
		return phrases[i] < phrases[j]
	})

	if len(phrases) > maxCommonPhrases {
		phrases = phrases[:maxCommonPhrases]
	}
	return phrases
}

// roundPct converts a [0,1] score to a percentage rounded to two decimals.
func roundPct(v float64) float64 {
	return math.Round(v*100*100) / 100
}
