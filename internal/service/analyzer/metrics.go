package analyzer

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"
)

// TextPair is one pair of normalized texts handed to a similarity metric.
type TextPair struct {
	A string
	B string
}

// Metric scores a normalized text pair in [0,1]. Implementations never fail:
// malformed or degenerate input degrades to 0.
type Metric interface {
	Name() string
	Score(ctx context.Context, pair TextPair) float64
}

// Embedder produces a dense sentence embedding for a text. The semantic
// metric treats any error as a zero score.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Scores holds the five metric outputs for one pair, each in [0,1].
type Scores struct {
	Exact    float64
	NGram    float64
	Semantic float64
	Sequence float64
	Jaccard  float64
}

// MetricBank evaluates the fixed set of five similarity metrics.
type MetricBank struct {
	exact    Metric
	ngram    Metric
	semantic Metric
	sequence Metric
	jaccard  Metric
}

// NewMetricBank builds the bank. embedder may be nil, in which case the
// semantic metric always scores 0 (degraded mode, never an error).
func NewMetricBank(embedder Embedder, logger zerolog.Logger) *MetricBank {
	return &MetricBank{
		exact:    exactMetric{},
		ngram:    ngramMetric{logger: logger},
		semantic: semanticMetric{embedder: embedder, logger: logger},
		sequence: sequenceMetric{},
		jaccard:  jaccardMetric{},
	}
}

// Scores computes all five metrics for a normalized pair. Empty input on
// either side yields all-zero scores.
func (b *MetricBank) Scores(ctx context.Context, normA, normB string) Scores {
	if normA == "" || normB == "" {
		return Scores{}
	}

	pair := TextPair{A: normA, B: normB}
	return Scores{
		Exact:    b.exact.Score(ctx, pair),
		NGram:    b.ngram.Score(ctx, pair),
		Semantic: b.semantic.Score(ctx, pair),
		Sequence: b.sequence.Score(ctx, pair),
		Jaccard:  b.jaccard.Score(ctx, pair),
	}
}

// exactMetric is the character-level matching-blocks ratio
// (Ratcliff/Obershelp) over the two normalized strings.
type exactMetric struct{}

func (exactMetric) Name() string { return "exact" }

func (exactMetric) Score(_ context.Context, pair TextPair) float64 {
	return MatchRatio(pair.A, pair.B)
}

// semanticMetric encodes both texts with the embedding service and takes the
// cosine similarity of the vectors.
type semanticMetric struct {
	embedder Embedder
	logger   zerolog.Logger
}

func (semanticMetric) Name() string { return "semantic" }

func (m semanticMetric) Score(ctx context.Context, pair TextPair) float64 {
	if m.embedder == nil {
		return 0
	}

	vecA, err := m.embedder.Embed(ctx, pair.A)
	if err != nil {
		m.logger.Warn().Err(err).Msg("Embedding failed, semantic score degraded to 0")
		return 0
	}

	vecB, err := m.embedder.Embed(ctx, pair.B)
	if err != nil {
		m.logger.Warn().Err(err).Msg("Embedding failed, semantic score degraded to 0")
		return 0
	}

	return clamp01(Cosine(vecA, vecB))
}

// sequenceMetric is the word-level longest common subsequence normalized by
// the longer text's word count.
type sequenceMetric struct{}

func (sequenceMetric) Name() string { return "sequence" }

func (sequenceMetric) Score(_ context.Context, pair TextPair) float64 {
	wordsA := strings.Fields(pair.A)
	wordsB := strings.Fields(pair.B)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	longer := len(wordsA)
	if len(wordsB) > longer {
		longer = len(wordsB)
	}

	return float64(lcsLength(wordsA, wordsB)) / float64(longer)
}

// jaccardMetric is word-set overlap: |A ∩ B| / |A ∪ B|, duplicates ignored.
type jaccardMetric struct{}

func (jaccardMetric) Name() string { return "jaccard" }

func (jaccardMetric) Score(_ context.Context, pair TextPair) float64 {
	setA := wordSet(pair.A)
	setB := wordSet(pair.B)

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		set[w] = struct{}{}
	}
	return set
}

// MatchRatio is the Ratcliff/Obershelp similarity over two strings: twice the
// total size of the recursively matched blocks divided by the combined length.
// Block matching is order-sensitive, so the operands are put in canonical
// order first; the ratio is the same whichever way the pair is passed.
func MatchRatio(a, b string) float64 {
	if a > b {
		a, b = b, a
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra)+len(rb) == 0 {
		return 0
	}

	matched := matchingBlocksTotal(ra, rb)
	return 2 * float64(matched) / float64(len(ra)+len(rb))
}

// matchingBlocksTotal sums the lengths of matching blocks found by repeatedly
// taking the longest common substring and recursing left and right of it.
func matchingBlocksTotal(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}
	total := 0

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		besti, bestj, bestSize := s.alo, s.blo, 0
		runLen := map[int]int{}
		for i := s.alo; i < s.ahi; i++ {
			newRunLen := map[int]int{}
			for _, j := range b2j[a[i]] {
				if j < s.blo {
					continue
				}
				if j >= s.bhi {
					break
				}
				k := runLen[j-1] + 1
				newRunLen[j] = k
				if k > bestSize {
					besti, bestj, bestSize = i-k+1, j-k+1, k
				}
			}
			runLen = newRunLen
		}

		if bestSize == 0 {
			continue
		}
		total += bestSize
		queue = append(queue,
			span{s.alo, besti, s.blo, bestj},
			span{besti + bestSize, s.ahi, bestj + bestSize, s.bhi},
		)
	}

	return total
}

// lcsLength is the standard O(n*m) dynamic-programming LCS length, rolled to
// two rows since only the length matters.
func lcsLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// Cosine is the cosine similarity of two dense vectors. Mismatched or empty
// vectors score 0.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
