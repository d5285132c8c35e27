package analyzer

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

const (
	tfidfMaxFeatures = 1000
	tfidfMinNGram    = 1
	tfidfMaxNGram    = 3
)

// ngramMetric fits a TF-IDF vectorizer over word uni/bi/tri-grams of the two
// texts jointly and scores them by cosine similarity. Degenerate input (no
// usable terms on either side) scores 0.
type ngramMetric struct {
	logger zerolog.Logger
}

func (ngramMetric) Name() string { return "ngram" }

func (m ngramMetric) Score(_ context.Context, pair TextPair) float64 {
	score := tfidfCosine(pair.A, pair.B)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		m.logger.Debug().Msg("TF-IDF cosine was not finite, degraded to 0")
		return 0
	}
	return clamp01(score)
}

func tfidfCosine(a, b string) float64 {
	termsA := termFrequencies(a)
	termsB := termFrequencies(b)
	if len(termsA) == 0 || len(termsB) == 0 {
		return 0
	}

	vocab := buildVocabulary(termsA, termsB, tfidfMaxFeatures)
	if len(vocab) == 0 {
		return 0
	}

	// Smooth idf over the two-document corpus: ln((1+n)/(1+df)) + 1.
	vecA := make([]float64, len(vocab))
	vecB := make([]float64, len(vocab))
	for i, term := range vocab {
		df := 0
		if termsA[term] > 0 {
			df++
		}
		if termsB[term] > 0 {
			df++
		}
		idf := math.Log(float64(1+2)/float64(1+df)) + 1
		vecA[i] = float64(termsA[term]) * idf
		vecB[i] = float64(termsB[term]) * idf
	}

	return Cosine(vecA, vecB)
}

// termFrequencies counts word n-gram occurrences for n in [1,3].
func termFrequencies(text string) map[string]int {
	words := strings.Fields(text)
	freq := make(map[string]int)
	for n := tfidfMinNGram; n <= tfidfMaxNGram; n++ {
		for i := 0; i+n <= len(words); i++ {
			freq[strings.Join(words[i:i+n], " ")]++
		}
	}
	return freq
}

// buildVocabulary merges both documents' terms and caps the feature count,
// keeping the most frequent terms (ties broken alphabetically for
// determinism).
func buildVocabulary(termsA, termsB map[string]int, maxFeatures int) []string {
	totals := make(map[string]int, len(termsA)+len(termsB))
	for term, count := range termsA {
		totals[term] += count
	}
	for term, count := range termsB {
		totals[term] += count
	}

	vocab := make([]string, 0, len(totals))
	for term := range totals {
		vocab = append(vocab, term)
	}
	sort.Slice(vocab, func(i, j int) bool {
		if totals[vocab[i]] != totals[vocab[j]] {
			return totals[vocab[i]] > totals[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})

	if len(vocab) > maxFeatures {
		vocab = vocab[:maxFeatures]
	}
	return vocab
}
