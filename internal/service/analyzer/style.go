package analyzer

import (
	"strings"
	"unicode"
)

// minStyleTextLength is the raw-text length below which no style profile is
// derived; short answers carry too little signal for style statistics.
const minStyleTextLength = 100

// StyleProfile is a coarse writing-style fingerprint of one text.
type StyleProfile struct {
	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	FleschReadingEase   float64 `json:"flesch_reading_ease"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`
	SentenceCount       int     `json:"sentence_count"`
	WordCount           int     `json:"word_count"`
}

// StyleProfiler derives writing-style statistics and a closeness score
// between two profiles. It is an interface so the comparator can be tested
// with deterministic stubs.
type StyleProfiler interface {
	Profile(text string) *StyleProfile
	Closeness(a, b *StyleProfile) float64
}

// TextStyleProfiler computes readability statistics directly from the text.
type TextStyleProfiler struct{}

func NewStyleProfiler() *TextStyleProfiler {
	return &TextStyleProfiler{}
}

// Profile returns nil for texts shorter than the style minimum.
func (p *TextStyleProfiler) Profile(text string) *StyleProfile {
	if len(text) < minStyleTextLength {
		return nil
	}

	sentences := SplitSentences(text)
	words := strings.Fields(text)
	if len(sentences) == 0 || len(words) == 0 {
		return nil
	}

	totalSyllables := 0
	for _, w := range words {
		totalSyllables += countSyllables(w)
	}

	avgSentenceLen := float64(len(words)) / float64(len(sentences))
	avgSyllables := float64(totalSyllables) / float64(len(words))

	return &StyleProfile{
		AvgSentenceLength:   avgSentenceLen,
		FleschReadingEase:   fleschReadingEase(avgSentenceLen, avgSyllables),
		AvgSyllablesPerWord: avgSyllables,
		SentenceCount:       len(sentences),
		WordCount:           len(words),
	}
}

// Closeness compares two profiles metric by metric: for each of avg sentence
// length, reading ease and syllables per word present and non-zero in both,
// 1 - |a-b|/max(a,b), clamped into [0,1], averaged over the comparable
// metrics. Returns 0 when either profile is missing or nothing is comparable.
func (p *TextStyleProfiler) Closeness(a, b *StyleProfile) float64 {
	if a == nil || b == nil {
		return 0
	}

	pairs := [][2]float64{
		{a.AvgSentenceLength, b.AvgSentenceLength},
		{a.FleschReadingEase, b.FleschReadingEase},
		{a.AvgSyllablesPerWord, b.AvgSyllablesPerWord},
	}

	var sum float64
	var count int
	for _, pair := range pairs {
		v1, v2 := pair[0], pair[1]
		if v1 == 0 || v2 == 0 {
			continue
		}
		max := v1
		if v2 > max {
			max = v2
		}
		diff := v1 - v2
		if diff < 0 {
			diff = -diff
		}
		sum += clamp01(1 - diff/max)
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// fleschReadingEase is the standard Flesch formula over per-sentence word
// counts and per-word syllable counts.
func fleschReadingEase(avgSentenceLen, avgSyllablesPerWord float64) float64 {
	return 206.835 - 1.015*avgSentenceLen - 84.6*avgSyllablesPerWord
}

// SplitSentences breaks text on terminal punctuation runs, dropping empty
// fragments.
func SplitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := parts[:0]
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// countSyllables estimates syllables as vowel groups, discounting a trailing
// silent 'e'. Every word counts at least one syllable.
func countSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}
