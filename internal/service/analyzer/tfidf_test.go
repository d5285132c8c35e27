package analyzer

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestTFIDFCosine_IdenticalTexts(t *testing.T) {
	text := "cell division produces two daughter cells during mitosis"
	if got := tfidfCosine(text, text); !almostEqual(got, 1.0) {
		t.Errorf("tfidfCosine(identical) = %v, want 1.0", got)
	}
}

func TestTFIDFCosine_DisjointTexts(t *testing.T) {
	got := tfidfCosine(
		"chemistry oxidation reduction electrons",
		"medieval feudalism peasants landlords",
	)
	if got != 0 {
		t.Errorf("tfidfCosine(disjoint) = %v, want 0", got)
	}
}

func TestTFIDFCosine_EmptyInput(t *testing.T) {
	if got := tfidfCosine("", "anything here"); got != 0 {
		t.Errorf("tfidfCosine with empty side = %v, want 0", got)
	}
}

func TestTFIDFCosine_PartialOverlapInRange(t *testing.T) {
	got := tfidfCosine(
		"energy flows through food chains from producers consumers",
		"food chains move energy from producers towards top predators",
	)
	if got <= 0 || got >= 1 {
		t.Errorf("tfidfCosine(partial overlap) = %v, want strictly inside (0,1)", got)
	}
}

func TestNGramMetric_ScoreClamped(t *testing.T) {
	m := ngramMetric{logger: zerolog.Nop()}
	got := m.Score(context.Background(), TextPair{
		A: "one shared sentence about gravity waves",
		B: "one shared sentence about gravity waves",
	})
	if got < 0 || got > 1 {
		t.Errorf("ngram score %v out of [0,1]", got)
	}
}

func TestBuildVocabulary_CapsFeatures(t *testing.T) {
	termsA := termFrequencies("alpha beta gamma delta epsilon zeta eta theta")
	termsB := termFrequencies("iota kappa lambda mu nu xi omicron pi")

	vocab := buildVocabulary(termsA, termsB, 5)
	if len(vocab) != 5 {
		t.Errorf("vocabulary size = %d, want 5", len(vocab))
	}
}

func TestBuildVocabulary_Deterministic(t *testing.T) {
	termsA := termFrequencies("alpha beta gamma alpha")
	termsB := termFrequencies("beta gamma delta")

	first := buildVocabulary(termsA, termsB, 1000)
	for i := 0; i < 5; i++ {
		again := buildVocabulary(termsA, termsB, 1000)
		if len(again) != len(first) {
			t.Fatalf("vocabulary size changed between runs")
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("vocabulary order changed between runs: %v vs %v", first, again)
			}
		}
	}
}
