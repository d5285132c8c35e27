package analyzer

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edugrade/similarity-service/internal/models"
)

func testComparator(embedder Embedder) *Comparator {
	return NewComparator(DefaultConfig(), embedder, nil, zerolog.Nop())
}

func submission(student, text string) models.SubmissionRef {
	return models.SubmissionRef{
		StudentID:       student,
		Course:          "BIO-101",
		AssignmentTitle: "Midterm essay",
		SubmittedAt:     "2025-03-12T10:00:00Z",
		RawText:         text,
	}
}

func TestComparator_IdenticalTextsAreCritical(t *testing.T) {
	c := testComparator(&stubEmbedder{})
	text := "Photosynthesis converts sunlight carbon dioxide water into glucose oxygen inside plant chloroplasts during daytime periods."

	result := c.Compare(context.Background(), submission("alice@school.edu", text), submission("bob@school.edu", text))
	if result == nil {
		t.Fatal("Compare returned nil for comparable texts")
	}

	if result.SimilarityScores.Exact != 100 {
		t.Errorf("exact = %v, want 100", result.SimilarityScores.Exact)
	}
	if result.SimilarityScores.Jaccard != 100 {
		t.Errorf("jaccard = %v, want 100", result.SimilarityScores.Jaccard)
	}
	if result.SimilarityScores.Sequence != 100 {
		t.Errorf("sequence = %v, want 100", result.SimilarityScores.Sequence)
	}
	if result.CompositeScore < 95 {
		t.Errorf("composite = %v, want >= 95", result.CompositeScore)
	}
	if result.Level != models.LevelCritical {
		t.Errorf("level = %s, want CRITICAL", result.Level)
	}
	if result.StructuralSimilarity != 100 {
		t.Errorf("structural = %v, want 100", result.StructuralSimilarity)
	}
	if result.TextLengths.SubmissionA != len(text) || result.TextLengths.SubmissionB != len(text) {
		t.Errorf("text lengths = %+v, want both %d", result.TextLengths, len(text))
	}
}

func TestComparator_ShortTextNotComparable(t *testing.T) {
	c := testComparator(nil)
	long := "A realistic submission answer that comfortably exceeds the fifty character comparison minimum."

	if result := c.Compare(context.Background(), submission("a@x", "thirty characters or so here"), submission("b@x", long)); result != nil {
		t.Errorf("Compare with short text = %+v, want nil", result)
	}
	if result := c.Compare(context.Background(), submission("a@x", ""), submission("b@x", long)); result != nil {
		t.Errorf("Compare with empty text = %+v, want nil", result)
	}
}

func TestComparator_Symmetric(t *testing.T) {
	c := testComparator(&stubEmbedder{})
	base := "Cellular respiration breaks down glucose molecules releasing usable energy stored within chemical bonds."

	pairs := [][2]string{
		{
			base,
			"Respiration within cells releases the stored chemical energy by breaking glucose molecules apart gradually.",
		},
		// Near-identical pair with a trailing difference: greedy block
		// matching scores this differently per direction unless the exact
		// metric is order-independent.
		{
			base,
			base + " Mitochondria host the process throughout.",
		},
	}

	for _, p := range pairs {
		forward := c.Compare(context.Background(), submission("a@x", p[0]), submission("b@x", p[1]))
		reverse := c.Compare(context.Background(), submission("b@x", p[1]), submission("a@x", p[0]))
		if forward == nil || reverse == nil {
			t.Fatal("Compare returned nil for comparable texts")
		}

		if math.Abs(forward.CompositeScore-reverse.CompositeScore) > 0.01 {
			t.Errorf("composite not symmetric for %q / %q: %v vs %v",
				p[0], p[1], forward.CompositeScore, reverse.CompositeScore)
		}
		if forward.SimilarityScores != reverse.SimilarityScores {
			t.Errorf("metric scores not symmetric: %+v vs %+v",
				forward.SimilarityScores, reverse.SimilarityScores)
		}
	}
}

func TestComparator_UnrelatedTextsAreNone(t *testing.T) {
	c := testComparator(nil)
	textA := "The French revolution overthrew the monarchy and restructured political power across European societies permanently."
	textB := "Mitochondria generate adenosine triphosphate through oxidative phosphorylation inside eukaryotic cells continuously."

	result := c.Compare(context.Background(), submission("a@x", textA), submission("b@x", textB))
	if result == nil {
		t.Fatal("Compare returned nil for comparable texts")
	}
	if result.CompositeScore >= 50 {
		t.Errorf("composite = %v, want < 50", result.CompositeScore)
	}
	if result.Level != models.LevelNone {
		t.Errorf("level = %s, want NONE", result.Level)
	}
}

func TestComparator_CommonPhrases(t *testing.T) {
	c := testComparator(nil)
	textA := "My essay argues that quantum entanglement violates classical locality assumptions in modern physics experiments."
	textB := "Another submission claims quantum entanglement violates classical locality assumptions without providing evidence whatsoever."

	result := c.Compare(context.Background(), submission("a@x", textA), submission("b@x", textB))
	if result == nil {
		t.Fatal("Compare returned nil for comparable texts")
	}
	if len(result.CommonPhrases) == 0 {
		t.Fatal("expected shared phrases, got none")
	}

	want := "quantum entanglement violates classical locality assumptions"
	if result.CommonPhrases[0] != want {
		t.Errorf("longest common phrase = %q, want %q", result.CommonPhrases[0], want)
	}
	if len(result.CommonPhrases) > 5 {
		t.Errorf("returned %d phrases, want at most 5", len(result.CommonPhrases))
	}
	for i := 1; i < len(result.CommonPhrases); i++ {
		prev := len(strings.Fields(result.CommonPhrases[i-1]))
		curr := len(strings.Fields(result.CommonPhrases[i]))
		if curr > prev {
			t.Errorf("phrases not ordered longest-first: %v", result.CommonPhrases)
		}
	}
}

func TestComparator_ShuffledWordsStayReportable(t *testing.T) {
	c := testComparator(&stubEmbedder{})
	text := "Quantum mechanics describes probability amplitudes governing subatomic particle behavior across measurable experimental conditions"
	shuffled := "Quantum mechanics describes amplitudes probability governing subatomic particle behavior across measurable experimental conditions"

	result := c.Compare(context.Background(), submission("a@x", text), submission("b@x", shuffled))
	if result == nil {
		t.Fatal("Compare returned nil for comparable texts")
	}

	if result.SimilarityScores.Jaccard != 100 {
		t.Errorf("jaccard = %v, want 100 (same word set)", result.SimilarityScores.Jaccard)
	}
	if result.SimilarityScores.Sequence >= 100 {
		t.Errorf("sequence = %v, want < 100 (order changed)", result.SimilarityScores.Sequence)
	}
	if result.CompositeScore < 70 {
		t.Errorf("composite = %v, want >= 70 for a lightly shuffled copy", result.CompositeScore)
	}
}

func TestStructuralSimilarity_SentenceCountMismatch(t *testing.T) {
	got := structuralSimilarity(
		"One sentence here. A second sentence follows.",
		"Only a single sentence in this one.",
	)
	if got != 0 {
		t.Errorf("structural similarity with mismatched counts = %v, want 0", got)
	}
}

func TestStructuralSimilarity_AlignedSentences(t *testing.T) {
	got := structuralSimilarity(
		"Energy cannot be created. It only changes form.",
		"Energy cannot be created. It merely changes form.",
	)
	if got <= 0.5 || got > 1 {
		t.Errorf("structural similarity = %v, want within (0.5, 1]", got)
	}
}

func TestCommonPhrases_NoShortMatches(t *testing.T) {
	// A shared run of four words is below the five-word minimum.
	phrases := commonPhrases(
		"alpha beta gamma delta unrelated tail words here",
		"different head words alpha beta gamma delta closing",
	)
	if len(phrases) != 0 {
		t.Errorf("phrases = %v, want none below the minimum length", phrases)
	}
}
