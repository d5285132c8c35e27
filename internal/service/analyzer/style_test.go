package analyzer

import (
	"strings"
	"testing"
)

func TestStyleProfiler_ShortTextHasNoProfile(t *testing.T) {
	p := NewStyleProfiler()
	if got := p.Profile("Too short for style analysis."); got != nil {
		t.Errorf("Profile(short text) = %+v, want nil", got)
	}
}

func TestStyleProfiler_ProfileFields(t *testing.T) {
	p := NewStyleProfiler()
	text := "The mitochondria is the powerhouse of the cell. It produces energy through respiration. Plants use chloroplasts instead."

	profile := p.Profile(text)
	if profile == nil {
		t.Fatal("Profile returned nil for a long text")
	}
	if profile.SentenceCount != 3 {
		t.Errorf("SentenceCount = %d, want 3", profile.SentenceCount)
	}
	if profile.WordCount != len(strings.Fields(text)) {
		t.Errorf("WordCount = %d, want %d", profile.WordCount, len(strings.Fields(text)))
	}
	if profile.AvgSentenceLength <= 0 {
		t.Errorf("AvgSentenceLength = %v, want > 0", profile.AvgSentenceLength)
	}
	if profile.AvgSyllablesPerWord < 1 {
		t.Errorf("AvgSyllablesPerWord = %v, want >= 1", profile.AvgSyllablesPerWord)
	}
}

func TestStyleProfiler_ClosenessIdentical(t *testing.T) {
	p := NewStyleProfiler()
	text := "Chemical reactions rearrange atoms into new molecules. Energy is either absorbed or released in the process."

	profile := p.Profile(text)
	if profile == nil {
		t.Fatal("Profile returned nil")
	}
	if got := p.Closeness(profile, profile); !almostEqual(got, 1.0) {
		t.Errorf("Closeness(p, p) = %v, want 1.0", got)
	}
}

func TestStyleProfiler_ClosenessMissingProfile(t *testing.T) {
	p := NewStyleProfiler()
	profile := &StyleProfile{AvgSentenceLength: 10, FleschReadingEase: 60, AvgSyllablesPerWord: 1.5}

	if got := p.Closeness(nil, profile); got != 0 {
		t.Errorf("Closeness(nil, p) = %v, want 0", got)
	}
	if got := p.Closeness(profile, nil); got != 0 {
		t.Errorf("Closeness(p, nil) = %v, want 0", got)
	}
}

func TestStyleProfiler_ClosenessNegativeReadability(t *testing.T) {
	p := NewStyleProfiler()
	// Dense academic prose can push Flesch below zero; 1-|a-b|/max(a,b) then
	// exceeds 1 and must be capped so closeness stays a [0,1] score.
	a := &StyleProfile{AvgSentenceLength: 30, FleschReadingEase: -20, AvgSyllablesPerWord: 2.2}
	b := &StyleProfile{AvgSentenceLength: 30, FleschReadingEase: -40, AvgSyllablesPerWord: 2.2}

	got := p.Closeness(a, b)
	if got < 0 || got > 1 {
		t.Fatalf("Closeness = %v, want within [0,1]", got)
	}
	if !almostEqual(got, 1.0) {
		t.Errorf("Closeness = %v, want 1.0 (negative readability pair capped)", got)
	}
}

func TestStyleProfiler_ClosenessInRange(t *testing.T) {
	p := NewStyleProfiler()
	a := &StyleProfile{AvgSentenceLength: 8, FleschReadingEase: 70, AvgSyllablesPerWord: 1.3}
	b := &StyleProfile{AvgSentenceLength: 20, FleschReadingEase: 35, AvgSyllablesPerWord: 2.1}

	got := p.Closeness(a, b)
	if got < 0 || got > 1 {
		t.Errorf("Closeness = %v, want within [0,1]", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First sentence. Second one! Third? ")
	if len(got) != 3 {
		t.Fatalf("SplitSentences returned %d sentences, want 3: %v", len(got), got)
	}
	if got[0] != "First sentence" {
		t.Errorf("first sentence = %q", got[0])
	}
}

func TestCountSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"table", 2},
		{"make", 1},
		{"biology", 3},
		{"", 1},
	}
	for _, c := range cases {
		if got := countSyllables(c.word); got != c.want {
			t.Errorf("countSyllables(%q) = %d, want %d", c.word, got, c.want)
		}
	}
}
