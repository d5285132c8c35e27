package analyzer

import (
	"strings"
	"unicode"
)

// Normalizer canonicalizes raw submission text before comparison. It is a
// pure transformation: same input, same output, no side effects.
type Normalizer struct {
	minTextLength int
}

func NewNormalizer(minTextLength int) *Normalizer {
	return &Normalizer{minTextLength: minTextLength}
}

// Normalize lower-cases the text, collapses whitespace, strips punctuation and
// digits, and drops stop-words and tokens of length <= 2. It returns "" when
// the raw text is empty or shorter than the configured minimum, which callers
// treat as not comparable.
func (n *Normalizer) Normalize(text string) string {
	if len(strings.TrimSpace(text)) < n.minTextLength {
		return ""
	}

	text = strings.ToLower(text)

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			// digits carry no signal for text answers
		default:
			sb.WriteRune(' ')
		}
	}

	words := strings.Fields(sb.String())
	filtered := words[:0]
	for _, w := range words {
		if len(w) <= 2 || isStopWord(w) {
			continue
		}
		filtered = append(filtered, w)
	}

	return strings.Join(filtered, " ")
}
