package analyzer

import "strings"

// English stop-word list dropped during normalization. Mirrors the common
// NLTK set; tokens of length <= 2 are filtered separately.
var stopWordList = []string{
	"about", "above", "after", "again", "against", "ain", "all", "and", "any",
	"are", "aren", "because", "been", "before", "being", "below", "between",
	"both", "but", "can", "couldn", "did", "didn", "does", "doesn", "doing",
	"don", "down", "during", "each", "few", "for", "from", "further", "had",
	"hadn", "has", "hasn", "have", "haven", "having", "her", "here", "hers",
	"herself", "him", "himself", "his", "how", "into", "isn", "its", "itself",
	"just", "mightn", "more", "most", "mustn", "myself", "needn", "nor", "not",
	"now", "off", "once", "only", "other", "our", "ours", "ourselves", "out",
	"over", "own", "same", "shan", "she", "should", "shouldn", "some", "such",
	"than", "that", "the", "their", "theirs", "them", "themselves", "then",
	"there", "these", "they", "this", "those", "through", "too", "under",
	"until", "very", "was", "wasn", "were", "weren", "what", "when", "where",
	"which", "while", "who", "whom", "why", "will", "with", "won", "wouldn",
	"you", "your", "yours", "yourself", "yourselves",
}

var stopWords = func() map[string]struct{} {
	set := make(map[string]struct{}, len(stopWordList))
	for _, w := range stopWordList {
		set[w] = struct{}{}
	}
	return set
}()

func isStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}
