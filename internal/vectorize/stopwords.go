package vectorize

// englishStopWords are dropped before n-gram construction. Subset of the
// usual English list, biased toward words that actually show up in
// marketplace listings.
var englishStopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am",
		"an", "and", "any", "are", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "can",
		"did", "do", "does", "doing", "down", "during", "each", "few",
		"for", "from", "further", "had", "has", "have", "having", "he",
		"her", "here", "hers", "him", "his", "how", "if", "in", "into",
		"is", "it", "its", "just", "me", "more", "most", "my", "no", "nor",
		"not", "now", "of", "off", "on", "once", "only", "or", "other",
		"our", "ours", "out", "over", "own", "same", "she", "should",
		"so", "some", "such", "than", "that", "the", "their", "theirs",
		"them", "then", "there", "these", "they", "this", "those",
		"through", "to", "too", "under", "until", "up", "very", "was",
		"we", "were", "what", "when", "where", "which", "while", "who",
		"whom", "why", "will", "with", "you", "your", "yours",
	}
	for _, w := range words {
		englishStopWords[w] = struct{}{}
	}
}

func isStopWord(w string) bool {
	_, ok := englishStopWords[w]
	return ok
}
