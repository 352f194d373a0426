package match

import (
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// Stop words to filter out before computing term overlap
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "what": true, "when": true, "where": true,
	"how": true, "i": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation,
// removes stop words, and stems each remaining term to its base form.
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		// Lowercase and trim punctuation
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))

		// Skip stop words and empty strings
		if cleaned == "" || stopWords[cleaned] {
			continue
		}

		filtered = append(filtered, porterstemmer.StemString(cleaned))
	}

	return filtered
}

// termSet builds the set of filtered, stemmed terms in the text.
func termSet(text string) map[string]bool {
	terms := tokenizeAndFilter(text)
	set := make(map[string]bool, len(terms))
	for _, term := range terms {
		set[term] = true
	}
	return set
}

// overlapCount returns the size of the intersection of two term sets.
func overlapCount(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for term := range a {
		if b[term] {
			count++
		}
	}
	return count
}

// normalizeText lowercases and trims surrounding whitespace.
func normalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
