package knowledge

import (
	"strings"
)

// stopWords is a small hand-curated set of common function words removed
// from queries before matching. Deliberately not a full stop-word corpus.
var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "a": {}, "an": {}, "what": {}, "how": {}, "do": {}, "does": {}, "are": {}, "was": {},
	"were": {}, "be": {}, "to": {}, "of": {}, "and": {}, "in": {}, "for": {}, "on": {}, "with": {}, "at": {},
	"by": {}, "it": {}, "i": {}, "my": {}, "me": {}, "our": {}, "this": {}, "that": {}, "can": {}, "will": {},
}

// Keywords lower-cases the query, splits on whitespace, and removes stop
// words. When filtering would leave nothing (a query made entirely of stop
// words), the unfiltered token set is returned so such queries still match.
// An empty query yields an empty set.
func Keywords(query string) map[string]struct{} {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return map[string]struct{}{}
	}

	keywords := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if _, stop := stopWords[tok]; !stop {
			keywords[tok] = struct{}{}
		}
	}

	if len(keywords) == 0 {
		for _, tok := range tokens {
			keywords[tok] = struct{}{}
		}
	}

	return keywords
}

// Score counts the distinct query keywords that occur anywhere in the
// document text, case-insensitively. Presence count, not frequency: a
// keyword occurring fifty times contributes the same as occurring once.
// Matching is by substring, not token boundary; "pass" matches inside
// "password". That over-match is an accepted precision trade-off and
// callers must not "fix" it.
func Score(query, documentText string) int {
	keywords := Keywords(query)
	if len(keywords) == 0 || documentText == "" {
		return 0
	}

	textLower := strings.ToLower(documentText)
	score := 0
	for kw := range keywords {
		if strings.Contains(textLower, kw) {
			score++
		}
	}
	return score
}
