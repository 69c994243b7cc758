package analysis

import (
	"strings"
	"unicode"
)

// tokenize lower-cases text and splits it into words on anything that is not
// a letter or digit. Matching on tokens rather than raw substrings gives the
// word-boundary behavior the keyword tables assume ("art" must not match
// inside "start"), and it handles umlauts correctly.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// countKeyword counts occurrences of a keyword in the token stream. Keywords
// containing spaces are matched as consecutive token runs.
func countKeyword(tokens []string, keyword string) int {
	parts := strings.Fields(strings.ToLower(keyword))
	if len(parts) == 0 {
		return 0
	}
	if len(parts) == 1 {
		count := 0
		for _, tok := range tokens {
			if tok == parts[0] {
				count++
			}
		}
		return count
	}
	count := 0
	for i := 0; i+len(parts) <= len(tokens); i++ {
		match := true
		for j, part := range parts {
			if tokens[i+j] != part {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count
}

// scoreKeywords sums occurrence counts for a keyword list and collects which
// keywords contributed.
func scoreKeywords(tokens []string, keywords []string) (int, []string) {
	score := 0
	var matched []string
	for _, keyword := range keywords {
		n := countKeyword(tokens, keyword)
		if n == 0 {
			continue
		}
		score += n
		matched = append(matched, keyword)
	}
	return score, matched
}
