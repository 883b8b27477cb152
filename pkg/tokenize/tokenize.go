// Package tokenize turns names, synonyms and natural-language queries into
// normalized search terms. All functions are pure and never fail.
package tokenize

import (
	"sort"
	"strings"
	"unicode"
)

// Stop words removed from queries before scoring. Schema terms are never
// stop-word filtered; this list applies to user queries only.
var stopWords = map[string]bool{
	"show": true, "get": true, "list": true, "display": true, "find": true,
	"search": true, "fetch": true, "retrieve": true,
	"all": true, "some": true, "any": true, "for": true, "with": true,
	"by": true, "from": true, "in": true, "on": true, "at": true,
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"of": true, "to": true, "is": true, "are": true, "was": true, "were": true,
	"that": true, "this": true, "these": true, "those": true,
	"my": true, "your": true, "his": true, "her": true, "its": true,
	"our": true, "their": true,
}

// Terms returns the deduplicated, sorted set of lowercase terms for a
// schema string (name, synonym or identifier). The text is split on runs
// of non-alphanumeric characters and on camel-case boundaries; tokens of
// length <= 1 are discarded. The cleaned, space-joined full text is added
// as one multi-word term so exact phrase matches stay possible.
func Terms(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	for _, part := range splitAlnum(splitCamel(text)) {
		part = strings.ToLower(part)
		if len(part) > 1 {
			seen[part] = true
		}
	}

	if full := CleanText(text); full != "" {
		seen[full] = true
	}

	terms := make([]string, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// QueryTerms extracts scoring terms from a natural-language query:
// lowercase words with stop words, words of length <= 2 and pure-digit
// words removed. Order and duplicates are preserved so coverage counting
// sees every occurrence.
func QueryTerms(query string) []string {
	var terms []string
	for _, word := range splitAlnum(query) {
		word = strings.ToLower(word)
		if len(word) <= 2 || stopWords[word] || isDigits(word) {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}

// CleanText lowercases text, strips every non-alphanumeric character
// except spaces and collapses runs of whitespace. Used for the multi-word
// phrase term and for intent keyword matching.
func CleanText(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// splitCamel inserts a space at every lower-to-upper transition so
// "firstName" tokenizes to "first" and "name".
func splitCamel(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 4)
	prev := rune(0)
	for _, r := range text {
		if unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// splitAlnum splits text on runs of non-alphanumeric characters.
func splitAlnum(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
