package index

import (
	"strings"
	"unicode"
)

// stopwords are excluded from significant-term queries. Kept deliberately
// small; over-aggressive filtering hurts phrase matching.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "did": true, "do": true, "does": true,
	"for": true, "from": true, "go": true, "had": true, "has": true, "have": true,
	"he": true, "her": true, "his": true, "i": true, "in": true, "is": true,
	"it": true, "its": true, "me": true, "my": true, "of": true, "on": true,
	"or": true, "s": true, "she": true, "so": true, "t": true, "that": true,
	"the": true, "their": true, "them": true, "they": true, "this": true,
	"to": true, "was": true, "we": true, "were": true, "what": true,
	"when": true, "where": true, "which": true, "who": true, "will": true,
	"with": true, "you": true, "your": true,
}

// Tokenize case-folds text and splits it on word boundaries, preserving
// order. Indexing and query parsing both go through here so their token
// streams always agree.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// SignificantTerms returns the tokens of text with stopwords removed.
func SignificantTerms(text string) []string {
	var terms []string
	for _, tok := range Tokenize(text) {
		if !stopwords[tok] {
			terms = append(terms, tok)
		}
	}
	return terms
}

// IsStopword reports whether the given (already lower-cased) token is a
// stopword.
func IsStopword(token string) bool {
	return stopwords[token]
}
