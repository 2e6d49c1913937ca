// Simplistic tokenizer for English and similar languages.

package nlp

import (
	"regexp"
	"strings"
)

var tokenRE = regexp.MustCompile(`(\w|\b['.,]\b)+|[^\s\w]`)

// Tokenize splits text into word and punctuation tokens. Word-internal
// apostrophes and periods are kept with their word.
func Tokenize(s string) []string {
	return tokenRE.FindAllString(s, -1)
}

// Untokenize undoes tokenization by joining tokens with spaces. Useful
// after tokenizing and filtering.
func Untokenize(tokens []string) string {
	return strings.Join(tokens, " ")
}
