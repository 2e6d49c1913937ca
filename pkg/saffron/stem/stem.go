// Package stem wraps the Snowball stemmer family.
package stem

import (
	"fmt"

	"github.com/kljensen/snowball"

	"github.com/cognicore/saffron/pkg/saffron/internalerr"
)

// Snowball language names by ISO 639-1 code. "porter" selects the classic
// Porter algorithm for English.
var languages = map[string]string{
	"en":     "english",
	"es":     "spanish",
	"fr":     "french",
	"ru":     "russian",
	"sv":     "swedish",
	"no":     "norwegian",
	"porter": "english",
}

// Resolve maps a language code to a Snowball language name. The check runs
// before any stemming so an invalid language fails fast.
func Resolve(code string) (string, error) {
	lang, ok := languages[code]
	if !ok {
		return "", fmt.Errorf("%w: unsupported stemmer language %q", internalerr.ErrInvalidInput, code)
	}
	return lang, nil
}

// Words stems every token with the Snowball stemmer for the given language
// code. Tokens the stemmer rejects are passed through unchanged.
func Words(tokens []string, code string) ([]string, error) {
	lang, err := Resolve(code)
	if err != nil {
		return nil, err
	}
	stemmed := make([]string, len(tokens))
	for i, tok := range tokens {
		s, err := snowball.Stem(tok, lang, false)
		if err != nil {
			stemmed[i] = tok
			continue
		}
		stemmed[i] = s
	}
	return stemmed, nil
}
