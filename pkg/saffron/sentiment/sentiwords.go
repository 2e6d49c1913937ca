// Package sentiment annotates token spans with SentiWords polarity priors.
package sentiment

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Lexicon maps lowercase token spans to prior polarities. Entries that
// appear under several parts of speech are averaged.
type Lexicon struct {
	priors map[string]float64
	maxLen int
}

// Tagged is one annotated span: a token n-gram and its prior polarity.
// Spans absent from the lexicon carry polarity zero.
type Tagged struct {
	Tokens   []string `json:"tokens"`
	Polarity float64  `json:"polarity"`
}

// Load reads a SentiWords-style lexicon: one "lemma#pos<TAB>prior" entry
// per line, with # starting comment lines. Lemmas may contain underscores
// for multi-word spans.
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sums := make(map[string]float64)
	counts := make(map[string]int)
	maxLen := 1

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			continue
		}
		lemma := fields[0]
		if i := strings.LastIndex(lemma, "#"); i >= 0 {
			lemma = lemma[:i]
		}
		prior, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("sentiwords: bad prior in %q: %w", line, err)
		}
		key := strings.ToLower(strings.ReplaceAll(lemma, "_", " "))
		sums[key] += prior
		counts[key]++
		if l := len(strings.Fields(key)); l > maxLen {
			maxLen = l
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	priors := make(map[string]float64, len(sums))
	for key, sum := range sums {
		priors[key] = sum / float64(counts[key])
	}
	return &Lexicon{priors: priors, maxLen: maxLen}, nil
}

// NewLexicon builds a lexicon from an in-memory span→prior map
func NewLexicon(priors map[string]float64) *Lexicon {
	lex := &Lexicon{priors: make(map[string]float64, len(priors)), maxLen: 1}
	for span, prior := range priors {
		key := strings.ToLower(span)
		lex.priors[key] = prior
		if l := len(strings.Fields(key)); l > lex.maxLen {
			lex.maxLen = l
		}
	}
	return lex
}

// Tag annotates tokens left to right with greedy longest-match lookups.
// Every input token ends up in exactly one output span; unmatched tokens
// become single-token spans with polarity zero.
func (lex *Lexicon) Tag(tokens []string) []Tagged {
	var tagged []Tagged
	i := 0
	for i < len(tokens) {
		n := lex.maxLen
		if remaining := len(tokens) - i; n > remaining {
			n = remaining
		}
		matched := 1
		polarity := 0.0
		for ; n >= 1; n-- {
			key := strings.ToLower(strings.Join(tokens[i:i+n], " "))
			if prior, ok := lex.priors[key]; ok {
				matched = n
				polarity = prior
				break
			}
		}
		tagged = append(tagged, Tagged{Tokens: tokens[i : i+matched], Polarity: polarity})
		i += matched
	}
	return tagged
}

// Bag condenses tagged spans into a histogram: span text to
// [polarity, occurrence count]. Zero-polarity spans are dropped.
func Bag(tagged []Tagged) map[string][2]float64 {
	counts := make(map[string][2]float64)
	for _, tg := range tagged {
		if tg.Polarity == 0 {
			continue
		}
		key := strings.Join(tg.Tokens, " ")
		entry := counts[key]
		entry[0] = tg.Polarity
		entry[1]++
		counts[key] = entry
	}
	return counts
}
