// Package language guesses the language a document is written in using a
// statistical detector.
package language

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Candidate pairs a two-letter language code with its confidence
type Candidate struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// The model tables are large, so the detector is built once and shared.
func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build()
	})
	return detector
}

func (c Candidate) String() string {
	return c.Code
}

// Guess returns the most probable language of the text and its confidence
func Guess(text string) (Candidate, bool) {
	ranked := Rank(text)
	if len(ranked) == 0 {
		return Candidate{}, false
	}
	return ranked[0], true
}

// Rank returns all candidate languages sorted by descending confidence
func Rank(text string) []Candidate {
	values := getDetector().ComputeLanguageConfidenceValues(text)
	candidates := make([]Candidate, 0, len(values))
	for _, v := range values {
		candidates = append(candidates, Candidate{
			Code:       strings.ToLower(v.Language().IsoCode639_1().String()),
			Confidence: v.Value(),
		})
	}
	return candidates
}
