// Package saffron dispatches single-document NLP tasks. Each task fetches
// its input document, pipes it through an external tool or web service,
// and returns a raw or SAF-shaped result.
package saffron

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/saffron/pkg/saffron/config"
	"github.com/cognicore/saffron/pkg/saffron/document"
	"github.com/cognicore/saffron/pkg/saffron/frog"
	"github.com/cognicore/saffron/pkg/saffron/internalerr"
	"github.com/cognicore/saffron/pkg/saffron/language"
	"github.com/cognicore/saffron/pkg/saffron/nlp"
	"github.com/cognicore/saffron/pkg/saffron/saf"
	"github.com/cognicore/saffron/pkg/saffron/semafor"
	"github.com/cognicore/saffron/pkg/saffron/sentiment"
	"github.com/cognicore/saffron/pkg/saffron/stem"
)

// Params are per-call task options, e.g. {"output": "rank"}
type Params map[string]string

// Runner dispatches tasks by name onto the configured tool clients
type Runner struct {
	comp *config.Components
}

// NewRunner creates a task runner over the given components
func NewRunner(comp *config.Components) *Runner {
	return &Runner{comp: comp}
}

type taskFunc func(ctx context.Context, r *Runner, text string, params Params) (any, error)

var tasks = map[string]taskFunc{
	"language":    runLanguage,
	"tokenize":    runTokenize,
	"untokenize":  runUntokenize,
	"stem":        runStem,
	"sentiwords":  runSentiWords,
	"semanticize": runSemanticize,
	"spotlight":   runSpotlight,
	"frog":        runFrog,
	"frames":      runFrames,
}

// Tasks lists the registered task names
func Tasks() []string {
	names := make([]string, 0, len(tasks))
	for name := range tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run fetches the document and dispatches it to the named task
func (r *Runner) Run(ctx context.Context, task string, doc document.Fetcher, params Params) (any, error) {
	fn, ok := tasks[task]
	if !ok {
		return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownTask, task)
	}
	text, err := doc.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	return fn(ctx, r, text, params)
}

func runLanguage(_ context.Context, _ *Runner, text string, params Params) (any, error) {
	switch output := params.get("output", "best"); output {
	case "best":
		best, ok := language.Guess(text)
		if !ok {
			return nil, fmt.Errorf("%w: no language candidates", internalerr.ErrInvalidInput)
		}
		return best, nil
	case "rank":
		return language.Rank(text), nil
	default:
		return nil, fmt.Errorf("%w: invalid parameter output=%q", internalerr.ErrInvalidInput, output)
	}
}

func runTokenize(_ context.Context, _ *Runner, text string, _ Params) (any, error) {
	return nlp.Tokenize(text), nil
}

func runUntokenize(_ context.Context, _ *Runner, text string, _ Params) (any, error) {
	return nlp.Untokenize(strings.Fields(text)), nil
}

func runStem(_ context.Context, _ *Runner, text string, params Params) (any, error) {
	return stem.Words(nlp.Tokenize(text), params.get("language", "en"))
}

func runSentiWords(_ context.Context, r *Runner, text string, params Params) (any, error) {
	if r.comp.SentiWords == nil {
		return nil, fmt.Errorf("%w: no sentiwords lexicon configured", internalerr.ErrInvalidConfig)
	}
	tagged := r.comp.SentiWords.Tag(nlp.Tokenize(text))
	switch output := params.get("output", "bag"); output {
	case "bag":
		return sentiment.Bag(tagged), nil
	case "tokens":
		return tagged, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", internalerr.ErrInvalidInput, output)
	}
}

func runSemanticize(ctx context.Context, r *Runner, text string, _ Params) (any, error) {
	if r.comp.Semanticizer == nil {
		return nil, fmt.Errorf("%w: no semanticizer URL configured", internalerr.ErrInvalidConfig)
	}
	return r.comp.Semanticizer.AllCandidates(ctx, text)
}

func runSpotlight(ctx context.Context, r *Runner, text string, _ Params) (any, error) {
	if r.comp.Spotlight == nil {
		return nil, fmt.Errorf("%w: no spotlight endpoint configured", internalerr.ErrInvalidConfig)
	}
	return r.comp.Spotlight.Candidates(ctx, text)
}

func runFrog(ctx context.Context, r *Runner, text string, params Params) (any, error) {
	if r.comp.Frog == nil {
		return nil, fmt.Errorf("%w: no frog server configured", internalerr.ErrInvalidConfig)
	}
	output := params.get("output", "raw")
	if output != "raw" && output != "tokens" && output != "saf" {
		return nil, fmt.Errorf("%w: unknown output %q, choose raw, tokens or saf",
			internalerr.ErrInvalidInput, output)
	}
	lines, err := r.comp.Frog.Raw(ctx, text)
	if err != nil {
		return nil, err
	}
	if output == "raw" {
		return lines, nil
	}
	tokens, err := frog.ParseTokens(lines)
	if err != nil {
		return nil, err
	}
	if output == "tokens" {
		return tokens, nil
	}
	return frog.ToSAF(tokens), nil
}

// runFrames expects the document text to be a serialized SAF document with
// trees and tokens; it returns the document with frames added.
func runFrames(_ context.Context, r *Runner, text string, _ Params) (any, error) {
	if r.comp.Parser == nil {
		return nil, fmt.Errorf("%w: semafor home not configured", internalerr.ErrInvalidConfig)
	}
	if r.comp.Converter == nil {
		return nil, fmt.Errorf("%w: corenlp home not configured", internalerr.ErrInvalidConfig)
	}
	var doc saf.Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: not a SAF document: %v", internalerr.ErrInvalidInput, err)
	}
	if err := semafor.AddFrames(&doc, r.comp.Parser, r.comp.Converter); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (p Params) get(key, fallback string) string {
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	return fallback
}
