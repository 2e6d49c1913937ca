package semafor

import (
	"fmt"

	"github.com/cognicore/saffron/pkg/saffron/internalerr"
	"github.com/cognicore/saffron/pkg/saffron/saf"
)

const module = "semafor"

// AddFrames runs every tree in doc through Semafor and stitches the
// resulting frames back into the document, addressed by token id. The
// document is modified in place.
//
// A sentence whose parse reports an error is recorded in doc.Errors and
// skipped; later sentences are still processed. Conversion failures, wire
// protocol violations and token counts that do not line up with the
// document's abort the whole run.
func AddFrames(doc *saf.Document, parser *Parser, conv TreeConverter) error {
	doc.Frames = []saf.Frame{}
	doc.AddProvenance(module)

	for _, t := range doc.Trees {
		sid := t.Sentence
		conll, err := conv.ToCoNLL(t.Tree)
		if err != nil {
			return fmt.Errorf("sentence %d: %w", sid, err)
		}
		tokens := doc.SentenceTokens(sid)

		res, err := parser.Call(conll)
		if err != nil {
			return fmt.Errorf("sentence %d: %w", sid, err)
		}
		if res.Error != "" {
			doc.AddError(module, sid, res.Error)
			continue
		}

		// Span offsets index into the sentence's tokens; the counts must
		// agree exactly or the mapping below is meaningless.
		if len(tokens) != len(res.Tokens) {
			return fmt.Errorf("%w: sentence %d has %d tokens, parser returned %d",
				internalerr.ErrTokenMismatch, sid, len(tokens), len(res.Tokens))
		}

		for _, frame := range res.Frames {
			target, err := tokenIDs(frame.Target.Spans, tokens)
			if err != nil {
				return fmt.Errorf("sentence %d: %w", sid, err)
			}
			f := saf.Frame{
				Sentence: sid,
				Name:     frame.Target.Name,
				Target:   target,
				Elements: []saf.Element{},
			}
			if len(frame.AnnotationSets) > 0 {
				for _, el := range frame.AnnotationSets[0].FrameElements {
					ids, err := tokenIDs(el.Spans, tokens)
					if err != nil {
						return fmt.Errorf("sentence %d: %w", sid, err)
					}
					f.Elements = append(f.Elements, saf.Element{
						Name:   el.Name,
						Target: ids,
					})
				}
			}
			doc.Frames = append(doc.Frames, f)
		}
	}
	return nil
}

// tokenIDs maps span offsets onto the document's token ids. Span bounds
// come from the external process and are validated before indexing.
func tokenIDs(spans []Span, tokens []saf.Token) ([]int, error) {
	ids := []int{}
	for _, span := range spans {
		if span.Start < 0 || span.End < span.Start || span.End > len(tokens) {
			return nil, fmt.Errorf("%w: span [%d,%d) outside sentence of %d tokens",
				internalerr.ErrProtocol, span.Start, span.End, len(tokens))
		}
		for i := span.Start; i < span.End; i++ {
			ids = append(ids, tokens[i].ID)
		}
	}
	return ids, nil
}
