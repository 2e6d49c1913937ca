package semafor

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/saffron/pkg/saffron/internalerr"
	"github.com/cognicore/saffron/pkg/saffron/saf"
)

// stubConverter tags each tree so the fake process can tell requests apart
type stubConverter struct{}

func (stubConverter) ToCoNLL(tree string) (string, error) {
	return "1\t" + tree + "\t_\t_\t_\t_\t0\t_\t_\t_", nil
}

// responderFor serves a canned JSON line per tree name
func responderFor(responses map[string]string) func(string) []string {
	return func(req string) []string {
		for tree, resp := range responses {
			if strings.Contains(req, tree) {
				return []string{resp}
			}
		}
		return []string{`{"error": "no canned response"}`}
	}
}

func twoSentenceDoc() *saf.Document {
	doc := saf.New()
	doc.Tokens = []saf.Token{
		{ID: 10, Sentence: 1, Offset: 0, Word: "It"},
		{ID: 11, Sentence: 1, Offset: 1, Word: "broke"},
		{ID: 20, Sentence: 2, Offset: 0, Word: "The"},
		{ID: 21, Sentence: 2, Offset: 1, Word: "dog"},
		{ID: 22, Sentence: 2, Offset: 2, Word: "ran"},
	}
	doc.Trees = []saf.Tree{
		{Sentence: 1, Tree: "tree-one"},
		{Sentence: 2, Tree: "tree-two"},
	}
	return doc
}

func TestAddFramesMapsSpansToTokenIDs(t *testing.T) {
	doc := saf.New()
	doc.Tokens = []saf.Token{
		// Out of offset order on purpose; SentenceTokens must sort.
		{ID: 21, Sentence: 2, Offset: 1, Word: "dog"},
		{ID: 20, Sentence: 2, Offset: 0, Word: "The"},
		{ID: 22, Sentence: 2, Offset: 2, Word: "ran"},
	}
	doc.Trees = []saf.Tree{{Sentence: 2, Tree: "tree-two"}}

	launcher := &fakeLauncher{respond: responderFor(map[string]string{
		"tree-two": `{"frames": [{"target": {"name": "Self_motion", "spans": [{"start": 2, "end": 3}]}, "annotationSets": [{"frameElements": [{"name": "Self_mover", "spans": [{"start": 0, "end": 2}]}]}]}], "tokens": ["The", "dog", "ran"]}`,
	})}
	p := NewWithLauncher(launcher)

	err := AddFrames(doc, p, stubConverter{})
	require.NoError(t, err)

	require.Len(t, doc.Frames, 1)
	frame := doc.Frames[0]
	assert.Equal(t, 2, frame.Sentence)
	assert.Equal(t, "Self_motion", frame.Name)
	assert.Equal(t, []int{22}, frame.Target)
	require.Len(t, frame.Elements, 1)
	assert.Equal(t, "Self_mover", frame.Elements[0].Name)
	assert.Equal(t, []int{20, 21}, frame.Elements[0].Target)

	require.Len(t, doc.Header.Processed, 1)
	assert.Equal(t, "semafor", doc.Header.Processed[0].Module)
	assert.Empty(t, doc.Errors)
}

func TestAddFramesRecordsPerSentenceErrors(t *testing.T) {
	doc := twoSentenceDoc()
	launcher := &fakeLauncher{respond: responderFor(map[string]string{
		"tree-one": `{"error": "sentence too long"}`,
		"tree-two": `{"frames": [{"target": {"name": "Self_motion", "spans": [{"start": 2, "end": 3}]}, "annotationSets": []}], "tokens": ["The", "dog", "ran"]}`,
	})}
	p := NewWithLauncher(launcher)

	err := AddFrames(doc, p, stubConverter{})
	require.NoError(t, err)

	require.Len(t, doc.Errors, 1)
	assert.Equal(t, 1, doc.Errors[0].Sentence)
	assert.Equal(t, "semafor", doc.Errors[0].Module)
	assert.Equal(t, "sentence too long", doc.Errors[0].Message)

	// Sentence 2 is still processed normally.
	require.Len(t, doc.Frames, 1)
	assert.Equal(t, 2, doc.Frames[0].Sentence)
	assert.Equal(t, []int{22}, doc.Frames[0].Target)
}

func TestAddFramesTokenCountMismatchIsFatal(t *testing.T) {
	doc := saf.New()
	for i := 0; i < 5; i++ {
		doc.Tokens = append(doc.Tokens, saf.Token{
			ID: 30 + i, Sentence: 3, Offset: i, Word: fmt.Sprintf("w%d", i),
		})
	}
	doc.Trees = []saf.Tree{{Sentence: 3, Tree: "tree-three"}}

	launcher := &fakeLauncher{respond: responderFor(map[string]string{
		"tree-three": `{"frames": [], "tokens": ["w0", "w1", "w2", "w3"]}`,
	})}
	p := NewWithLauncher(launcher)

	err := AddFrames(doc, p, stubConverter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrTokenMismatch), "got %v", err)
}

func TestAddFramesSpanBeyondSentenceIsFatal(t *testing.T) {
	doc := saf.New()
	doc.Tokens = []saf.Token{
		{ID: 40, Sentence: 4, Offset: 0, Word: "The"},
		{ID: 41, Sentence: 4, Offset: 1, Word: "dog"},
	}
	doc.Trees = []saf.Tree{{Sentence: 4, Tree: "tree-four"}}

	// Token counts agree, but the target span reaches past the sentence.
	launcher := &fakeLauncher{respond: responderFor(map[string]string{
		"tree-four": `{"frames": [{"target": {"name": "X", "spans": [{"start": 0, "end": 5}]}, "annotationSets": []}], "tokens": ["The", "dog"]}`,
	})}
	p := NewWithLauncher(launcher)

	err := AddFrames(doc, p, stubConverter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrProtocol), "got %v", err)
	assert.Empty(t, doc.Frames)
}
