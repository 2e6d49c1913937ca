package semafor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cognicore/saffron/pkg/saffron/internalerr"
)

// TreeConverter turns one bracketed (Penn-style) parse tree into the CoNLL
// dependency format Semafor reads.
type TreeConverter interface {
	ToCoNLL(tree string) (string, error)
}

// CoreNLPConverter converts trees by running CoreNLP's
// EnglishGrammaticalStructure as a one-shot process per sentence.
type CoreNLPConverter struct {
	// Home is the CoreNLP installation directory
	Home string
}

// NewCoreNLPConverter reads CORENLP_HOME
func NewCoreNLPConverter() (*CoreNLPConverter, error) {
	home := os.Getenv("CORENLP_HOME")
	if home == "" {
		return nil, fmt.Errorf("%w: CORENLP_HOME not set", internalerr.ErrInvalidConfig)
	}
	return &CoreNLPConverter{Home: home}, nil
}

// ToCoNLL wraps the tree in a stub CoreNLP XML document and feeds it to the
// -conllx converter, returning its raw output.
func (c *CoreNLPConverter) ToCoNLL(tree string) (string, error) {
	xml := "<root><document><sentences><sentence>" + tree +
		"</sentence></sentences></document></root>"

	f, err := os.CreateTemp("", "saffron-tree-*.xml")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(xml); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	cmd := exec.Command("java", "-cp", filepath.Join(c.Home, "*"),
		"edu.stanford.nlp.trees.EnglishGrammaticalStructure",
		"-conllx", "-treeFile", f.Name())
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("corenlp conversion: %w", err)
	}
	return string(out), nil
}
