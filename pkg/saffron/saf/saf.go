// Package saf defines the shared annotation format: a document structure
// with token lists, parse trees and accumulated linguistic annotations.
package saf

import (
	"crypto/rand"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
)

// Document is a SAF article. Tasks that produce SAF output fill in the
// annotation slices; tasks that consume SAF read tokens and trees.
type Document struct {
	Header Header  `json:"header"`
	Tokens []Token `json:"tokens,omitempty"`
	Trees  []Tree  `json:"trees,omitempty"`
	Frames []Frame `json:"frames,omitempty"`
	Errors []Error `json:"errors,omitempty"`
}

// Header carries format information and processing provenance
type Header struct {
	Format        string       `json:"format"`
	FormatVersion string       `json:"format-version,omitempty"`
	Processed     []Provenance `json:"processed,omitempty"`
}

// Provenance records one processing step applied to the document
type Provenance struct {
	Module  string `json:"module"`
	Started string `json:"started"`
	RunID   string `json:"run_id"`
}

// Token is a single word occurrence. Sentence numbers tie tokens to trees;
// Offset orders tokens within their sentence.
type Token struct {
	ID       int    `json:"id"`
	Sentence int    `json:"sentence"`
	Offset   int    `json:"offset"`
	Word     string `json:"word"`
	Lemma    string `json:"lemma,omitempty"`
	POS      string `json:"pos,omitempty"`
}

// Tree is a bracketed parse tree for one sentence
type Tree struct {
	Sentence int    `json:"sentence"`
	Tree     string `json:"tree"`
}

// Frame is a semantic frame: a predicate target plus named argument spans,
// all expressed as lists of token ids.
type Frame struct {
	Sentence int       `json:"sentence"`
	Name     string    `json:"name"`
	Target   []int     `json:"target"`
	Elements []Element `json:"elements"`
}

// Element is a named frame element (argument span)
type Element struct {
	Name   string `json:"name"`
	Target []int  `json:"target"`
}

// Error records a per-sentence failure from an annotation module.
// Processing continues past these; they are the only partial-failure path.
type Error struct {
	Module   string `json:"module"`
	Sentence int    `json:"sentence"`
	Message  string `json:"message"`
}

// New creates an empty SAF document
func New() *Document {
	return &Document{Header: Header{Format: "SAF"}}
}

// SentenceTokens returns the tokens of the given sentence, sorted by their
// intra-sentence offset.
func (d *Document) SentenceTokens(sentence int) []Token {
	var tokens []Token
	for _, t := range d.Tokens {
		if t.Sentence == sentence {
			tokens = append(tokens, t)
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Offset < tokens[j].Offset
	})
	return tokens
}

// AddProvenance appends a processing record for the named module and
// returns it. The record carries a fresh ULID so separate runs of the same
// module stay distinguishable.
func (d *Document) AddProvenance(module string) Provenance {
	p := Provenance{
		Module:  module,
		Started: time.Now().Format(time.RFC3339),
		RunID:   ulid.MustNew(ulid.Now(), rand.Reader).String(),
	}
	d.Header.Processed = append(d.Header.Processed, p)
	return p
}

// AddError records a per-sentence error for the named module
func (d *Document) AddError(module string, sentence int, message string) {
	d.Errors = append(d.Errors, Error{Module: module, Sentence: sentence, Message: message})
}
