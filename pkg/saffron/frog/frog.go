// Package frog is a client for the Frog lemmatizer/POS tagger/NER server
// for Dutch (http://ilk.uvt.nl/frog/).
//
// Frog is expected to already be running in server mode; it is not started
// for you. `frog -S ${SAFFRON_FROG_PORT:-9887}` starts it the right way.
package frog

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/cognicore/saffron/pkg/saffron/saf"
)

// readyMarker terminates Frog's output for one document
const readyMarker = "READY"

// Token is one parsed line of Frog output
type Token struct {
	Sentence int     `json:"sentence"`
	Position int     `json:"position"`
	Word     string  `json:"word"`
	Lemma    string  `json:"lemma"`
	Morph    string  `json:"morph"`
	POS      string  `json:"pos"`
	Conf     float64 `json:"conf"`
	NER      string  `json:"ner"`
	Chunk    string  `json:"chunk"`
	Head     string  `json:"head,omitempty"`
	Relation string  `json:"relation,omitempty"`
}

// Client talks to a running Frog server over TCP
type Client struct {
	// Addr of the server, e.g. "localhost:9887"
	Addr string

	// Dial overrides the connection setup, for tests
	Dial func(ctx context.Context, addr string) (net.Conn, error)
}

// DefaultAddr returns localhost with the port from SAFFRON_FROG_PORT, or
// 9887 when unset.
func DefaultAddr() string {
	port := os.Getenv("SAFFRON_FROG_PORT")
	if port == "" {
		port = "9887"
	}
	return net.JoinHostPort("localhost", port)
}

// Raw sends the document to Frog and returns its raw output lines, one per
// token, with blank lines marking sentence boundaries.
func (c *Client) Raw(ctx context.Context, text string) ([]string, error) {
	addr := c.Addr
	if addr == "" {
		addr = DefaultAddr()
	}
	conn, err := c.dial(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("frog: %w", err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "%s\nEOT\n", strings.TrimRight(text, "\n")); err != nil {
		return nil, fmt.Errorf("frog: write: %w", err)
	}

	var lines []string
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == readyMarker {
			return lines, nil
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("frog: read: %w", err)
	}
	return nil, fmt.Errorf("frog: connection closed before %s marker", readyMarker)
}

func (c *Client) dial(ctx context.Context, addr string) (net.Conn, error) {
	if c.Dial != nil {
		return c.Dial(ctx, addr)
	}
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}

// ParseTokens parses raw Frog output lines into tokens. Sentences are
// numbered from 1 in the order Frog emits them.
func ParseTokens(lines []string) ([]Token, error) {
	var tokens []Token
	sentence := 1
	sawToken := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if sawToken {
				sentence++
				sawToken = false
			}
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 8 {
			return nil, fmt.Errorf("frog: expected at least 8 columns, got %d in %q",
				len(fields), line)
		}
		position, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("frog: bad token position in %q: %w", line, err)
		}
		conf, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, fmt.Errorf("frog: bad confidence in %q: %w", line, err)
		}
		tok := Token{
			Sentence: sentence,
			Position: position,
			Word:     fields[1],
			Lemma:    fields[2],
			Morph:    fields[3],
			POS:      fields[4],
			Conf:     conf,
			NER:      fields[6],
			Chunk:    fields[7],
		}
		if len(fields) >= 10 {
			tok.Head = fields[8]
			tok.Relation = fields[9]
		}
		tokens = append(tokens, tok)
		sawToken = true
	}
	return tokens, nil
}

// ToSAF converts parsed Frog tokens into a SAF document
func ToSAF(tokens []Token) *saf.Document {
	doc := saf.New()
	doc.AddProvenance("frog")
	for i, tok := range tokens {
		doc.Tokens = append(doc.Tokens, saf.Token{
			ID:       i + 1,
			Sentence: tok.Sentence,
			Offset:   tok.Position - 1,
			Word:     tok.Word,
			Lemma:    tok.Lemma,
			POS:      tok.POS,
		})
	}
	return doc
}
