// Package document resolves task inputs. A task input is either literal
// text or a reference to a document held in an external store; both
// satisfy Fetcher.
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Fetcher resolves an opaque document reference to its text
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Literal is a document given directly as a string
type Literal string

// Fetch returns the literal text itself
func (l Literal) Fetch(context.Context) (string, error) {
	return string(l), nil
}

// StoreRef points at one field of a document in an Elasticsearch-style
// store. Fetch retrieves the document source over HTTP and extracts the
// field.
type StoreRef struct {
	BaseURL string
	Index   string
	Type    string
	ID      string
	Field   string

	HTTPClient *http.Client
}

// Fetch retrieves the referenced field from the store
func (r StoreRef) Fetch(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/%s/_source",
		strings.TrimRight(r.BaseURL, "/"), r.Index, r.Type, r.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("document store: unexpected status %s for %s", resp.Status, url)
	}

	var source map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&source); err != nil {
		return "", fmt.Errorf("document store: %w", err)
	}
	raw, ok := source[r.Field]
	if !ok {
		return "", fmt.Errorf("document store: field %q missing in %s/%s/%s",
			r.Field, r.Index, r.Type, r.ID)
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", fmt.Errorf("document store: field %q is not text: %w", r.Field, err)
	}
	return text, nil
}

func (r StoreRef) httpClient() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// StripHTML returns the text content of an HTML fragment, with markup
// removed and script/style bodies dropped.
func StripHTML(s string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	var buf strings.Builder
	skip := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(buf.String()), " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				buf.Write(tokenizer.Text())
				buf.WriteByte(' ')
			}
		}
	}
}
