// Package linking holds clients for entity-linking web services.
package linking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Candidate is one entity candidate from semanticizest: the target link
// title, where the mention sits in the input, and the association scores.
type Candidate struct {
	Target     string  `json:"target"`
	Offset     int     `json:"offset"`
	Length     int     `json:"length"`
	Commonness float64 `json:"commonness"`
	SenseProb  float64 `json:"senseprob"`
	LinkProb   float64 `json:"linkprob"`
	NGramCount int     `json:"ngramcount"`
}

// Semanticizer calls a running semanticizest instance
// (http://github.com/semanticize/st).
type Semanticizer struct {
	// URL of the instance, e.g. "http://localhost:5002"
	URL string

	HTTPClient *http.Client
}

// AllCandidates posts text to the instance's /all endpoint and returns
// every candidate entity it reports.
func (s *Semanticizer) AllCandidates(ctx context.Context, text string) ([]Candidate, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("semanticizer: URL required")
	}
	url := strings.TrimRight(s.URL, "/") + "/all"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := httpClient(s.HTTPClient).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semanticizer: unexpected status %s", resp.Status)
	}

	var candidates []Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("semanticizer: %w", err)
	}
	return candidates, nil
}

func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 15 * time.Second}
}
