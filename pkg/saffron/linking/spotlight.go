package linking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Public DBpedia Spotlight mirrors by language code
const spotlightServer = "http://spotlight.sztaki.hu"

var spotlightPorts = map[string]int{
	"en": 2222,
	"fr": 2225,
	"de": 2226,
	"ru": 2227,
	"pt": 2228,
	"hu": 2229,
	"it": 2230,
	"es": 2231,
	"nl": 2232,
	"tr": 2235,
}

// SpotlightAnnotation is one surface form with its candidate resources.
// Resources is always a list, even when the service reports a single
// object.
type SpotlightAnnotation struct {
	SurfaceForm string            `json:"surfaceForm"`
	Offset      int               `json:"offset"`
	Resources   []json.RawMessage `json:"resource"`
}

// Spotlight calls a DBpedia Spotlight /candidates endpoint
type Spotlight struct {
	// APIURL overrides the public mirror, e.g. "http://localhost:2222/rest"
	APIURL     string
	Language   string
	Confidence float64
	Support    int

	HTTPClient *http.Client
}

// Candidates annotates the text, returning only annotations that carry at
// least one candidate resource.
func (s *Spotlight) Candidates(ctx context.Context, text string) ([]SpotlightAnnotation, error) {
	apiURL := s.APIURL
	if apiURL == "" {
		port, ok := spotlightPorts[s.Language]
		if !ok {
			return nil, fmt.Errorf("spotlight: not a valid language code: %q", s.Language)
		}
		apiURL = spotlightServer + ":" + strconv.Itoa(port) + "/rest"
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("confidence", strconv.FormatFloat(s.Confidence, 'f', -1, 64))
	form.Set("support", strconv.Itoa(s.Support))
	form.Set("spotter", "Default")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(apiURL, "/")+"/candidates", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient(s.HTTPClient).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotlight: unexpected status %s", resp.Status)
	}

	var payload struct {
		Annotation struct {
			SurfaceForm json.RawMessage `json:"surfaceForm"`
		} `json:"annotation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("spotlight: %w", err)
	}

	surfaceForms, err := rawList(payload.Annotation.SurfaceForm)
	if err != nil {
		return nil, fmt.Errorf("spotlight: %w", err)
	}

	var annotations []SpotlightAnnotation
	for _, raw := range surfaceForms {
		annot, err := decodeSurfaceForm(raw)
		if err != nil {
			return nil, fmt.Errorf("spotlight: %w", err)
		}
		if len(annot.Resources) > 0 {
			annotations = append(annotations, annot)
		}
	}
	return annotations, nil
}

// decodeSurfaceForm tolerates Spotlight's habit of collapsing single-item
// lists into bare objects, for both surface forms and their resources.
func decodeSurfaceForm(raw json.RawMessage) (SpotlightAnnotation, error) {
	var wire struct {
		Name     string          `json:"@name"`
		Offset   string          `json:"@offset"`
		Resource json.RawMessage `json:"resource"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return SpotlightAnnotation{}, err
	}
	offset, _ := strconv.Atoi(wire.Offset)
	annot := SpotlightAnnotation{SurfaceForm: wire.Name, Offset: offset}

	resources, err := rawList(wire.Resource)
	if err != nil {
		return SpotlightAnnotation{}, err
	}
	annot.Resources = resources
	return annot, nil
}

// rawList reads a JSON value that may be either a list or a bare object
// standing in for a single-item list.
func rawList(raw json.RawMessage) ([]json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	return []json.RawMessage{raw}, nil
}
