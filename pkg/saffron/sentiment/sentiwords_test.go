package sentiment

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func testLexicon() *Lexicon {
	return NewLexicon(map[string]float64{
		"good":          0.7,
		"bad":           -0.6,
		"not bad":       0.4,
		"over the moon": 0.9,
	})
}

func TestTagLongestMatchWins(t *testing.T) {
	tagged := testLexicon().Tag(strings.Fields("the movie was not bad"))

	var spans []string
	for _, tg := range tagged {
		spans = append(spans, strings.Join(tg.Tokens, " "))
	}
	want := []string{"the", "movie", "was", "not bad"}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got spans %v, want %v", spans, want)
	}
	last := tagged[len(tagged)-1]
	if last.Polarity != 0.4 {
		t.Errorf("expected prior 0.4 for %q, got %f", "not bad", last.Polarity)
	}
}

func TestTagCoversAllTokens(t *testing.T) {
	tokens := strings.Fields("I was over the moon about it")
	tagged := testLexicon().Tag(tokens)

	total := 0
	for _, tg := range tagged {
		total += len(tg.Tokens)
	}
	if total != len(tokens) {
		t.Errorf("tagged %d tokens out of %d", total, len(tokens))
	}
}

func TestBag(t *testing.T) {
	tagged := testLexicon().Tag(strings.Fields("good film good plot dull ending"))
	bag := Bag(tagged)

	if entry, ok := bag["good"]; !ok || entry[1] != 2 || entry[0] != 0.7 {
		t.Errorf("unexpected bag entry for good: %v", entry)
	}
	if _, ok := bag["dull"]; ok {
		t.Error("zero-polarity spans must not appear in the bag")
	}
}

func TestLoadAveragesAcrossPOS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentiwords.txt")
	content := "# comment\nfine#a\t0.6\nfine#n\t0.2\nbroken#a\t-0.5\nno_good#a\t-0.8\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	tagged := lex.Tag([]string{"fine"})
	if tagged[0].Polarity != 0.4 {
		t.Errorf("expected averaged prior 0.4, got %f", tagged[0].Polarity)
	}

	tagged = lex.Tag([]string{"no", "good"})
	if len(tagged) != 1 || tagged[0].Polarity != -0.8 {
		t.Errorf("expected underscore entry to match as a span, got %v", tagged)
	}
}
