package stem

import (
	"reflect"
	"testing"
)

func TestWordsEnglish(t *testing.T) {
	got, err := Words([]string{"running", "jumps", "easily"}, "en")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"run", "jump", "easili"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUnsupportedLanguageFailsBeforeStemming(t *testing.T) {
	if _, err := Words([]string{"woord"}, "xx"); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestPorterAlias(t *testing.T) {
	got, err := Words([]string{"connection"}, "porter")
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != "connect" {
		t.Errorf("got %q", got[0])
	}
}
