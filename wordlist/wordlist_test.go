package wordlist

import (
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/textpress"
)

func TestReader(t *testing.T) {
	src := strings.NewReader("the\t23135851162\nof\t13151942776\n\n  and \ndon't\t123\n")
	r := NewReader(src)
	for _, want := range []string{"the", "of", "and", "don't"} {
		word, err := r.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if word != want {
			t.Fatalf("word mismatch: got %q, want %q", word, want)
		}
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestLoadDictionary(t *testing.T) {
	dict, err := LoadDictionary("test", strings.NewReader("the\t10\ncat\t5\nsat\t2\n"), textpress.DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	if dict.Len() != 4 {
		t.Fatalf("dictionary has %d ids, want 4", dict.Len())
	}
	if id, ok := dict.ID("cat"); !ok || id != 2 {
		t.Fatalf("id of cat is %d (%v), want 2", id, ok)
	}
	if w, _ := dict.Word(0); w != textpress.Newline {
		t.Fatalf("id 0 is %q, want newline", w)
	}
}
