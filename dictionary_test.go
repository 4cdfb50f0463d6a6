package textpress

import (
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDictionaryIDs(t *testing.T) {
	dict := NewDictionary("ids", []string{"the", "cat", "", "the", "catalog"}, DefaultLayout())
	tests := []struct {
		word string
		id   uint32
	}{
		{Newline, 0},
		{"the", 1},
		{"cat", 2},
		{"catalog", 4},
	}
	for _, tt := range tests {
		id, ok := dict.ID(tt.word)
		if !ok || id != tt.id {
			t.Fatalf("id of %q is %d (%v), want %d", tt.word, id, ok, tt.id)
		}
		if w, _ := dict.Word(tt.id); w != tt.word {
			t.Fatalf("word %d is %q, want %q", tt.id, w, tt.word)
		}
	}
	if w, _ := dict.Word(3); w != "the" {
		t.Fatalf("duplicate keeps its id, word 3 is %q", w)
	}
	if dict.Len() != 5 {
		t.Fatalf("dictionary has %d ids, want 5", dict.Len())
	}
	if _, ok := dict.ID("ca"); ok {
		t.Fatalf("prefix ca found as word")
	}
}

func TestNilDictionary(t *testing.T) {
	var dict *Dictionary
	if _, ok := dict.ID("the"); ok {
		t.Fatalf("nil dictionary finds words")
	}
	if _, ok := dict.Word(0); ok {
		t.Fatalf("nil dictionary has words")
	}
	if dict.Len() != 0 {
		t.Fatalf("nil dictionary is not empty")
	}
}

func TestLoadDictionaryDropsBeyondRareLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textpress")
	defer teardown()
	//
	layout := Layout{NgramOffset: 10, Escapes: selectorCount}
	words := make([]string, int(layout.RareLimit())+20)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	dict, err := LoadDictionary("many", &sliceWordReader{words: words}, layout)
	if err != nil {
		t.Fatal(err)
	}
	if dict.Len() != int(layout.RareLimit()) {
		t.Fatalf("dictionary has %d ids, want %d", dict.Len(), layout.RareLimit())
	}
	if id, ok := dict.ID("w0"); !ok || id != 1 {
		t.Fatalf("first word has id %d, want 1", id)
	}
	last := fmt.Sprintf("w%d", layout.RareLimit()-2)
	if id, ok := dict.ID(last); !ok || id != layout.RareLimit()-1 {
		t.Fatalf("%s has id %d, want %d", last, id, layout.RareLimit()-1)
	}
	if _, ok := dict.ID(fmt.Sprintf("w%d", layout.RareLimit()-1)); ok {
		t.Fatalf("word beyond rare limit kept")
	}
}

func TestNewDictionaryDropsBeyondRareLimit(t *testing.T) {
	layout := Layout{NgramOffset: 10, Escapes: selectorCount}
	words := make([]string, int(layout.RareLimit())+10)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	dict := NewDictionary("many", words, layout)
	if dict.Len() != int(layout.RareLimit()) {
		t.Fatalf("dictionary has %d ids, want %d", dict.Len(), layout.RareLimit())
	}
	for _, w := range words {
		id, ok := dict.ID(w)
		if c := layout.ClassOf(id); ok && (c < Class1 || c > Class3Rare) {
			t.Fatalf("%s has id %d of class %s", w, id, c)
		}
	}
	last := words[len(words)-1]
	p, err := NewPipeline(dict, nil, WithLayout(layout), WithoutTransliteration())
	if err != nil {
		t.Fatal(err)
	}
	packed, err := p.Compress([]byte(last))
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.Decompress(packed)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if want := "W" + last[1:] + " "; string(out) != want {
		t.Fatalf("round trip gives %q, want %q", out, want)
	}
}

func TestSessionWithoutDictionaryKnowsNewline(t *testing.T) {
	s := NewSession(nil, DefaultLayout())
	if id, ok := s.Lookup(Newline); !ok || id != 0 {
		t.Fatalf("newline has id %d (%v), want 0", id, ok)
	}
	if w, ok := s.Word(0); !ok || w != Newline {
		t.Fatalf("id 0 is %q (%v), want newline", w, ok)
	}
	tokens, err := NewDecoder(s, nil).DecodeStream([]byte{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 2 || tokens[0] != Newline || tokens[1] != Newline {
		t.Fatalf("decoded %q, want two newlines", tokens)
	}
}

func TestSessionRegister(t *testing.T) {
	s := NewSession(catDictionary(), DefaultLayout())
	id, ok := s.Register("xyzzy")
	if !ok || id != SessionBase {
		t.Fatalf("first session id is %d, want %d", id, SessionBase)
	}
	if id, _ = s.Register("plugh"); id != SessionBase+1 {
		t.Fatalf("second session id is %d, want %d", id, SessionBase+1)
	}
	if id, _ = s.Register("xyzzy"); id != SessionBase {
		t.Fatalf("re-registered token got id %d", id)
	}
	if id, ok = s.Lookup("plugh"); !ok || id != SessionBase+1 {
		t.Fatalf("lookup of session word gives %d, %v", id, ok)
	}
	if id, _ = s.Lookup("cat"); id != 2 {
		t.Fatalf("static word cat has id %d, want 2", id)
	}
	if w, ok := s.Word(SessionBase + 1); !ok || w != "plugh" {
		t.Fatalf("session word is %q, want plugh", w)
	}
	if _, ok = s.Word(SessionBase + 2); ok {
		t.Fatalf("unregistered session id resolved")
	}
	if _, ok = s.Word(DefaultLayout().RareLimit()); ok {
		t.Fatalf("n-gram id resolved as word")
	}
	if s.Len() != 2 {
		t.Fatalf("session has %d words, want 2", s.Len())
	}
}

func TestSessionFull(t *testing.T) {
	layout := Layout{NgramOffset: 524416, Escapes: planeSize - 1}
	s := NewSession(nil, layout)
	if _, ok := s.Register("a"); !ok {
		t.Fatalf("first registration refused")
	}
	if _, ok := s.Register("b"); ok {
		t.Fatalf("registration beyond capacity accepted")
	}
	enc := NewEncoder(s, nil)
	enc.rawOnly = true
	stream, err := enc.EncodeLines([][]string{{"b", "b"}})
	if err != nil {
		t.Fatal(err)
	}
	escape := layout.AppendEscape(nil, SelectRaw)
	want := append(append(escape, 'b', 0), escape...)
	want = append(want, 'b', 0, 0)
	if string(stream) != string(want) {
		t.Fatalf("stream is % x, want % x", stream, want)
	}
}
