package textpress

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type sliceWordReader struct {
	words []string
	index int
}

func (r *sliceWordReader) Next() (string, error) {
	if r.index >= len(r.words) {
		return "", io.EOF
	}
	r.index++
	return r.words[r.index-1], nil
}

type sliceNgramReader struct {
	rows  [][]byte
	index int
}

func (r *sliceNgramReader) Next() ([]byte, error) {
	if r.index >= len(r.rows) {
		return nil, io.EOF
	}
	r.index++
	return r.rows[r.index-1], nil
}

func catDictionary() *Dictionary {
	return NewDictionary("cat", []string{"the", "cat", "sat", "on", "mat", "."}, DefaultLayout())
}

func TestEncodeTopWords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textpress")
	defer teardown()
	//
	dict := catDictionary()
	lines := LineTokenizer{}.Tokenize("The cat sat.")
	enc := NewEncoder(NewSession(dict, DefaultLayout()), nil)
	stream, err := enc.EncodeLines(lines)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{1, 2, 3, 6, 0}, stream); diff != "" {
		t.Fatalf("stage 1 stream (-want +got):\n%s", diff)
	}
	tokens, err := NewDecoder(NewSession(dict, DefaultLayout()), nil).DecodeStream(stream)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"the", "cat", "sat", ".", Newline}, tokens); diff != "" {
		t.Fatalf("decoded tokens (-want +got):\n%s", diff)
	}
	if text := (EnglishDetokenizer{}).Detokenize(tokens); text != "The cat sat. " {
		t.Fatalf("detokenized text is %q, want %q", text, "The cat sat. ")
	}
}

func TestEscapeThenSessionRecall(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textpress")
	defer teardown()
	//
	enc := NewEncoder(NewSession(nil, DefaultLayout()), nil)
	enc.rawOnly = true
	stream, err := enc.EncodeLines([][]string{{"xyzzy", "xyzzy"}})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0xFF, 0xFF, 0xFF, 'x', 'y', 'z', 'z', 'y', 0, // raw escape
		0x80, 0x80, 0x80, // first session ID
		0, // newline
	}
	if diff := cmp.Diff(want, stream); diff != "" {
		t.Fatalf("stage 1 stream (-want +got):\n%s", diff)
	}
	dec := NewDecoder(NewSession(nil, DefaultLayout()), nil)
	tokens, err := dec.DecodeStream(stream)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"xyzzy", "xyzzy", Newline}, tokens); diff != "" {
		t.Fatalf("decoded tokens (-want +got):\n%s", diff)
	}
}

func TestHuffmanEscapeIsShorter(t *testing.T) {
	token := "eeeeeeeeeeee"
	enc := NewEncoder(NewSession(nil, DefaultLayout()), nil)
	stream, err := enc.EncodeToken(nil, token)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(stream, DefaultLayout().AppendEscape(nil, SelectLower)) {
		t.Fatalf("stream % x does not start with the lowercase escape", stream)
	}
	if len(stream) >= 3+len(token)+1 {
		t.Fatalf("Huffman escape has %d bytes, raw would have %d", len(stream), 3+len(token)+1)
	}
	if bytes.IndexByte(stream[3:len(stream)-1], 0) >= 0 {
		t.Fatalf("payload % x contains a zero byte", stream[3:])
	}
	tokens, err := NewDecoder(NewSession(nil, DefaultLayout()), nil).DecodeStream(stream)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 || tokens[0] != token {
		t.Fatalf("decoded %q, want %q", tokens, token)
	}
}

func TestEscapeSplitsUnknownTokens(t *testing.T) {
	dict := NewDictionary("split", []string{"dog", "'s"}, DefaultLayout())
	enc := NewEncoder(NewSession(dict, DefaultLayout()), nil)
	stream, err := enc.EncodeToken(nil, "dog's")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{1, 2}, stream); diff != "" {
		t.Fatalf("stream of dog's (-want +got):\n%s", diff)
	}
}

func TestStrictEncoderRejectsUnknown(t *testing.T) {
	enc := NewEncoder(NewSession(catDictionary(), DefaultLayout()), nil)
	enc.strict = true
	if _, err := enc.EncodeToken(nil, "dog"); !errors.Is(err, ErrUnresolved) {
		t.Fatalf("error is %v, want ErrUnresolved", err)
	}
	if enc.session.Len() != 0 {
		t.Fatalf("strict encoder registered %d session words", enc.session.Len())
	}
}

func TestDecodeNgramExpansion(t *testing.T) {
	dict := catDictionary()
	table, err := LoadNgrams("cat", &sliceNgramReader{rows: [][]byte{{4, 1, 5, 6}}}, DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	stream := DefaultLayout().AppendNgram([]byte{1, 2, 3}, 0)
	stream = append(stream, 0)
	tokens, err := NewDecoder(NewSession(dict, DefaultLayout()), table).DecodeStream(stream)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"the", "cat", "sat", "on", "the", "mat", ".", Newline}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Fatalf("decoded tokens (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	l := DefaultLayout()
	wide := Layout{NgramOffset: l.NgramOffset, Escapes: 8}
	nested, err := LoadNgrams("nested", &sliceNgramReader{rows: [][]byte{
		l.AppendNgram(nil, 0),
		l.AppendEscape([]byte{1}, SelectRaw),
	}}, l)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		layout Layout
		ngrams *NgramTable
		stream []byte
		want   error
	}{
		{"unknown id", l, nil, []byte{1, 9}, ErrUnknownID},
		{"unknown session", l, nil, l.AppendID(nil, SessionBase), ErrUnknownSession},
		{"unterminated", l, nil, l.AppendEscape(nil, SelectRaw), ErrUnterminatedEscape},
		{"truncated", l, nil, []byte{1, 0x81}, ErrTruncated},
		{"unknown selector", wide, nil, append(wide.AppendEscape(nil, 6), 'a', 0), ErrUnknownSelector},
		{"missing table", l, nil, l.AppendNgram(nil, 0), ErrCorruptNgram},
		{"missing row", l, nested, l.AppendNgram(nil, 7), ErrCorruptNgram},
		{"nested n-gram", l, nested, l.AppendNgram(nil, 0), ErrCorruptNgram},
		{"escape in n-gram", l, nested, l.AppendNgram(nil, 1), ErrCorruptNgram},
	}
	for _, tt := range tests {
		dec := NewDecoder(NewSession(catDictionary(), tt.layout), tt.ngrams)
		if _, err := dec.DecodeStream(tt.stream); !errors.Is(err, tt.want) {
			t.Fatalf("%s: error is %v, want %v", tt.name, err, tt.want)
		}
	}
}
