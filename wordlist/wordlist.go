package wordlist

import (
	"bufio"
	"io"
	"strings"

	"github.com/npillmayer/textpress"
)

// Reader streams words from a frequency-ranked word list.
//
// The list has one word per line, most frequent first. A word may be
// followed by a tab and its count, as in
//
//	the	23135851162
//	of	13151942776
//	and	12997637966
//
// Counts are ignored; the rank of a word is its line. Blank lines are skipped
// and do not take a rank.
type Reader struct {
	scanner *bufio.Scanner
}

// LoadDictionary parses a word list from reader and returns a dictionary.
func LoadDictionary(name string, reader io.Reader, layout textpress.Layout) (*textpress.Dictionary, error) {
	return textpress.LoadDictionary(name, NewReader(reader), layout)
}

func NewReader(reader io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(reader),
	}
}

// Next returns the next word.
// It returns io.EOF when exhausted.
func (r *Reader) Next() (string, error) {
	for r.scanner.Scan() {
		word, _, _ := strings.Cut(r.scanner.Text(), "\t")
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		return word, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
