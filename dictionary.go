package textpress

import (
	"fmt"
	"io"

	"github.com/derekparker/trie"
)

// Newline is the token for a line break. It always has ID 0.
const Newline = "\n"

// WordReader yields dictionary words in frequency order, one by one.
// It should return io.EOF when the stream is exhausted.
type WordReader interface {
	Next() (word string, err error)
}

// Dictionary is a static, frequency-ranked word list.
//
// ID 0 is reserved for the newline token; words read from a WordReader are
// numbered from 1 upward. A dictionary is read-only after loading and may be
// shared between pipelines.
type Dictionary struct {
	index      *trie.Trie // word => ID, stored as node meta
	words      []string   // ID => word
	Identifier string     // Identifies the dictionary
}

// LoadDictionary builds a dictionary from a streaming, format-agnostic source.
// Words which do not fit below the rare-word limit of layout are dropped.
//
// File format parsing is outside the base package. Use adapters like package
// wordlist to parse concrete formats and feed this API.
func LoadDictionary(name string, reader WordReader, layout Layout) (dict *Dictionary, err error) {
	dict = newDictionary(name)
	limit := int(layout.RareLimit())
	dropped, dups := 0, 0
	var word string
	for {
		word, err = reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if word == "" {
			continue
		}
		if len(dict.words) >= limit {
			dropped++
			continue
		}
		if !dict.add(word) {
			dups++
		}
	}
	if dropped > 0 {
		tracer().Infof("dictionary %q: %d words beyond id %d dropped", name, dropped, limit)
	}
	tracer().Infof("dictionary %q: %d ids, %d duplicates", name, len(dict.words), dups)
	return dict, nil
}

// NewDictionary creates a dictionary from an in-memory word list. Like
// LoadDictionary it drops words which do not fit below the rare-word limit
// of layout.
func NewDictionary(name string, words []string, layout Layout) *Dictionary {
	dict, _ := LoadDictionary(name, &wordSlice{words: words}, layout)
	return dict
}

// wordSlice is a WordReader over a slice. It never fails.
type wordSlice struct {
	words []string
	next  int
}

func (ws *wordSlice) Next() (string, error) {
	if ws.next >= len(ws.words) {
		return "", io.EOF
	}
	ws.next++
	return ws.words[ws.next-1], nil
}

func newDictionary(name string) *Dictionary {
	dict := &Dictionary{
		index:      trie.New(),
		words:      make([]string, 0, 1024),
		Identifier: fmt.Sprintf("dictionary: %s", name),
	}
	dict.add(Newline)
	return dict
}

// add appends word with the next ID. A duplicate word occupies an ID, but
// lookups keep returning the first one.
func (dict *Dictionary) add(word string) bool {
	id := uint32(len(dict.words))
	dict.words = append(dict.words, word)
	if _, found := dict.index.Find(word); found {
		return false
	}
	dict.index.Add(word, id)
	return true
}

// ID returns the ID of word.
func (dict *Dictionary) ID(word string) (uint32, bool) {
	if dict == nil {
		return 0, false
	}
	node, found := dict.index.Find(word)
	if !found {
		return 0, false
	}
	return node.Meta().(uint32), true
}

// Word returns the word with ID id.
func (dict *Dictionary) Word(id uint32) (string, bool) {
	if dict == nil || int(id) >= len(dict.words) {
		return "", false
	}
	return dict.words[id], true
}

// Len returns the number of IDs in use, including the newline.
func (dict *Dictionary) Len() int {
	if dict == nil {
		return 0
	}
	return len(dict.words)
}
