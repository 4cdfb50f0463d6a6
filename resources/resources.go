package resources

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/textpress"
	"github.com/npillmayer/textpress/bytepack"
	"github.com/npillmayer/textpress/ngramfile"
	"github.com/npillmayer/textpress/wordlist"
)

// Configuration keys read by Load and Pipeline.
const (
	KeyWordList   = "resources.wordlist"
	KeyNgrams     = "resources.ngrams"
	KeyFinalTable = "resources.final_table"
	KeyRawEscapes = "raw_escapes"
	KeyNgramPass  = "ngram_pass"
)

// Resources are the static data shared by compressor and decompressor.
type Resources struct {
	Layout     textpress.Layout
	Dictionary *textpress.Dictionary
	Ngrams     *textpress.NgramTable // may be nil
	Table      *bytepack.Table       // nil selects the default table
}

// Load loads word list, n-gram table and final Huffman table from the files
// named in conf. Only the word list is required.
//
// Example configuration:
//
//	resources:
//	  wordlist:    count_1w.txt
//	  ngrams:      outngrams.bin
//	  final_table: final.tpfh
//	layout:
//	  ngram_offset: 524416
func Load(conf schuko.Configuration) (*Resources, error) {
	layout, err := textpress.LayoutFromConfig(conf)
	if err != nil {
		return nil, err
	}
	res := &Resources{Layout: layout}
	path := conf.GetString(KeyWordList)
	if path == "" {
		return nil, fmt.Errorf("no word list configured (%s)", KeyWordList)
	}
	err = withFile(path, func(r io.Reader) (err error) {
		res.Dictionary, err = wordlist.LoadDictionary(path, r, layout)
		return
	})
	if err != nil {
		return nil, err
	}
	if path = conf.GetString(KeyNgrams); path != "" {
		err = withFile(path, func(r io.Reader) (err error) {
			res.Ngrams, err = ngramfile.LoadNgrams(path, r, layout)
			return
		})
		if err != nil {
			return nil, err
		}
	}
	if path = conf.GetString(KeyFinalTable); path != "" {
		err = withFile(path, func(r io.Reader) (err error) {
			res.Table, err = bytepack.ReadTable(r)
			return
		})
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// FromReaders builds resources from open streams. ngrams and table may be nil.
func FromReaders(layout textpress.Layout, words, ngrams, table io.Reader) (*Resources, error) {
	res := &Resources{Layout: layout}
	var err error
	if res.Dictionary, err = wordlist.LoadDictionary("words", words, layout); err != nil {
		return nil, err
	}
	if ngrams != nil {
		if res.Ngrams, err = ngramfile.LoadNgrams("ngrams", ngrams, layout); err != nil {
			return nil, err
		}
	}
	if table != nil {
		if res.Table, err = bytepack.ReadTable(table); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Pipeline creates a pipeline for the resources. Flags "raw_escapes" and
// "ngram_pass" are read from conf, which may be nil.
func (res *Resources) Pipeline(conf schuko.Configuration, opts ...textpress.Option) (*textpress.Pipeline, error) {
	all := []textpress.Option{textpress.WithLayout(res.Layout)}
	if res.Table != nil {
		all = append(all, textpress.WithFinalTable(res.Table))
	}
	if conf != nil {
		if conf.GetBool(KeyRawEscapes) {
			all = append(all, textpress.WithRawEscapes())
		}
		if conf.IsSet(KeyNgramPass) && !conf.GetBool(KeyNgramPass) {
			all = append(all, textpress.WithoutNgramPass())
		}
	}
	return textpress.NewPipeline(res.Dictionary, res.Ngrams, append(all, opts...)...)
}

func withFile(path string, load func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
