package textpress

import (
	"fmt"

	"github.com/npillmayer/textpress/ascii"
	"github.com/npillmayer/textpress/bytepack"
)

// Pipeline chains the three stages of compression:
//
//	text → ASCII → tokens → dictionary codes → n-gram codes → bytepack
//
// A Pipeline is read-only after construction and may be used concurrently;
// every call works on a session of its own.
type Pipeline struct {
	dict          *Dictionary
	ngrams        *NgramTable
	layout        Layout
	tokenizer     Tokenizer
	detokenizer   Detokenizer
	splitter      Splitter
	table         *bytepack.Table
	rawEscapes    bool
	ngramPass     bool
	transliterate bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLayout sets the code space layout. It must match the layout the
// dictionary and n-gram table were loaded with.
func WithLayout(layout Layout) Option {
	return func(p *Pipeline) { p.layout = layout }
}

// WithTokenizer replaces the default LineTokenizer.
func WithTokenizer(t Tokenizer) Option {
	return func(p *Pipeline) { p.tokenizer = t }
}

// WithDetokenizer replaces the default EnglishDetokenizer.
func WithDetokenizer(d Detokenizer) Option {
	return func(p *Pipeline) { p.detokenizer = d }
}

// WithSplitter replaces the default SubtokenSplitter.
func WithSplitter(s Splitter) Option {
	return func(p *Pipeline) { p.splitter = s }
}

// WithFinalTable sets the Huffman table of the last stage. Compressor and
// decompressor must use the same table.
func WithFinalTable(t *bytepack.Table) Option {
	return func(p *Pipeline) { p.table = t }
}

// WithRawEscapes writes escaped tokens verbatim instead of Huffman coded.
func WithRawEscapes() Option {
	return func(p *Pipeline) { p.rawEscapes = true }
}

// WithoutNgramPass skips stage 2 when compressing.
func WithoutNgramPass() Option {
	return func(p *Pipeline) { p.ngramPass = false }
}

// WithoutTransliteration expects input to be ASCII already.
func WithoutTransliteration() Option {
	return func(p *Pipeline) { p.transliterate = false }
}

// NewPipeline creates a pipeline for a dictionary and an n-gram table.
// Both may be nil; every token will then be escaped.
func NewPipeline(dict *Dictionary, ngrams *NgramTable, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		dict:          dict,
		ngrams:        ngrams,
		layout:        DefaultLayout(),
		tokenizer:     LineTokenizer{},
		detokenizer:   EnglishDetokenizer{},
		table:         bytepack.DefaultTable(),
		ngramPass:     true,
		transliterate: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.layout.Validate(); err != nil {
		return nil, err
	}
	if p.dict == nil {
		p.dict = NewDictionary("empty", nil, p.layout)
	}
	if p.splitter == nil {
		p.splitter = SubtokenSplitter{Dict: p.dict}
	}
	if p.table == nil {
		p.table = bytepack.DefaultTable()
	}
	return p, nil
}

func (p *Pipeline) encoder(s *Session) *Encoder {
	enc := NewEncoder(s, p.splitter)
	enc.rawOnly = p.rawEscapes
	return enc
}

// Compress compresses text.
func (p *Pipeline) Compress(text []byte) ([]byte, error) {
	stream, err := p.Encode(text)
	if err != nil {
		return nil, err
	}
	out, err := bytepack.Pack(stream, p.table)
	if err != nil {
		return nil, err
	}
	tracer().Infof("compressed %d bytes to %d", len(text), len(out))
	return out, nil
}

// Encode runs the dictionary and n-gram stages on text and returns the
// stream which Compress hands to package bytepack.
func (p *Pipeline) Encode(text []byte) ([]byte, error) {
	if p.transliterate {
		var err error
		if text, err = ascii.Transliterate(text); err != nil {
			return nil, fmt.Errorf("transliterate: %w", err)
		}
	}
	lines := p.tokenizer.Tokenize(string(text))
	enc := p.encoder(NewSession(p.dict, p.layout))
	stream, err := enc.EncodeLines(lines)
	if err != nil {
		return nil, fmt.Errorf("stage 1: %w", err)
	}
	stage1 := len(stream)
	if p.ngramPass {
		if stream, err = NewCompactor(p.ngrams, p.layout).Compact(stream); err != nil {
			return nil, fmt.Errorf("stage 2: %w", err)
		}
	}
	tracer().Infof("encoded %d bytes: stage 1 %d, stage 2 %d", len(text), stage1, len(stream))
	return stream, nil
}

// Decompress restores text compressed by Compress. The result is
// lowercased text with spacing and capitalization rebuilt by the
// detokenizer.
func (p *Pipeline) Decompress(data []byte) ([]byte, error) {
	stream, err := bytepack.Unpack(data, p.table)
	if err != nil {
		return nil, err
	}
	return p.Decode(stream)
}

// Decode restores text from the output of Encode.
func (p *Pipeline) Decode(stream []byte) ([]byte, error) {
	dec := NewDecoder(NewSession(p.dict, p.layout), p.ngrams)
	tokens, err := dec.DecodeStream(stream)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return []byte(p.detokenizer.Detokenize(tokens)), nil
}

// EncodeNgram returns the stage 1 codes of phrase for an n-gram table, or
// nil if any part of phrase is missing from the dictionary. Line breaks in
// phrase are ignored.
func (p *Pipeline) EncodeNgram(phrase string) []byte {
	if p.transliterate {
		b, err := ascii.Transliterate([]byte(phrase))
		if err != nil {
			return nil
		}
		phrase = string(b)
	}
	enc := p.encoder(NewSession(p.dict, p.layout))
	enc.strict = true
	var out []byte
	var err error
	for _, line := range p.tokenizer.Tokenize(phrase) {
		for _, token := range line {
			if out, err = enc.EncodeToken(out, token); err != nil {
				tracer().Debugf("n-gram %q: %v", phrase, err)
				return nil
			}
		}
	}
	return out
}
