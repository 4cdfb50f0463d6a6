package textpress

import (
	"bytes"
	"fmt"
)

// Encoder maps tokens onto codes (stage 1). It writes into a session and is
// not safe for concurrent use.
type Encoder struct {
	session  *Session
	splitter Splitter
	rawOnly  bool // never use Huffman escape payloads
	strict   bool // fail instead of escaping unresolved tokens
	escapes  int
}

// NewEncoder creates an encoder writing into session s. A nil splitter
// selects a SubtokenSplitter on the session's dictionary.
func NewEncoder(s *Session, splitter Splitter) *Encoder {
	if splitter == nil {
		splitter = SubtokenSplitter{Dict: s.dict}
	}
	return &Encoder{session: s, splitter: splitter}
}

// EncodeToken appends the codes for token to dst.
//
// A token missing from dictionary and session is split into sub-tokens;
// each unresolved sub-token is escaped and registered in the session. In
// strict mode an unresolved sub-token fails with ErrUnresolved instead.
func (enc *Encoder) EncodeToken(dst []byte, token string) ([]byte, error) {
	layout := enc.session.layout
	if id, ok := enc.session.Lookup(token); ok {
		return layout.AppendID(dst, id), nil
	}
	subtokens := enc.splitter.Split(token)
	if len(subtokens) == 0 {
		subtokens = []string{token}
	}
	for _, sub := range subtokens {
		if id, ok := enc.session.Lookup(sub); ok {
			dst = layout.AppendID(dst, id)
			continue
		}
		if enc.strict {
			return dst, fmt.Errorf("%w: %q", ErrUnresolved, sub)
		}
		var err error
		if dst, err = enc.escape(dst, sub); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

// escape appends an escape code, the payload for token and the terminator.
func (enc *Encoder) escape(dst []byte, token string) ([]byte, error) {
	token = string(bytes.ReplaceAll([]byte(token), []byte{0}, nil))
	if token == "" {
		return dst, nil
	}
	if id, ok := enc.session.Lookup(token); ok {
		return enc.session.layout.AppendID(dst, id), nil
	}
	coder, payload, err := chooseFallback(token, enc.rawOnly)
	if err != nil {
		return dst, err
	}
	dst = enc.session.layout.AppendEscape(dst, coder.selector)
	dst = append(dst, payload...)
	dst = append(dst, 0)
	enc.session.Register(token)
	enc.escapes++
	return dst, nil
}

// EncodeLines encodes lines of tokens. Every line is closed by a newline
// code, so an empty line encodes as a single newline.
func (enc *Encoder) EncodeLines(lines [][]string) ([]byte, error) {
	out := make([]byte, 0, 1024)
	var err error
	for _, line := range lines {
		for _, token := range line {
			if out, err = enc.EncodeToken(out, token); err != nil {
				return out, err
			}
		}
		out = enc.session.layout.AppendID(out, 0)
	}
	tracer().Debugf("stage 1: %d lines, %d escapes, %d session entries => %d bytes",
		len(lines), enc.escapes, enc.session.Len(), len(out))
	return out, nil
}

// Decoder maps codes back onto tokens, expanding n-gram codes inline.
type Decoder struct {
	session *Session
	ngrams  *NgramTable
}

// NewDecoder creates a decoder registering escaped tokens in session s.
// ngrams may be nil for streams without n-gram codes.
func NewDecoder(s *Session, ngrams *NgramTable) *Decoder {
	return &Decoder{session: s, ngrams: ngrams}
}

// DecodeStream decodes a stage 1 stream into tokens. Line breaks are
// returned as Newline tokens.
func (dec *Decoder) DecodeStream(b []byte) ([]string, error) {
	tokens := make([]string, 0, len(b))
	return dec.decode(tokens, b, false)
}

func (dec *Decoder) decode(tokens []string, b []byte, inNgram bool) ([]string, error) {
	layout := dec.session.layout
	for pos := 0; pos < len(b); {
		code, err := layout.Classify(b[pos:])
		if err != nil {
			return tokens, fmt.Errorf("at offset %d: %w", pos, err)
		}
		switch code.Class {
		case Class1, Class2, Class3Rare:
			w, ok := dec.session.Word(code.Value)
			if !ok {
				return tokens, fmt.Errorf("%w: %d at offset %d", ErrUnknownID, code.Value, pos)
			}
			tokens = append(tokens, w)
			pos += code.Width
		case Class3Session:
			if inNgram {
				return tokens, fmt.Errorf("%w: session code inside n-gram", ErrCorruptNgram)
			}
			w, ok := dec.session.Word(code.Value)
			if !ok {
				return tokens, fmt.Errorf("%w: %d at offset %d", ErrUnknownSession, code.Value, pos)
			}
			tokens = append(tokens, w)
			pos += code.Width
		case EscapeNgram:
			if inNgram {
				return tokens, fmt.Errorf("%w: nested n-gram code %d", ErrCorruptNgram, code.Value)
			}
			span, ok := dec.ngrams.Span(code.Value)
			if !ok {
				return tokens, fmt.Errorf("%w: no table row %d", ErrCorruptNgram, code.Value)
			}
			if tokens, err = dec.decode(tokens, span, true); err != nil {
				return tokens, err
			}
			pos += code.Width
		case EscapeFallback:
			if inNgram {
				return tokens, fmt.Errorf("%w: escape inside n-gram", ErrCorruptNgram)
			}
			var token string
			var n int
			if token, n, err = dec.unescape(code.Value, b[pos+code.Width:]); err != nil {
				return tokens, fmt.Errorf("at offset %d: %w", pos, err)
			}
			dec.session.Register(token)
			tokens = append(tokens, token)
			pos += code.Width + n
		default:
			return tokens, fmt.Errorf("%w: invalid code at offset %d", ErrTruncated, pos)
		}
	}
	return tokens, nil
}

// unescape decodes the zero-terminated payload at the start of b and returns
// the token and the number of bytes consumed, terminator included.
func (dec *Decoder) unescape(selector uint32, b []byte) (string, int, error) {
	if selector >= selectorCount {
		return "", 0, fmt.Errorf("%w: %d", ErrUnknownSelector, selector)
	}
	end := bytes.IndexByte(b, 0)
	if end < 0 {
		return "", 0, ErrUnterminatedEscape
	}
	token, err := fallbackCoders[selector].decode(b[:end])
	return token, end + 1, err
}

// skipEscape returns the number of bytes of an escape payload at the start
// of b, terminator included.
func skipEscape(b []byte) (int, error) {
	end := bytes.IndexByte(b, 0)
	if end < 0 {
		return 0, ErrUnterminatedEscape
	}
	return end + 1, nil
}
