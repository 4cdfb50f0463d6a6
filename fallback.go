package textpress

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/icza/bitio"
	"github.com/npillmayer/textpress/internal/huff"
)

// Escape payloads are terminated by a zero byte. Raw payloads drop zero bytes,
// Huffman payloads are packed into septets with the high bit set, so neither
// can contain the terminator.

const endOfToken int32 = 256

// Letter frequencies of English text, in hundredths of a percent.
var lowerWeights = map[byte]int{
	'e': 5688, 'a': 4331, 'r': 3864, 'i': 3845, 'o': 3651, 't': 3543, 'n': 3392,
	's': 2923, 'l': 2798, 'c': 2313, 'u': 1851, 'd': 1725, 'p': 1614, 'm': 1536,
	'h': 1531, 'g': 1259, 'b': 1056, 'f': 924, 'y': 906, 'w': 657, 'k': 561,
	'v': 513, 'x': 148, 'z': 139, 'j': 100, 'q': 100,
}

// Frequencies of printable ASCII in mixed-case English prose, in units of
// 0.0001 percent.
var printableWeights = map[byte]int{
	'!': 72, '"': 2442, '#': 179, '$': 561, '%': 160, '&': 226, '\'': 2447,
	'(': 2178, ')': 2233, '*': 628, '+': 215, ',': 7384, '-': 13734, '.': 15124,
	'/': 1549, '0': 5516, '1': 4594, '2': 3322, '3': 1847, '4': 1348, '5': 1663,
	'6': 1153, '7': 1030, '8': 1054, '9': 1024, ':': 4354, ';': 1214, '<': 1225,
	'=': 227, '>': 1242, '?': 1474, '@': 73,
	'A': 3132, 'B': 2163, 'C': 3906, 'D': 3151, 'E': 2673, 'F': 1416, 'G': 1876,
	'H': 2321, 'I': 3211, 'J': 1726, 'K': 687, 'L': 1884, 'M': 3529, 'N': 2085,
	'O': 1842, 'P': 2614, 'Q': 316, 'R': 2519, 'S': 4003, 'T': 3322, 'U': 814,
	'V': 892, 'W': 2527, 'X': 343, 'Y': 304, 'Z': 76,
	'[': 86, '\\': 16, ']': 88, '^': 3, '_': 1159, '`': 9,
	'a': 51880, 'b': 10195, 'c': 21129, 'd': 25071, 'e': 85771, 'f': 13725,
	'g': 15597, 'h': 27444, 'i': 49019, 'j': 867, 'k': 6753, 'l': 31750,
	'm': 16437, 'n': 49701, 'o': 57701, 'p': 15482, 'q': 747, 'r': 42586,
	's': 43686, 't': 63700, 'u': 20999, 'v': 8462, 'w': 13034, 'x': 1950,
	'y': 11330, 'z': 596,
	'{': 26, '|': 7, '}': 26, '~': 3,
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isAlpha(c byte) bool { return isLower(c) || c >= 'A' && c <= 'Z' }
func isAlnum(c byte) bool { return isAlpha(c) || c >= '0' && c <= '9' }
func isGraph(c byte) bool { return c > ' ' && c < 0x7F }

// fallbackCoder encodes escape payloads of one character class.
type fallbackCoder struct {
	selector int
	member   func(byte) bool
	code     *huff.Code // nil for raw
}

// fallbackCoders are indexed by selector and shared read-only.
var fallbackCoders = buildFallbackCoders()

func buildFallbackCoders() []*fallbackCoder {
	coders := make([]*fallbackCoder, selectorCount)
	coders[SelectRaw] = &fallbackCoder{selector: SelectRaw, member: func(c byte) bool { return c != 0 }}
	coders[SelectLower] = newHuffmanCoder(SelectLower, isLower, lowerWeights)
	coders[SelectUpperLower] = newHuffmanCoder(SelectUpperLower, isAlpha, printableWeights)
	coders[SelectAlphanumeric] = newHuffmanCoder(SelectAlphanumeric, isAlnum, printableWeights)
	coders[SelectPrintable] = newHuffmanCoder(SelectPrintable, isGraph, printableWeights)
	return coders
}

func newHuffmanCoder(selector int, member func(byte) bool, weights map[byte]int) *fallbackCoder {
	chars := make([]int, 0, len(weights))
	for c := range weights {
		if member(c) {
			chars = append(chars, int(c))
		}
	}
	sort.Ints(chars)
	symbols := make([]int32, 0, len(chars)+1)
	counts := make([]int, 0, len(chars)+1)
	total := 0
	for _, c := range chars {
		symbols = append(symbols, int32(c))
		counts = append(counts, weights[byte(c)])
		total += weights[byte(c)]
	}
	// unknown tokens average about eight characters
	symbols = append(symbols, endOfToken)
	counts = append(counts, total/8)
	return &fallbackCoder{
		selector: selector,
		member:   member,
		code:     huff.New(symbols, counts),
	}
}

// accepts reports whether every character of token belongs to the class.
func (fc *fallbackCoder) accepts(token string) bool {
	for i := 0; i < len(token); i++ {
		if !fc.member(token[i]) {
			return false
		}
	}
	return true
}

// encode appends the payload for token, without terminator.
func (fc *fallbackCoder) encode(dst []byte, token string) ([]byte, error) {
	if fc.code == nil {
		for i := 0; i < len(token); i++ {
			if token[i] != 0 {
				dst = append(dst, token[i])
			}
		}
		return dst, nil
	}
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for i := 0; i < len(token); i++ {
		if err := fc.code.Write(w, int32(token[i])); err != nil {
			return dst, err
		}
	}
	if err := fc.code.Write(w, endOfToken); err != nil {
		return dst, err
	}
	if err := w.Close(); err != nil {
		return dst, err
	}
	return packSeptets(dst, buf.Bytes()), nil
}

// decode decodes a payload, without terminator.
func (fc *fallbackCoder) decode(payload []byte) (string, error) {
	if fc.code == nil {
		return string(payload), nil
	}
	r := bitio.NewReader(bytes.NewReader(unpackSeptets(payload)))
	var out []byte
	for {
		sym, err := fc.code.Read(r)
		if err != nil {
			return "", fmt.Errorf("%w: Huffman payload without end mark", ErrUnterminatedEscape)
		}
		if sym == endOfToken {
			return string(out), nil
		}
		out = append(out, byte(sym))
	}
}

// packSeptets spreads the bits of src over bytes carrying 7 bits each, high
// bit set. Trailing bits of the last septet are zero.
func packSeptets(dst, src []byte) []byte {
	var acc uint32
	n := 0
	for _, b := range src {
		acc = acc<<8 | uint32(b)
		n += 8
		for n >= 7 {
			n -= 7
			dst = append(dst, 0x80|byte(acc>>n)&0x7F)
		}
	}
	if n > 0 {
		dst = append(dst, 0x80|byte(acc<<(7-n))&0x7F)
	}
	return dst
}

// unpackSeptets is the inverse of packSeptets. Trailing bits which do not
// fill a byte are dropped.
func unpackSeptets(src []byte) []byte {
	out := make([]byte, 0, len(src)*7/8+1)
	var acc uint32
	n := 0
	for _, b := range src {
		acc = acc<<7 | uint32(b&0x7F)
		n += 7
		if n >= 8 {
			n -= 8
			out = append(out, byte(acc>>n))
		}
	}
	return out
}

// chooseFallback selects the escape coder for token and returns its payload.
// Huffman classes are used only when their payload is shorter than raw.
func chooseFallback(token string, rawOnly bool) (*fallbackCoder, []byte, error) {
	raw := fallbackCoders[SelectRaw]
	if rawOnly {
		p, err := raw.encode(nil, token)
		return raw, p, err
	}
	var coder *fallbackCoder
	for _, sel := range []int{SelectLower, SelectUpperLower, SelectAlphanumeric, SelectPrintable} {
		if fallbackCoders[sel].accepts(token) {
			coder = fallbackCoders[sel]
			break
		}
	}
	rawPayload, err := raw.encode(nil, token)
	if err != nil || coder == nil {
		return raw, rawPayload, err
	}
	packed, err := coder.encode(nil, token)
	if err != nil {
		return nil, nil, err
	}
	if len(packed) < len(rawPayload) {
		return coder, packed, nil
	}
	return raw, rawPayload, nil
}
