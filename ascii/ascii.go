/*
Package ascii reduces text to printable ASCII before compression.

Input which is not valid UTF-8 is taken to be Windows-1252. Typographic
punctuation is mapped to its ASCII look-alike, accents are stripped from
letters, and whatever is still outside ASCII is dropped. The result never
contains a zero byte.
*/
package ascii

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var replacements = map[rune]string{
	'\u2018': "'", '\u2019': "'", '\u201a': "'", '\u201b': "'", '\u2032': "'",
	'\u201c': `"`, '\u201d': `"`, '\u201e': `"`, '\u201f': `"`, '\u2033': `"`,
	'\u00ab': `"`, '\u00bb': `"`, '\u2039': "'", '\u203a': "'",
	'\u2010': "-", '\u2011': "-", '\u2013': "-", '\u2014': "-", '\u2015': "-", '\u2212': "-",
	'\u2026': "...", '\u2022': "*", '\u00b7': "*",
	'\u00a0': " ", '\u2002': " ", '\u2003': " ", '\u2009': " ", '\u202f': " ",
	'\u00df': "ss", '\u00e6': "ae", '\u00c6': "AE", '\u0153': "oe", '\u0152': "OE",
	'\u00f8': "o", '\u00d8': "O", '\u0142': "l", '\u0141': "L", '\u0111': "d", '\u0110': "D",
	'\u00fe': "th", '\u00de': "Th", '\u00f0': "d",
	'\u20ac': "EUR", '\u00a3': "GBP", '\u00a9': "(c)", '\u00ae': "(r)", '\u2122': "(tm)",
}

// IsUTF8 reports whether b is valid UTF-8.
func IsUTF8(b []byte) bool { return utf8.Valid(b) }

// Transliterate returns b reduced to ASCII.
func Transliterate(b []byte) ([]byte, error) {
	if !utf8.Valid(b) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), b)
		if err != nil {
			return nil, err
		}
		b = decoded
	}
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
		runes.Map(func(r rune) rune {
			if r == '\t' {
				return ' '
			}
			return r
		}),
	)
	folded, _, err := transform.Bytes(t, b)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(folded))
	for _, r := range string(folded) {
		switch {
		case r == 0:
		case r < utf8.RuneSelf:
			out = append(out, byte(r))
		default:
			if s, ok := replacements[r]; ok {
				out = append(out, s...)
			}
		}
	}
	return out, nil
}
