package textpress

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Detokenizer joins decoded tokens into text.
type Detokenizer interface {
	Detokenize(tokens []string) string
}

// EnglishDetokenizer restores spacing and capitalization of English text:
//
//   - every token is followed by a space, except where the next token attaches
//   - ".!?,;:", closing brackets and contraction suffixes attach to the left
//   - "@" and "-" join their neighbours, "//" attaches to a preceding "scheme:"
//   - sentences, lines and the pronoun "i" are capitalized
//
// Inner line breaks swallow the space before them. The line break closing
// the last line is dropped.
type EnglishDetokenizer struct{}

var _ Detokenizer = EnglishDetokenizer{}

func attachesLeft(tok string) bool {
	switch tok {
	case ".", "!", "?", ",", ";", ":", "...", ")", "]", "}", "%", "@", "-":
		return true
	}
	if strings.HasPrefix(tok, "//") {
		return true
	}
	for _, suffix := range contractionSuffixes {
		if tok == suffix {
			return true
		}
	}
	return false
}

func attachesRight(tok string) bool {
	switch tok {
	case "(", "[", "{", "@", "-", "$", "#":
		return true
	}
	return false
}

func endsSentence(tok string) bool {
	return tok == "." || tok == "!" || tok == "?"
}

// Detokenize joins tokens into text.
func (EnglishDetokenizer) Detokenize(tokens []string) string {
	upper := cases.Upper(language.English)
	out := make([]byte, 0, len(tokens)*6)
	capNext := true
	for i, tok := range tokens {
		if tok == "" {
			continue
		}
		if tok == Newline {
			if i < len(tokens)-1 {
				if len(out) > 0 && out[len(out)-1] == ' ' {
					out = out[:len(out)-1]
				}
				out = append(out, Newline...)
			}
			capNext = true
			continue
		}
		if attachesLeft(tok) && len(out) > 0 && out[len(out)-1] == ' ' {
			out = out[:len(out)-1]
		}
		if isAlnum(tok[0]) {
			if capNext || tok == "i" {
				tok = upper.String(tok[:1]) + tok[1:]
			}
			capNext = false
		}
		out = append(out, tok...)
		if !attachesRight(tok) {
			out = append(out, ' ')
		}
		if endsSentence(tok) {
			capNext = true
		}
	}
	return string(out)
}
