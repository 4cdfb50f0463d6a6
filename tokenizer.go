package textpress

import (
	"regexp"
	"strings"
)

// Tokenizer splits ASCII text into lines of lowercase tokens.
// Tokens never contain white space.
type Tokenizer interface {
	Tokenize(text string) [][]string
}

// LineTokenizer is the default tokenizer for English text. It keeps URLs,
// e-mail addresses, contractions and hyphenated words in one piece and
// splits off punctuation.
type LineTokenizer struct{}

var _ Tokenizer = LineTokenizer{}

var tokenPattern = regexp.MustCompile(
	`(?:https?|ftp)://\S+|www\.\S+` + // URLs
		`|[a-z0-9._%+\-]+@[a-z0-9\-]+(?:\.[a-z0-9\-]+)+` + // e-mail
		`|[a-z0-9]+(?:['\-][a-z0-9]+)*'?` + // words, contractions
		`|\.\.\.|\S`)

// Tokenize returns the tokens of text line by line. A trailing line break
// does not start another line.
func (LineTokenizer) Tokenize(text string) [][]string {
	text = strings.ToLower(strings.ReplaceAll(text, "\r\n", "\n"))
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	out := make([][]string, len(lines))
	for i, line := range lines {
		tokens := tokenPattern.FindAllString(line, -1)
		out[i] = make([]string, 0, len(tokens))
		for _, t := range tokens {
			if isURL(t) {
				out[i] = appendURL(out[i], t)
			} else {
				out[i] = append(out[i], t)
			}
		}
	}
	return out
}

func isURL(t string) bool {
	return strings.HasPrefix(t, "www.") || strings.Contains(t, "://")
}

// appendURL appends url, moving trailing sentence punctuation into tokens
// of its own.
func appendURL(tokens []string, url string) []string {
	end := len(url)
	for end > 0 && strings.IndexByte(".,;:!?)]\"'", url[end-1]) >= 0 {
		end--
	}
	tokens = append(tokens, url[:end])
	for i := end; i < len(url); i++ {
		tokens = append(tokens, url[i:i+1])
	}
	return tokens
}
