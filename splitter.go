package textpress

import "strings"

// Splitter re-tokenizes a token that is missing from the dictionaries.
type Splitter interface {
	Split(token string) []string
}

// contractionSuffixes split off a word, longest first.
var contractionSuffixes = []string{"n't", "'clock", "'ll", "'re", "'ve", "'am", "'s", "'d", "'m", "'"}

// SubtokenSplitter is the default secondary splitter. It separates adjoined
// punctuation, possessive and contraction suffixes, URL schemes and the
// parts of e-mail addresses.
//
// A SubtokenSplitter without a dictionary splits eagerly; with one, it stops
// at fragments the dictionary knows.
type SubtokenSplitter struct {
	Dict *Dictionary
}

var _ Splitter = SubtokenSplitter{}

// Split returns the sub-tokens of token. A token which cannot be split is
// returned as the only element.
func (sp SubtokenSplitter) Split(token string) []string {
	if token == "" {
		return nil
	}
	var out []string
	lead, core, trail := splitPunctuation(token)
	out = append(out, lead...)
	out = append(out, sp.splitCore(core)...)
	return append(out, trail...)
}

func (sp SubtokenSplitter) known(s string) bool {
	_, ok := sp.Dict.ID(s)
	return ok
}

func (sp SubtokenSplitter) splitCore(core string) []string {
	if core == "" {
		return nil
	}
	if sp.known(core) {
		return []string{core}
	}
	if i := strings.Index(core, "://"); i > 0 {
		// "http://x.org" => "http", ":", "//x.org"
		return []string{core[:i], ":", core[i+1:]}
	}
	if i := strings.IndexByte(core, '@'); i > 0 && i < len(core)-1 {
		return []string{core[:i], "@", core[i+1:]}
	}
	for _, suffix := range contractionSuffixes {
		if len(core) > len(suffix) && strings.HasSuffix(core, suffix) {
			stem := core[:len(core)-len(suffix)]
			if suffix == "'" && !strings.HasSuffix(stem, "s") {
				continue // only plural possessives end in a bare apostrophe
			}
			return []string{stem, suffix}
		}
	}
	if i := strings.IndexByte(core, '-'); i > 0 && i < len(core)-1 {
		parts := make([]string, 0, 3)
		for j, part := range strings.Split(core, "-") {
			if j > 0 {
				parts = append(parts, "-")
			}
			if part != "" {
				parts = append(parts, part)
			}
		}
		return parts
	}
	return []string{core}
}

// splitPunctuation separates leading and trailing punctuation characters,
// one sub-token per character. An ellipsis stays in one piece.
func splitPunctuation(token string) (lead []string, core string, trail []string) {
	start, end := 0, len(token)
	for start < end && isPunct(token[start]) {
		lead = append(lead, token[start:start+1])
		start++
	}
	for end > start && isPunct(token[end-1]) {
		if end-start >= 3 && strings.HasSuffix(token[start:end], "...") {
			trail = append([]string{"..."}, trail...)
			end -= 3
			continue
		}
		trail = append([]string{token[end-1 : end]}, trail...)
		end--
	}
	return lead, token[start:end], trail
}

func isPunct(c byte) bool {
	return isGraph(c) && !isAlnum(c) && c != '\'' && c != '@' && c != '/' && c != '#'
}
