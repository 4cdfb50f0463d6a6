package ngramfile

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// Source lists count phrases the way an English tokenizer splits them, with
// contractions torn apart ("can 't"). These are the pairs re-joined by
// NormalizeSource.
var contractions = [][2]string{
	{"ain", "'t"}, {"aren", "'t"}, {"can", "'t"}, {"couldn", "'t"}, {"didn", "'t"},
	{"doesn", "'t"}, {"don", "'t"}, {"hadn", "'t"}, {"hasn", "'t"}, {"haven", "'t"},
	{"isn", "'t"}, {"mightn", "'t"}, {"mustn", "'t"}, {"needn", "'t"}, {"shan", "'t"},
	{"shouldn", "'t"}, {"wasn", "'t"}, {"weren", "'t"}, {"won", "'t"}, {"wouldn", "'t"},
	{"he", "'d"}, {"he", "'ll"}, {"he", "'s"},
	{"how", "'d"}, {"how", "'ll"}, {"how", "'s"},
	{"i", "'d"}, {"i", "'ll"}, {"i", "'m"}, {"i", "'ve"},
	{"it", "'d"}, {"it", "'ll"}, {"it", "'s"},
	{"let", "'s"}, {"ma", "'am"}, {"might", "'ve"}, {"must", "'ve"}, {"o", "'clock"},
	{"she", "'d"}, {"she", "'ll"}, {"she", "'s"}, {"should", "'ve"},
	{"somebody", "'s"}, {"someone", "'s"}, {"something", "'s"},
	{"that", "'d"}, {"that", "'ll"}, {"that", "'s"},
	{"there", "'d"}, {"there", "'ll"}, {"there", "'s"},
	{"they", "'d"}, {"they", "'ll"}, {"they", "'re"}, {"they", "'ve"},
	{"we", "'d"}, {"we", "'ll"}, {"we", "'re"}, {"we", "'ve"},
	{"what", "'d"}, {"what", "'ll"}, {"what", "'re"}, {"what", "'s"},
	{"when", "'d"}, {"when", "'ll"}, {"when", "'s"},
	{"where", "'d"}, {"where", "'ll"}, {"where", "'s"},
	{"who", "'d"}, {"who", "'ll"}, {"who", "'re"}, {"who", "'s"}, {"who", "'ve"},
	{"why", "'d"}, {"why", "'ll"}, {"why", "'s"},
	{"would", "'ve"},
	{"you", "'d"}, {"you", "'ll"}, {"you", "'re"}, {"you", "'ve"},
}

var (
	countSuffix      = regexp.MustCompile(`,\d+$`)
	contractionRules = compileContractions()
)

type contractionRule struct {
	pattern *regexp.Regexp
	joined  string
}

func compileContractions() []contractionRule {
	rules := make([]contractionRule, len(contractions))
	for i, c := range contractions {
		rules[i] = contractionRule{
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(c[0]) + ` ` + regexp.QuoteMeta(c[1]) + `\b`),
			joined:  c[0] + c[1],
		}
	}
	return rules
}

// NormalizeLine prepares one line of an n-gram source list. It returns false
// for lines to skip.
//
//	"Can 't stop the",1234   =>   can't stop the
func NormalizeLine(line string) (string, bool) {
	line = strings.ToLower(strings.TrimRight(line, "\r\n"))
	line = countSuffix.ReplaceAllString(line, "")
	if strings.Contains(line, `""`) {
		return "", false
	}
	line = strings.ReplaceAll(line, `"`, "")
	if strings.Contains(line, "'") {
		for _, rule := range contractionRules {
			line = rule.pattern.ReplaceAllLiteralString(line, rule.joined)
		}
	}
	line = strings.TrimSpace(line)
	return line, line != ""
}

// NormalizeSource copies an n-gram source list from r to w, one phrase per
// line, normalized by NormalizeLine. It returns the number of lines written.
func NormalizeSource(r io.Reader, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)
	n := 0
	for scanner.Scan() {
		line, ok := NormalizeLine(scanner.Text())
		if !ok {
			continue
		}
		if _, err := out.WriteString(line + "\n"); err != nil {
			return n, err
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, err
	}
	return n, out.Flush()
}
