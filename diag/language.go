package diag

import (
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"
)

// Issue is a suspicious fragment of translated prose.
type Issue struct {
	Fragment   string
	Problem    string
	Suggestion string
	Position   int // in runes
}

type check struct {
	re         *regexp2.Regexp
	problem    string
	suggestion string
}

func newCheck(pattern string, opts regexp2.RegexOptions, problem, suggestion string) check {
	re := regexp2.MustCompile(pattern, opts)
	re.MatchTimeout = time.Second
	return check{re: re, problem: problem, suggestion: suggestion}
}

var languageChecks = []check{
	newCheck(`\bzabr[aą][ćłl]\s+lini[ęe]`, regexp2.IgnoreCase, "literal 'take the line'", "zająć linię"),
	newCheck(`\bzagraża\s+matowi`, regexp2.IgnoreCase, "literal 'threatens mate'", "grozi matem"),
	newCheck(`\bniedoceni[łl]\s+to\s+poświęcenie`, regexp2.IgnoreCase, "accusative instead of genitive", "niedocenił tego poświęcenia"),
	newCheck(`\bpo\s+grze\b`, regexp2.IgnoreCase, "'gra' instead of 'partia'", "po partii"),
	newCheck(`\bkrólowa\b`, regexp2.IgnoreCase, "'królowa' instead of 'hetman'", "hetman"),
	newCheck(`\bdama\b`, regexp2.IgnoreCase, "'dama' instead of 'hetman'", "hetman"),
	newCheck(`\bkoń\s+(?:na\s+)?[a-h][1-8]`, regexp2.IgnoreCase, "informal 'koń'", "skoczek"),
	newCheck(`\bpionki\b`, regexp2.IgnoreCase, "informal 'pionki'", "piony"),
	newCheck(`\bzagrano\s+\d+\.`, regexp2.IgnoreCase, "redundant 'zagrano'", "move number alone"),
	newCheck(`\bjest\s+lepsze?\s+dla\s+(?:białych|czarnych)`, regexp2.IgnoreCase, "literal 'is better for'", "białe/czarne stoją lepiej"),
	newCheck(`\bgrozi\s+z\s+matem`, regexp2.IgnoreCase, "redundant 'z'", "grozi matem"),
	newCheck(`[ ]{2,}`, regexp2.None, "double space", ""),
	newCheck(`[,!?](?=\p{L})`, regexp2.None, "missing space after punctuation", ""),
	newCheck(`(?<=\p{Ll}{2})\.(?=\p{Lu})`, regexp2.None, "missing space after period", ""),
}

// CheckLanguage looks for known calques and typographic slips in Polish prose.
func CheckLanguage(text string) []Issue {
	var issues []Issue
	for _, c := range languageChecks {
		m, err := c.re.FindStringMatch(text)
		for err == nil && m != nil {
			issues = append(issues, Issue{
				Fragment:   m.String(),
				Problem:    c.problem,
				Suggestion: c.suggestion,
				Position:   m.Index,
			})
			m, err = c.re.FindNextMatch(m)
		}
	}
	return issues
}

// CheckLanguage records language issues found in text.
func (r Recorder) CheckLanguage(text string) int {
	if r.c == nil {
		return 0
	}
	issues := CheckLanguage(text)
	for _, is := range issues {
		fields := []zap.Field{zap.String("fragment", is.Fragment), zap.Int("position", is.Position)}
		if is.Suggestion != "" {
			fields = append(fields, zap.String("suggestion", is.Suggestion))
		}
		r.Record(KindLanguage, is.Problem, fields...)
	}
	return len(issues)
}
