package notation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

type idiom struct {
	re   *regexp2.Regexp
	repl string
}

// Calques machine translation produces for chess vocabulary. Patterns only
// match Polish words so notation is never touched.
var idioms = []idiom{
	{re2i(`\bpionki\b`), "piony"},
	{re2i(`\bpionków\b`), "pionów"},
	{re2i(`\bpionkami\b`), "pionami"},
	{re2i(`\bpionkom\b`), "pionom"},
	{re2i(`\bpionkach\b`), "pionach"},
	{re2i(`\bzabrać\s+lini[ęe]\b`), "zająć linię"},
	{re2i(`\bzabiera\s+lini[ęe]\b`), "zajmuje linię"},
	{re2i(`\bzabrał\s+lini[ęe]\b`), "zajął linię"},
	{re2i(`\bzabrała\s+lini[ęe]\b`), "zajęła linię"},
	{re2i(`\bzabrać\s+pole\b`), "zająć pole"},
	{re2i(`\bzabiera\s+pole\b`), "zajmuje pole"},
	{re2i(`\bzagraża\s+matowi\b`), "grozi matem"},
	{re2i(`\bzagrażając\s+matowi\b`), "grożąc matem"},
	{re2i(`\bzagrażał\s+matowi\b`), "groził matem"},
	{re2i(`\bgrozi\s+z\s+matem\b`), "grozi matem"},
	{re2i(`\bzagrożenie\s+mata\b`), "groźba mata"},
	{re2i(`\bpo\s+grze\b`), "po partii"},
	{re2i(`\bkrólowa\b`), "hetman"},
	{re2i(`\bkrólową\b`), "hetmana"},
	{re2i(`\bkrólowej\b`), "hetmana"},
	{re2i(`\bkrólowe\b`), "hetmany"},
	{re2i(`\bdama\b`), "hetman"},
	{re2i(`\bdamę\b`), "hetmana"},
	{re2i(`\bdamy\b(?!\s+rad)`), "hetmana"},
	{re2i(`\bwykonać\s+wymianę\b`), "wymienić"},
	{re2i(`\bwykonuje\s+wymianę\b`), "wymienia"},
	{re2i(`\bwykonał\s+wymianę\b`), "wymienił"},
	{re2i(`\bz ruchu tekstowego\b`), "z ruchu z partii"},
	{re2i(`\bz(?=\s+\d{1,3}\.\.\.)`), "po"},
	{re2i(`\bby\s+tego\s+nie\s+pozwoli[łl]y?\b`), "by na to nie pozwoliły"},
	{re2i(`\bnie\s+pozwoli[łl]yby\s+tego\b`), "nie pozwoliłyby na to"},
}

var (
	undervaluedRe = re2i(`\b(nie)?doceni[łl]\s+to\s+poświęcenie\b`)
	squarePieceRe = re2(`\b([a-h][1-8])[ \t]*[-–][ \t]*(\p{L}+)`)
	pieceWords    = []string{"pion", "wież", "goniec", "gońc", "skoczek", "skoczk", "hetman", "król", "figur"}
)

// "e4 - pion" is how translation renders "pawn on e4".
func fixSquarePiece(s string) string {
	return sub2Func(squarePieceRe, s, func(m regexp2.Match) string {
		word := m.GroupByNumber(2).String()
		lower := strings.ToLower(word)
		for _, p := range pieceWords {
			if strings.HasPrefix(lower, p) {
				return word + " na " + m.GroupByNumber(1).String()
			}
		}
		return m.String()
	})
}

// FixIdioms replaces Polish calques with chess idioms keeping capitalization
// of the first letter.
func FixIdioms(s string) string {
	s = fixSquarePiece(s)
	for _, id := range idioms {
		s = sub2Func(id.re, s, func(m regexp2.Match) string {
			return matchCase(m.String(), id.repl)
		})
	}
	return sub2Func(undervaluedRe, s, func(m regexp2.Match) string {
		repl := "docenił tego poświęcenia"
		if len(m.GroupByNumber(1).String()) > 0 {
			repl = "nie" + repl
		}
		return matchCase(m.String(), repl)
	})
}

func matchCase(orig, repl string) string {
	first, _ := utf8.DecodeRuneInString(orig)
	if !unicode.IsUpper(first) {
		return repl
	}
	r, size := utf8.DecodeRuneInString(repl)
	return string(unicode.ToUpper(r)) + repl[size:]
}
