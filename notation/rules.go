package notation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"reflow/model"
)

var (
	boldSpanRe = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(model.BoldOpen) + `(.*?)` + regexp.QuoteMeta(model.BoldClose))
	capWordRe  = re2(`\b(?![KQRBNO]\b)\p{Lu}\p{Ll}{2,}\b`)
)

// SplitMisplacedBold keeps only notation bold when a bold range also swallowed
// prose starting with a capitalized word. Whitespace at bold range edges is
// moved outside of delimiters.
func SplitMisplacedBold(s string) string {
	if !strings.Contains(s, model.BoldOpen) {
		return s
	}
	return boldSpanRe.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[len(model.BoldOpen) : len(m)-len(model.BoldClose)]
		if cw, err := capWordRe.FindStringMatch(inner); err == nil && cw != nil {
			// regexp2 reports positions in runes
			at := runeOffset(inner, cw.Index)
			head, tail := inner[:at], inner[at:]
			if ContainsToken(head) {
				trimmed := strings.TrimRight(head, " \t\n")
				return wrapBold(trimmed) + head[len(trimmed):] + tail
			}
		}
		return wrapBold(inner)
	})
}

func wrapBold(inner string) string {
	core := strings.TrimSpace(inner)
	if core == "" {
		return inner
	}
	start := strings.Index(inner, core)
	return inner[:start] + model.BoldOpen + core + model.BoldClose + inner[start+len(core):]
}

func runeOffset(s string, runes int) int {
	off := 0
	for i := 0; i < runes && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}

var missingDotRe = re2(`(?<![-./:\d])\b([1-9]\d{0,2})(?=[ \t]+(?:[KQRBN][a-h]?[1-8]?x?[a-h][1-8]|[a-h]x?[a-h]?[1-8]\b|O-O))`)

// InsertMissingDot turns "16 Bxd6" into "16. Bxd6".
func InsertMissingDot(s string) string {
	return sub2(missingDotRe, s, "$1.")
}

var (
	ocrNumberRe  = re2(`(?<![\w.|])([\dIl|]{1,3})(?=[ \t]*\.)`)
	manyDotsRe   = regexp.MustCompile(`\b(\d{1,3})[ \t]*\.(?:[ \t]*\.)+`)
	spacedDotRe  = re2(`\b(\d{1,3})[ \t]+\.(?![ \t]*\.)`)
	ocrDigitRepl = strings.NewReplacer("I", "1", "l", "1", "|", "1")
)

// NormalizeMoveNumbers repairs move number clusters: OCR confusions of 1 with
// I, l or |, two or more dots become "...", a detached single dot is attached.
func NormalizeMoveNumbers(s string) string {
	s = sub2Func(ocrNumberRe, s, func(m regexp2.Match) string {
		tok := m.String()
		if strings.ContainsAny(tok, "0123456789") && strings.ContainsAny(tok, "Il|") {
			return ocrDigitRepl.Replace(tok)
		}
		return tok
	})
	s = manyDotsRe.ReplaceAllString(s, "${1}...")
	return sub2(spacedDotRe, s, "$1.")
}

var castlingRe = re2(`(?<![\w-])[0O]-[0O](-[0O])?(?![\w-])`)

// NormalizeCastling maps times glyph to x and every zero/letter mix of
// castling to O-O or O-O-O.
func NormalizeCastling(s string) string {
	s = strings.ReplaceAll(s, "×", "x")
	return sub2Func(castlingRe, s, func(m regexp2.Match) string {
		if len(m.GroupByNumber(1).String()) > 0 {
			return "O-O-O"
		}
		return "O-O"
	})
}

var (
	symbolRepl = strings.NewReplacer(
		"♔", "K", "♚", "K",
		"♕", "Q", "♛", "Q",
		"♖", "R", "♜", "R",
		"♗", "B", "♝", "B",
		"♘", "N", "♞", "N",
		"♙", "", "♟", "",
		"†", "+", "‡", "+", "✝", "+", "✞", "+",
		"±", "+/-", "∓", "-/+",
		"⩲", "+=", "⩱", "=+",
		"½-½", "1/2-1/2",
		"−", "-",
	)
	plusMinusRe = regexp.MustCompile(`\+[ \t]*/[ \t]*[-–]`)
	minusPlusRe = regexp.MustCompile(`[-–][ \t]*/[ \t]*\+`)
	resultDash  = regexp.MustCompile(`\b(1|0)[ \t]*–[ \t]*(0|1)\b`)
)

// NormalizeSymbols maps figurines and typographic evaluation symbols to ASCII.
func NormalizeSymbols(s string) string {
	s = symbolRepl.Replace(s)
	s = plusMinusRe.ReplaceAllString(s, "+/-")
	s = minusPlusRe.ReplaceAllString(s, "-/+")
	return resultDash.ReplaceAllString(s, "$1-$2")
}

var (
	spacedMarksRe = regexp.MustCompile(`([!?])[ \t]+([!?])`)
	spaceBeforeRe = regexp.MustCompile(`[ \t]+([!?.,;:)\]])`)
	spaceAfterRe  = regexp.MustCompile(`([(\[])[ \t]+`)
	sentenceGlue  = re2(`(?<=\p{Ll}{2}[.!?])(?=\p{Lu})`)
)

// NormalizePunctuation glues annotation marks, drops spaces before
// punctuation and inside brackets, separates sentences glued together.
func NormalizePunctuation(s string) string {
	s = spacedMarksRe.ReplaceAllString(s, "$1$2")
	s = spaceBeforeRe.ReplaceAllString(s, "$1")
	s = spaceAfterRe.ReplaceAllString(s, "$1")
	return sub2(sentenceGlue, s, " ")
}

var sanSuffixRe = re2(`\b((?:[KQRBN][a-h]?[1-8]?x?)?[a-h][1-8](?:=[QRBN])?[+#]?(?:[!?]{1,2})?)(?:±|\+/-)?([a-z]{1,3})\b`)

// StripSANSuffix removes lowercase garbage OCR glues to SAN tokens: "Be5ma",
// "e4!ao", "Nf3±ao".
func StripSANSuffix(s string) string {
	return sub2(sanSuffixRe, s, "$1")
}

var (
	spacedNumberRe  = re2(`\b([1-9])[ \t]+(\d{1,2})(?=\.)`)
	spacedSquareRe  = re2(`(?<=(?:\b[KQRBN]x?|\bx|\d\.{1,3}[ \t]?))([a-h])[ \t]+([1-8])\b`)
	spacedPieceRe   = re2(`\b([KQRBN])[ \t]+(x?[a-h][1-8])\b`)
	spacedCaptureRe = re2(`\b([KQRBN][a-h1-8]?|[b-h])(?:[ \t]+x[ \t]*|[ \t]*x[ \t]+)([a-h][1-8])\b`)
	pieceNameRe     = re2i(`\b(hetman|goniec|skoczek|wieża|wieza|król|krol)[ \t]*(x?[a-h][1-8])\b`)
	pieceLetterRe   = re2(`\b(Sk|S|Go|G|Wi|W|He|H|Kr|D)(x?[a-h][1-8])\b`)
	gluedPrepRe     = re2(`\b(?:on|in|na)([a-h][1-8])\b`)
	commaNumberRe   = re2(`\b([1-9]\d{0,2})[ \t]*,[ \t]*(?=` + sanStart + `)`)
	gluedNumberRe   = re2(`(?<=[\p{L},;:!?)])(?<![a-h])(?=[1-9]\d{0,2}\.{1,3}[ \t]?` + sanStart + `)`)

	pieceNames = map[string]string{
		"hetman": "Q", "goniec": "B", "skoczek": "N",
		"wieża": "R", "wieza": "R", "król": "K", "krol": "K",
	}
	pieceLetters = map[string]string{
		"S": "N", "Sk": "N", "G": "B", "Go": "B", "W": "R", "Wi": "R",
		"H": "Q", "He": "Q", "Kr": "K", "D": "Q",
	}
)

// start of a SAN move, used in lookaheads
const sanStart = `(?:[KQRBN][a-h]?[1-8]?x?[a-h][1-8]|[a-h]x?[a-h]?[1-8]\b|O-O)`

// FixOCRArtifacts applies narrow, textually anchored repairs: spaced move
// numbers, comma instead of move dot, move numbers glued to preceding word,
// spaced squares and captures, Polish piece names and letters used instead of
// SAN piece letters, prepositions glued to squares.
func FixOCRArtifacts(s string) string {
	s = sub2(spacedNumberRe, s, "$1$2")
	s = sub2(commaNumberRe, s, "$1. ")
	s = sub2(gluedNumberRe, s, " ")
	s = sub2(spacedSquareRe, s, "$1$2")
	s = sub2(spacedPieceRe, s, "$1$2")
	s = sub2(spacedCaptureRe, s, "$1x$2")
	s = sub2Func(pieceNameRe, s, func(m regexp2.Match) string {
		return pieceNames[strings.ToLower(m.GroupByNumber(1).String())] + m.GroupByNumber(2).String()
	})
	s = sub2Func(pieceLetterRe, s, func(m regexp2.Match) string {
		return pieceLetters[m.GroupByNumber(1).String()] + m.GroupByNumber(2).String()
	})
	return sub2(gluedPrepRe, s, "na $1")
}

var (
	paragraphMark   = "\ue000"
	afterSepWrapRe  = re2(`([,;:])\n(?=\p{Ll})`)
	proseWrapRe     = re2(`(?<=\p{L})\n(?=\p{Ll})`)
	beforeMoveWrap  = re2(`(?<=[\p{Ll},;:])\n(?=\d{1,3}\.)`)
	headingBreakRe  = re2(`(\[\[B\]\][ \t]*\d{1,3}[ \t]*\.{1,3}[^\[\]\n]*\[\[/B\]\])[ \t]*(?=[^\s\[!?.,;:)])`)
	blankLinesRe    = regexp.MustCompile(`\n{3,}`)
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	spacesRe        = regexp.MustCompile(`[ \t]{2,}`)
)

// CollapseSoftWraps joins scan line breaks inside prose, paragraph breaks
// (double newline) are kept.
func CollapseSoftWraps(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n\n", paragraphMark)
	s = sub2(afterSepWrapRe, s, "$1 ")
	s = sub2(proseWrapRe, s, " ")
	s = sub2(beforeMoveWrap, s, " ")
	return strings.ReplaceAll(s, paragraphMark, "\n\n")
}

// BreakAfterHeading starts a new line after bold move heading followed by
// prose, wherever the heading is on the line.
func BreakAfterHeading(s string) string {
	if !strings.Contains(s, model.BoldOpen) {
		return s
	}
	return sub2(headingBreakRe, s, "$1\n")
}

func CollapseBlankLines(s string) string {
	s = trailingSpaceRe.ReplaceAllString(s, "\n")
	return blankLinesRe.ReplaceAllString(s, "\n\n")
}

func CollapseSpaces(s string) string {
	return spacesRe.ReplaceAllString(s, " ")
}
