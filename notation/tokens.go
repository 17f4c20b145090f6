// Package notation recognizes and repairs chess move notation embedded in
// prose.
package notation

import (
	"regexp"
	"strings"
)

const sanCore = `(?:O-O(?:-O)?|0-0(?:-0)?|[KQRBN][a-h]?[1-8]?x?[a-h][1-8]|[a-h]x[a-h][1-8]|[a-h][1-8])` +
	`(?:=[QRBN])?(?:[+#t])?(?:[!?]{1,2})?N?`

var (
	moveStartRe   = regexp.MustCompile(`^\s*\d{1,3}\s*(?:\.\.\.|\.)`)
	resultRe      = regexp.MustCompile(`^(?:1-0|0-1|1/2-1/2|½-½|\*)$`)
	evalRe        = regexp.MustCompile(`^(?:\+/-|-/\+|±|∓|\+=|=\+|=|∞)$`)
	sanRe         = regexp.MustCompile(`(?i)^` + sanCore + `$`)
	sanEvalRe     = regexp.MustCompile(`(?i)^` + sanCore + `(?:\+/-|-/\+|±|∓)$`)
	moveSanRe     = regexp.MustCompile(`(?i)^\d{1,3}(?:\.\.\.|\.)` + sanCore + `$`)
	numberRe      = regexp.MustCompile(`^\d{1,3}$`)
	numberDotsRe  = regexp.MustCompile(`^\d{1,3}\.{1,3}$`)
	dotsRe        = regexp.MustCompile(`^\.{1,3}$`)
	dashesRe      = regexp.MustCompile(`^[-–—]+$`)
	annotationsRe = regexp.MustCompile(`^[!?]+$`)
	wordRe        = regexp.MustCompile(`\S+`)
)

// IsMoveStart reports whether text opens with a move number ("12." or "12...").
func IsMoveStart(text string) bool {
	return moveStartRe.MatchString(text)
}

// IsToken reports whether whitespace delimited token is notation shaped:
// move numbers, SAN moves, results, evaluation symbols and annotations.
// Surrounding brackets and trailing separators are ignored.
func IsToken(tok string) bool {
	t := strings.Trim(tok, "()[]{}")
	t = strings.TrimRight(t, ",;:")
	if t == "" {
		return false
	}
	switch t {
	case "N", "+", "#", "t":
		return true
	}
	for _, re := range []*regexp.Regexp{
		dotsRe, dashesRe, annotationsRe, resultRe, evalRe,
		numberRe, numberDotsRe, moveSanRe, sanRe, sanEvalRe,
	} {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// PrefixEnd returns byte offset right after the last notation token of the
// leading run of notation tokens, 0 when text does not start with notation.
// Line breaks between tokens are tolerated as long as tokens stay notation
// shaped.
func PrefixEnd(text string) int {
	end := 0
	for _, loc := range wordRe.FindAllStringIndex(text, -1) {
		if !IsToken(text[loc[0]:loc[1]]) {
			break
		}
		end = loc[1]
	}
	return end
}

// LineIsNotation reports whether every token on the line is notation shaped.
func LineIsNotation(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !IsToken(f) {
			return false
		}
	}
	return true
}

// ContainsToken reports whether any token of the text is a move (not just a
// bare number or punctuation).
func ContainsToken(text string) bool {
	for _, f := range strings.Fields(text) {
		t := strings.Trim(f, "()[]{},;:")
		if sanRe.MatchString(t) || moveSanRe.MatchString(t) || numberDotsRe.MatchString(t) {
			return true
		}
	}
	return false
}
