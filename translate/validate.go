package translate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"reflow/model"
)

var (
	errEmpty   = errors.New("empty translation")
	errRefusal = errors.New("translation looks like a refusal")
	errGrowth  = errors.New("translation grew too much")
)

// minGrowthBase keeps very short chunks from being rejected for any
// reasonable translation.
const minGrowthBase = 16

var (
	refusalRe  = regexp.MustCompile(`(?i)^\s*(?:i'?m sorry|i am sorry|sorry, |i cannot|i can'?t|i'?m unable|i am unable|as an ai|przepraszam|nie mogę)`)
	tryAgainRe = regexp.MustCompile(`(?i)try again in ([0-9]+(?:\.[0-9]+)?)\s*(ms|s)\b`)
	zagranoRe  = regexp.MustCompile(`(?i)\bzagrano\s+(\d{1,3}\s*\.)`)
	lineHeadRe = regexp.MustCompile(`^(\s*(?:\[\[/?B\]\]\s*)*)(\d{1,3}\s*(?:\.\.\.|\.))`)
	headMarkRe = regexp.MustCompile(`^(\s*(?:\[\[/?B\]\]\s*)*)`)
	anyNumRe   = regexp.MustCompile(`\d{1,3}\s*\.`)

	englishHintRe = regexp.MustCompile(`(?i)\b(?:the|and|with|for|this|that|was|were|would|should|could|` +
		`black|white|move|correct|analysis|leading|clear|advantage|cannot|game|position|next|take|follows)\b`)
	polishHintRe = regexp.MustCompile(`(?i)[ąćęłńóśźż]|\b(?:i|oraz|że|się|jest|był|była|białe|czarne|ruch|przewag\w*|pozycj\w*)\b`)
)

// minProseLength is the shortest text language of which is guessed.
const minProseLength = 18

// looksEnglish reports whether translated text still reads as English prose:
// a few English function words and nothing Polish.
func looksEnglish(text string) bool {
	plain := strings.TrimSpace(strings.NewReplacer(model.BoldOpen, "", model.BoldClose, "").Replace(text))
	if utf8.RuneCountInString(plain) < minProseLength {
		return false
	}
	return len(englishHintRe.FindAllStringIndex(plain, -1)) >= 2 && !polishHintRe.MatchString(plain)
}

// validate rejects responses which cannot be a translation of src.
func validate(src, out string, growthCap float64) error {
	if strings.TrimSpace(strings.NewReplacer(model.BoldOpen, "", model.BoldClose, "").Replace(out)) == "" {
		return errEmpty
	}
	if refusalRe.MatchString(out) && !refusalRe.MatchString(src) {
		return errRefusal
	}
	n, m := utf8.RuneCountInString(src), utf8.RuneCountInString(out)
	if limit := growthCap * float64(max(n, minGrowthBase)); float64(m) > limit {
		return fmt.Errorf("%w: %d -> %d characters", errGrowth, n, m)
	}
	return nil
}

// serverDelay extracts delay requested by rate limiting server, "try again
// in 350ms" or "try again in 2s".
func serverDelay(err error) (time.Duration, bool) {
	m := tryAgainRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	var value float64
	if _, err := fmt.Sscanf(m[1], "%g", &value); err != nil {
		return 0, false
	}
	unit := time.Second
	if strings.EqualFold(m[2], "ms") {
		unit = time.Millisecond
	}
	return max(time.Duration(value*float64(unit)), 100*time.Millisecond), true
}

// backoff returns exponential delay for attempt (1 based) with up to 25%
// jitter, jitter is in [0, 1).
func backoff(attempt int, base, limit time.Duration, jitter float64) time.Duration {
	d := base
	for i := 1; i < attempt && d < limit; i++ {
		d *= 2
	}
	d = min(d, limit)
	return d + time.Duration(float64(d)*0.25*jitter)
}

// postprocess fixes what translators routinely break.
func postprocess(src, out string) string {
	out = SyncMoveNumbers(src, out)
	out = StripZagrano(out)
	return norm.NFC.String(out)
}

// StripZagrano removes "zagrano" ("was played") translators like to insert
// before move numbers.
func StripZagrano(s string) string {
	return zagranoRe.ReplaceAllString(s, "$1")
}

// SyncMoveNumbers puts back move numbers opening source lines when the
// matching translated line lost them. Lines are matched by position, nothing
// is done when translation has different number of lines.
func SyncMoveNumbers(src, out string) string {
	srcLines := strings.Split(src, "\n")
	outLines := strings.Split(out, "\n")
	if len(srcLines) != len(outLines) {
		return out
	}
	changed := false
	for i, line := range srcLines {
		m := lineHeadRe.FindStringSubmatch(line)
		if m == nil || anyNumRe.MatchString(outLines[i]) || strings.TrimSpace(outLines[i]) == "" {
			continue
		}
		head := headMarkRe.FindString(outLines[i])
		outLines[i] = head + m[2] + " " + strings.TrimLeft(outLines[i][len(head):], " \t")
		changed = true
	}
	if !changed {
		return out
	}
	return strings.Join(outLines, "\n")
}
