package style

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"reflow/config"
	"reflow/content/text"
	"reflow/diag"
	"reflow/model"
	"reflow/notation"
)

var (
	// novelty sign left outside of bold move
	noveltyRe    = regexp.MustCompile(`\[\[/B\]\]([ \t]+)N(\s|$)`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
	// group 1 is what becomes bold
	moveRe          = regexp.MustCompile(`\b(\d{1,3}\s*(?:\.\.\.|\.)\s*[A-Za-z0-9][^\s,;:]*)`)
	headingRe       = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])((?:diagram|rysunek|figure|fig\.?|game|partia|chapter|rozdzia[łl]|exercise|ćwiczenie)(?:[^\p{L}\p{N}][^\n]*)?)(?:\n|$)`)
	sentenceEndRe   = regexp.MustCompile(`[.!?]+\s+`)
	moveNumberTail  = regexp.MustCompile(`(?:^|[\s(])\d{1,3}\.{1,3}$`)
	firstDelimiters = regexp.MustCompile(`[.!?:;]\s|\n`)
)

// Result of reconciliation.
type Result struct {
	Marked   string
	Strategy Strategy
}

// Engine decides whether markers returned by translator can be trusted and
// rebuilds them when they cannot.
type Engine struct {
	cfg       config.ReconcileConfig
	splitter  *text.Splitter
	projector Projector
}

// NewEngine returns reconciliation engine. Splitter may be nil, simple
// punctuation based splitting is used then.
func NewEngine(cfg *config.ReconcileConfig, splitter *text.Splitter) *Engine {
	return &Engine{
		cfg:       *cfg,
		splitter:  splitter,
		projector: Projector{Window: cfg.SnapWindow},
	}
}

// Reconcile returns marked translated text with bold layout matching runs as
// close as possible. Runs are the layout of the source text, nil when source
// styling is unknown. Never fails, every decision is recorded.
func (e *Engine) Reconcile(runs []model.Run, translated string, rec diag.Recorder) Result {
	res := e.reconcile(runs, translated, rec)
	rec.Record(diag.KindStrategy, res.Strategy.String(), zap.Int("expected", expectedBold(runs)))
	return res
}

func (e *Engine) reconcile(runs []model.Run, translated string, rec diag.Recorder) Result {
	if strings.TrimSpace(Strip(translated)) == "" {
		return Result{Marked: Strip(translated), Strategy: StrategyEmpty}
	}

	translated = fixNovelty(translated)
	expected := expectedBold(runs)
	plain := Strip(translated)
	opens, closes := Balance(translated)

	if runs != nil && expected == 0 {
		return Result{Marked: plain, Strategy: StrategyPlain}
	}

	spans := BoldSpans(translated)
	if len(spans) > 0 && opens == closes && !e.leaks(spans, plain, expected) {
		return Result{Marked: translated, Strategy: StrategyTrusted}
	}

	if opens+closes == 0 && expected == 0 {
		// source styling is unknown
		return Result{Marked: plain, Strategy: StrategyPlain}
	}

	if opens+closes > 0 {
		rec.Record(diag.KindMarkerImbalance, "translator markers rejected",
			zap.Int("opens", opens), zap.Int("closes", closes),
			zap.Int("spans", len(spans)), zap.Int("expected", expected))

		if expected == 1 {
			if marked, ok := e.notationPrefix(plain); ok {
				return Result{Marked: marked, Strategy: StrategyNotationPrefix}
			}
			if marked, ok := e.ratio(runs, plain); ok {
				return Result{Marked: marked, Strategy: StrategyRatio}
			}
		}
		return e.rebuild(runs, plain, expected)
	}

	// translator dropped all markers
	if marked, ok := e.notationPrefix(plain); ok {
		return Result{Marked: marked, Strategy: StrategyNotationPrefix}
	}
	if expected == 1 {
		if marked, ok := e.sentence(plain); ok {
			return Result{Marked: marked, Strategy: StrategySentence}
		}
	}
	if strings.Contains(plain, "\n") {
		if marked, ok := notationLines(plain); ok {
			return Result{Marked: marked, Strategy: StrategyNotationLines}
		}
		first, rest, _ := strings.Cut(plain, "\n")
		if strings.TrimSpace(first) != "" {
			return Result{Marked: Wrap(first) + "\n" + rest, Strategy: StrategyFirstLine}
		}
	}
	return e.rebuild(runs, plain, expected)
}

// rebuild is the last part of the chain: move patterns, headings, first
// delimiter and finally proportional projection of the source layout.
func (e *Engine) rebuild(runs []model.Run, plain string, expected int) Result {
	if marked, ok := e.patterns(plain, moveRe, expected); ok {
		return Result{Marked: marked, Strategy: StrategyPatterns}
	}
	if marked, ok := e.patterns(plain, headingRe, expected); ok {
		return Result{Marked: marked, Strategy: StrategyHeadings}
	}
	if marked, ok := firstDelimiter(plain); ok {
		return Result{Marked: marked, Strategy: StrategyFirstDelimiter}
	}
	if len(runs) == 0 {
		return Result{Marked: plain, Strategy: StrategyPlain}
	}
	return Result{Marked: Encode(e.projector.Project(runs, plain)), Strategy: StrategyProjection}
}

// leaks reports translator markers covering too much text, wrong number of
// bold spans or a single span too long to be notation.
func (e *Engine) leaks(spans []string, plain string, expected int) bool {
	plainLen := utf8.RuneCountInString(plain)
	if plainLen == 0 {
		return false
	}
	if expected > 0 && len(spans) != expected {
		return true
	}
	coverage := 0
	for _, s := range spans {
		n := utf8.RuneCountInString(strings.TrimSpace(s))
		if n > e.cfg.SuspiciousSpan {
			return true
		}
		coverage += n
	}
	return float64(coverage)/float64(plainLen) > e.cfg.LeakThreshold
}

// notationPrefix makes bold leading move number and notation following it.
func (e *Engine) notationPrefix(plain string) (string, bool) {
	if !notation.IsMoveStart(plain) {
		return "", false
	}
	end := notation.PrefixEnd(plain)
	if end == 0 || end >= len(plain) {
		return "", false
	}
	head := strings.TrimRightFunc(plain[:end], unicode.IsSpace)
	tail := plain[len(head):]
	if utf8.RuneCountInString(strings.TrimSpace(head)) < max(1, e.cfg.MinPrefix) || strings.TrimSpace(tail) == "" {
		return "", false
	}
	return Wrap(head) + tail, true
}

// ratio keeps the source fraction of bold characters, the cut never goes
// past the first line.
func (e *Engine) ratio(runs []model.Run, plain string) (string, bool) {
	total, bold := 0, 0
	for _, r := range runs {
		n := utf8.RuneCountInString(r.Text)
		total += n
		if r.Bold {
			bold += n
		}
	}
	if total == 0 || bold == 0 {
		return "", false
	}

	text := []rune(plain)
	limit := len(text)
	if nl := strings.IndexRune(plain, '\n'); nl >= 0 {
		limit = utf8.RuneCountInString(plain[:nl])
	}
	cut := max(1, min(limit, len(text)*bold/total))
	cut = snapCut(text, cut, 0, limit, e.projector.Window)
	for cut > 0 && unicode.IsSpace(text[cut-1]) {
		cut--
	}
	if cut == 0 {
		return "", false
	}
	return Wrap(string(text[:cut])) + string(text[cut:]), true
}

// sentence makes the first sentence bold.
func (e *Engine) sentence(plain string) (string, bool) {
	head, tail := e.firstSentence(plain)
	content := strings.TrimRightFunc(head, unicode.IsSpace)
	if strings.TrimSpace(content) == "" || strings.TrimSpace(tail) == "" {
		return "", false
	}
	return Wrap(content) + head[len(content):] + tail, true
}

func (e *Engine) firstSentence(plain string) (head, tail string) {
	if e.splitter != nil {
		sentences := e.splitter.Split(plain)
		if len(sentences) < 2 {
			return plain, ""
		}
		return sentences[0], plain[len(sentences[0]):]
	}
	for _, loc := range sentenceEndRe.FindAllStringIndex(plain, -1) {
		if moveNumberTail.MatchString(strings.TrimRight(plain[:loc[1]], " \t\n")) {
			continue
		}
		return plain[:loc[1]], plain[loc[1]:]
	}
	return plain, ""
}

// notationLines makes bold leading lines while they look like notation, the
// first one must open with a move number. Standalone novelty sign "N"
// continues notation.
func notationLines(plain string) (string, bool) {
	lines := strings.Split(plain, "\n")
	n := 0
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if i == 0 {
			if !notation.IsMoveStart(stripped) || !notation.LineIsNotation(stripped) {
				break
			}
			n++
			continue
		}
		if stripped == "N" || notation.LineIsNotation(stripped) {
			n++
			continue
		}
		break
	}
	if n == 0 {
		return "", false
	}
	marked := Wrap(strings.Join(lines[:n], "\n"))
	if n < len(lines) {
		marked += "\n" + strings.Join(lines[n:], "\n")
	}
	return marked, true
}

// patterns makes bold up to expected matches of re, each clipped to its line
// and to the span limit.
func (e *Engine) patterns(plain string, re *regexp.Regexp, expected int) (string, bool) {
	locs := re.FindAllStringSubmatchIndex(plain, -1)
	if len(locs) == 0 {
		return "", false
	}
	if expected > 0 && len(locs) > expected {
		locs = locs[:expected]
	}

	var b strings.Builder
	prev := 0
	for _, loc := range locs {
		start, end := loc[2], loc[3]
		if nl := strings.IndexByte(plain[start:end], '\n'); nl >= 0 {
			end = start + nl
		}
		end = start + len(truncateRunes(plain[start:end], e.cfg.PatternSpanLimit))
		span := strings.TrimRightFunc(plain[start:end], unicode.IsSpace)
		if span == "" {
			continue
		}
		b.WriteString(plain[prev:start])
		b.WriteString(Wrap(span))
		prev = start + len(span)
	}
	if prev == 0 {
		return "", false
	}
	b.WriteString(plain[prev:])
	return b.String(), true
}

// firstDelimiter makes bold everything up to the first sentence punctuation
// or line break.
func firstDelimiter(plain string) (string, bool) {
	loc := firstDelimiters.FindStringIndex(plain)
	if loc == nil {
		return "", false
	}
	end := loc[0] + 1
	if plain[loc[0]] == '\n' {
		end = loc[0]
	}
	head := strings.TrimRightFunc(plain[:end], unicode.IsSpace)
	if strings.TrimSpace(head) == "" || strings.TrimSpace(plain[len(head):]) == "" {
		return "", false
	}
	return Wrap(head) + plain[len(head):], true
}

func fixNovelty(marked string) string {
	if !strings.Contains(marked, model.BoldClose) {
		return marked
	}
	fixed := noveltyRe.ReplaceAllString(marked, "${1}N"+model.BoldClose+"${2}")
	return blankLinesRe.ReplaceAllString(fixed, "\n\n")
}

func expectedBold(runs []model.Run) int {
	n := 0
	for _, r := range runs {
		if r.Bold && strings.TrimSpace(r.Text) != "" {
			n++
		}
	}
	return n
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
