// Package style keeps bold layout of chess notation across translation: it
// builds style runs from extracted spans, encodes them into marked text and
// restores them from whatever translator returns.
package style

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"reflow/diag"
	"reflow/model"
	"reflow/notation"
)

const softHyphen = "\u00ad"

// RunBuilder turns spans of a block into runs.
type RunBuilder struct {
	// MinPrefix is the shortest notation prefix (in characters, surrounding
	// spaces excluded) split off a bold run.
	MinPrefix int
	Projector Projector
}

// Build coalesces spans into maximal same-style runs. No two adjacent runs
// share bold flag.
func (rb RunBuilder) Build(spans []model.Span) []model.Run {
	runs := coalesce(spans)
	runs = mergeBoldGaps(runs)
	runs = rb.splitNotationPrefixes(runs)
	return mergeAdjacent(runs)
}

// FromBlock builds runs for a block. Styling comes from the pristine span
// backup when present. Without any styling whole text becomes a single
// regular run. When text was changed after extraction (correction service)
// styling is projected onto the current text.
func (rb RunBuilder) FromBlock(b *model.Block, rec diag.Recorder) []model.Run {
	plain := func() []model.Run {
		if b.Text == "" {
			return nil
		}
		return []model.Run{{Text: b.Text}}
	}

	spans, ok := b.StyleSpans()
	if !ok {
		if b.Text != "" {
			rec.Record(diag.KindMissingStyleBackup, "no style spans, block treated as regular text")
		}
		return plain()
	}
	for _, sp := range spans {
		if HasMarkers(sp.Text) {
			rec.Record(diag.KindLiteralMarker, "span text contains marker sequence", zap.String("span", sp.Text))
		}
		checkBoldSource(sp, rec)
	}

	runs := rb.Build(spans)
	if len(runs) == 0 {
		rec.Record(diag.KindMissingStyleBackup, "style spans are empty, block treated as regular text")
		return plain()
	}
	if b.Text == "" {
		return runs
	}
	if joined := joinRuns(runs); joined == b.Text {
		return runs
	}
	return rb.Projector.Project(runs, b.Text)
}

var boldFontWords = []string{"bold", "semibold", "demi", "black", "heavy"}

// BoldFont reports whether font name alone says the face is bold.
func BoldFont(name string) bool {
	name = strings.ToLower(name)
	for _, w := range boldFontWords {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}

// checkBoldSource records spans where bold flag and font name disagree,
// usually a sign of fake bold (stroke) or of a misreported flag.
func checkBoldSource(sp model.Span, rec diag.Recorder) {
	if sp.Font == "" || strings.TrimSpace(sp.Text) == "" {
		return
	}
	switch named := BoldFont(sp.Font); {
	case sp.Bold && !named:
		rec.Record(diag.KindBoldSource, "bold flag without bold font",
			zap.String("span", sp.Text), zap.String("font", sp.Font))
	case !sp.Bold && named:
		rec.Record(diag.KindBoldSource, "bold font without bold flag",
			zap.String("span", sp.Text), zap.String("font", sp.Font))
	}
}

func coalesce(spans []model.Span) []model.Run {
	var runs []model.Run
	for _, sp := range spans {
		text := strings.ReplaceAll(sp.Text, softHyphen, "")
		if text == "" {
			continue
		}
		if len(runs) == 0 || runs[len(runs)-1].Bold != sp.Bold {
			runs = append(runs, model.Run{Text: text, Bold: sp.Bold})
			continue
		}
		last := &runs[len(runs)-1]
		if text != " " && needsSpace(last.Text, text) {
			last.Text += " "
		}
		last.Text += text
	}
	return runs
}

// mergeBoldGaps collapses bold, whitespace only regular, bold sequences into
// a single bold run. Font flags of spaces are unreliable.
func mergeBoldGaps(runs []model.Run) []model.Run {
	out := make([]model.Run, 0, len(runs))
	for i := 0; i < len(runs); i++ {
		if len(out) > 0 && out[len(out)-1].Bold &&
			!runs[i].Bold && strings.TrimSpace(runs[i].Text) == "" &&
			i+1 < len(runs) && runs[i+1].Bold {
			out[len(out)-1].Text += runs[i].Text + runs[i+1].Text
			i++
			continue
		}
		out = append(out, runs[i])
	}
	return out
}

// splitNotationPrefixes leaves only the move number and the move itself bold
// when bold run continues with prose.
func (rb RunBuilder) splitNotationPrefixes(runs []model.Run) []model.Run {
	out := make([]model.Run, 0, len(runs))
	for _, r := range runs {
		head, tail, ok := rb.splitPrefix(r.Text)
		if !r.Bold || !ok {
			out = append(out, r)
			continue
		}
		out = append(out, model.Run{Text: head, Bold: true}, model.Run{Text: tail})
	}
	return out
}

// splitPrefix cuts text after its leading notation when text opens with a
// move number and continues with something else.
func (rb RunBuilder) splitPrefix(text string) (head, tail string, ok bool) {
	if !notation.IsMoveStart(text) {
		return "", "", false
	}
	end := notation.PrefixEnd(text)
	if end == 0 || end >= len(text) || strings.TrimSpace(text[end:]) == "" {
		return "", "", false
	}
	head = strings.TrimRightFunc(text[:end], unicode.IsSpace)
	if utf8.RuneCountInString(strings.TrimSpace(head)) < max(1, rb.MinPrefix) {
		return "", "", false
	}
	tail = text[end:]
	if needsSpace(head, tail) {
		tail = " " + tail
	}
	return head, tail, true
}

func mergeAdjacent(runs []model.Run) []model.Run {
	out := make([]model.Run, 0, len(runs))
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		if len(out) > 0 && out[len(out)-1].Bold == r.Bold {
			out[len(out)-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

func joinRuns(runs []model.Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// needsSpace reports whether joining a and b would glue two words.
func needsSpace(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(a)
	first, _ := utf8.DecodeRuneInString(b)
	return !unicode.IsSpace(last) && !unicode.IsSpace(first)
}
