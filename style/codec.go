package style

import (
	"strings"

	"reflow/model"
)

// Encode wraps bold runs into marker pair and concatenates everything in
// order.
func Encode(runs []model.Run) string {
	var b strings.Builder
	for _, r := range runs {
		if r.Bold {
			b.WriteString(model.BoldOpen)
			b.WriteString(r.Text)
			b.WriteString(model.BoldClose)
			continue
		}
		b.WriteString(r.Text)
	}
	return b.String()
}

// Decode splits marked text into segments. Unbalanced input is not an error:
// an open marker without matching close makes the rest of the text bold,
// stray close markers are dropped. Adjacent segments with the same style are
// merged and empty segments are removed.
func Decode(marked string) []model.Segment {
	var segs []model.Segment
	add := func(text string, bold bool) {
		text = Strip(text)
		if text == "" {
			return
		}
		if n := len(segs); n > 0 && segs[n-1].Bold == bold {
			segs[n-1].Text += text
			return
		}
		segs = append(segs, model.Segment{Text: text, Bold: bold})
	}

	rest := marked
	for rest != "" {
		open := strings.Index(rest, model.BoldOpen)
		if open < 0 {
			add(rest, false)
			break
		}
		add(rest[:open], false)
		rest = rest[open+len(model.BoldOpen):]

		end := strings.Index(rest, model.BoldClose)
		if end < 0 {
			add(rest, true)
			break
		}
		add(rest[:end], true)
		rest = rest[end+len(model.BoldClose):]
	}
	return segs
}

// Strip removes all markers.
func Strip(marked string) string {
	if !HasMarkers(marked) {
		return marked
	}
	return strings.ReplaceAll(strings.ReplaceAll(marked, model.BoldOpen, ""), model.BoldClose, "")
}

// HasMarkers reports whether text contains any marker.
func HasMarkers(text string) bool {
	return strings.Contains(text, model.BoldOpen) || strings.Contains(text, model.BoldClose)
}

// Balance returns number of open and close markers.
func Balance(marked string) (opens, closes int) {
	return strings.Count(marked, model.BoldOpen), strings.Count(marked, model.BoldClose)
}

// BoldSpans returns contents of properly paired markers, the shortest match
// for each open marker.
func BoldSpans(marked string) []string {
	var spans []string
	rest := marked
	for {
		open := strings.Index(rest, model.BoldOpen)
		if open < 0 {
			return spans
		}
		rest = rest[open+len(model.BoldOpen):]
		end := strings.Index(rest, model.BoldClose)
		if end < 0 {
			return spans
		}
		spans = append(spans, rest[:end])
		rest = rest[end+len(model.BoldClose):]
	}
}

// Segments converts runs to segments merging neighbours with the same style.
func Segments(runs []model.Run) []model.Segment {
	return Decode(Encode(runs))
}

// Wrap puts text between markers.
func Wrap(text string) string {
	return model.BoldOpen + text + model.BoldClose
}
