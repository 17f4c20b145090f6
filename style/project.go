package style

import (
	"math"
	"unicode"
	"unicode/utf8"

	"reflow/model"
)

// DefaultSnapWindow is used when Projector has no window set.
const DefaultSnapWindow = 24

// Projector spreads existing style layout over a text with different content
// keeping proportion and order of bold emphasis.
type Projector struct {
	// Window is how far (in characters) a cut may move to reach whitespace.
	Window int
}

// Project cuts target at positions proportional to cumulative run lengths,
// each cut snapped to nearby whitespace. Result covers the whole target and
// never has two adjacent runs with the same style.
func (p Projector) Project(runs []model.Run, target string) []model.Run {
	if target == "" {
		return nil
	}
	switch len(runs) {
	case 0:
		return []model.Run{{Text: target}}
	case 1:
		return []model.Run{{Text: target, Bold: runs[0].Bold}}
	}

	window := p.Window
	if window <= 0 {
		window = DefaultSnapWindow
	}

	text := []rune(target)
	weights := make([]int, len(runs))
	total := 0
	for i, r := range runs {
		weights[i] = max(1, utf8.RuneCountInString(r.Text))
		total += weights[i]
	}

	out := make([]model.Run, 0, len(runs))
	cumulative, prev := 0, 0
	for i, r := range runs {
		end := len(text)
		if i < len(runs)-1 {
			cumulative += weights[i]
			raw := int(math.Round(float64(len(text)) * float64(cumulative) / float64(total)))
			end = max(prev, snapCut(text, raw, prev, len(text), window))
		}
		if end > prev {
			out = mergeAdjacent(append(out, model.Run{Text: string(text[prev:end]), Bold: r.Bold}))
		}
		prev = end
	}
	if len(out) == 0 {
		return []model.Run{{Text: target}}
	}
	return out
}

// snapCut moves cut to the closest whitespace boundary within window looking
// left first at each distance. Cut stays within [lo, hi].
func snapCut(text []rune, cut, lo, hi, window int) int {
	cut = max(lo, min(hi, cut))
	if cut <= lo || cut >= hi {
		return cut
	}
	atBoundary := func(i int) bool {
		return unicode.IsSpace(text[i-1]) || (i < len(text) && unicode.IsSpace(text[i]))
	}
	if atBoundary(cut) {
		return cut
	}
	for delta := 1; delta <= window; delta++ {
		if left := cut - delta; left > lo && atBoundary(left) {
			return left
		}
		if right := cut + delta; right < hi && atBoundary(right) {
			return right
		}
	}
	return cut
}
