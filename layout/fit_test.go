package layout

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"reflow/config"
	"reflow/diag"
	"reflow/model"
)

func testLayoutConfig() *config.LayoutConfig {
	return &config.LayoutConfig{
		ScaleMin:          0.6,
		ScaleMax:          1.0,
		MaxIterations:     14,
		Precision:         0.02,
		LineHeight:        1.18,
		BoldScale:         1.06,
		OverflowLines:     2,
		Margin:            2,
		ExpandRight:       20,
		ExpandBottom:      10,
		BaseSize:          config.BaseSizeConfig{Min: 9, Max: 15.75, Factor: 0.95, Default: 10},
		FallbackCharWidth: 0.6,
	}
}

// every character is half of the font size wide
func testEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(testLayoutConfig(), ApproxMetrics{CharWidth: 0.5}, zaptest.NewLogger(t))
}

var flat = model.FitResult{Regular: 10, Bold: 10, Scale: 1}

func TestTokens(t *testing.T) {
	segs := []model.Segment{{Text: "16. Bxd6\n", Bold: true}, {Text: " to  błąd\n\nkoniec"}}
	var got []string
	for tok := range tokens(segs) {
		if tok.newline {
			got = append(got, "|")
			continue
		}
		got = append(got, tok.text)
	}
	want := "16. Bxd6 | to błąd | | koniec"
	if strings.Join(got, " ") != want {
		t.Errorf("tokens() = %q, want %q", strings.Join(got, " "), want)
	}
}

func TestMeasure(t *testing.T) {
	e := testEngine(t)
	tests := []struct {
		name  string
		segs  []model.Segment
		width float64
		lines int
	}{
		{"empty", nil, 100, 0},
		{"wraps", []model.Segment{{Text: "aa bb cc"}}, 25, 2},
		{"fits", []model.Segment{{Text: "aa bb cc"}}, 40, 1},
		{"hard breaks", []model.Segment{{Text: "aa\n\nbb"}}, 100, 2},
		{"trailing break", []model.Segment{{Text: "aa\n"}, {Text: "bb", Bold: true}}, 100, 2},
		{"style change", []model.Segment{{Text: "aa", Bold: true}, {Text: " bb"}}, 25, 1},
		{"long word", []model.Segment{{Text: "aa abcdefghij bb"}}, 20, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, h := e.Measure(tt.segs, tt.width, flat)
			if lines != tt.lines {
				t.Errorf("Measure() lines = %d, want %d", lines, tt.lines)
			}
			if want := float64(tt.lines) * 10 * 1.18; math.Abs(h-want) > 1e-9 {
				t.Errorf("Measure() height = %v, want %v", h, want)
			}
		})
	}

	if _, h := e.Measure([]model.Segment{{Text: "aa"}}, 0, flat); !math.IsInf(h, 1) {
		t.Errorf("zero width must never fit, got %v", h)
	}
}

func TestMeasureUsesLargerSize(t *testing.T) {
	e := testEngine(t)
	fit := e.Sizes(10, 1)
	_, h := e.Measure([]model.Segment{{Text: "aa"}}, 100, fit)
	if want := 10 * 1.06 * 1.18; math.Abs(h-want) > 1e-9 {
		t.Errorf("height = %v, want %v", h, want)
	}
}

func TestChooseScale(t *testing.T) {
	e := testEngine(t)
	segs := []model.Segment{
		{Text: "16. Bxd6", Bold: true},
		{Text: " to poważny błąd, po którym białe tracą całą przewagę zdobytą w debiucie."},
	}

	rect := model.Rect{X0: 0, Y0: 0, X1: 120, Y1: 1000}
	if got := e.ChooseScale(segs, rect, 10); got != 1 {
		t.Errorf("ChooseScale() = %v, want 1 when everything fits", got)
	}

	prev := 0.0
	for h := 5.0; h <= 400; h += 5 {
		rect.Y1 = h
		got := e.ChooseScale(segs, rect, 10)
		if got < 0.6 || got > 1 {
			t.Fatalf("ChooseScale(height %v) = %v out of range", h, got)
		}
		if got < prev {
			t.Fatalf("ChooseScale(height %v) = %v decreased from %v", h, got, prev)
		}
		prev = got
	}
}

func TestChooseScaleIterations(t *testing.T) {
	cfg := testLayoutConfig()
	cfg.MaxIterations = 1
	e := NewEngine(cfg, ApproxMetrics{CharWidth: 0.5}, zaptest.NewLogger(t))

	segs := []model.Segment{{Text: strings.Repeat("word ", 100)}}
	// nothing fits, single step halves the range once
	if got := e.ChooseScale(segs, model.Rect{X1: 50, Y1: 1}, 10); got != 0.6 {
		t.Errorf("ChooseScale() = %v, want lower bound", got)
	}
}

func lineWidth(l model.Line) float64 {
	w := 0.0
	for _, p := range l.Pieces {
		w += p.Width
	}
	return w
}

func TestEmitLongWord(t *testing.T) {
	e := testEngine(t)
	c := diag.New()
	segs := []model.Segment{{Text: "aa abcdefghijklmnop bb"}}
	lines, truncated := e.Emit(segs, model.Rect{X1: 20, Y1: 100}, flat, c.At(1, 0))
	if truncated {
		t.Fatalf("unexpected truncation")
	}
	got := make([]string, 0, len(lines))
	for _, l := range lines {
		got = append(got, l.Text())
	}
	if strings.Join(got, "|") != "aa|abcdefghijklmnop|bb" {
		t.Errorf("Emit() lines = %q", got)
	}
	if c.Count(diag.KindLayoutOverflow) != 0 {
		t.Errorf("width overflow of a single word must not be reported")
	}
}

func TestEmitWidthBound(t *testing.T) {
	e := testEngine(t)
	segs := []model.Segment{
		{Text: "12...Qe7", Bold: true},
		{Text: " i czarne bronią się, ale "},
		{Text: "13. Nf3 N", Bold: true},
		{Text: " daje białym trwałą inicjatywę na skrzydle hetmańskim."},
	}
	rect := model.Rect{X0: 10, Y0: 20, X1: 110, Y1: 400}
	lines, _ := e.Emit(segs, rect, flat, diag.Recorder{})
	if len(lines) < 2 {
		t.Fatalf("Emit() = %+v", lines)
	}

	var words []string
	for i, l := range lines {
		if w := lineWidth(l); w > rect.Width()+1e-9 && len(strings.Fields(l.Text())) > 1 {
			t.Errorf("line %d is %v wide: %q", i, w, l.Text())
		}
		if l.Pieces[0].X != rect.X0 {
			t.Errorf("line %d starts at %v", i, l.Pieces[0].X)
		}
		for j := 1; j < len(l.Pieces); j++ {
			if l.Pieces[j].Bold == l.Pieces[j-1].Bold {
				t.Errorf("line %d has adjacent pieces of the same style", i)
			}
			if want := l.Pieces[j-1].X + l.Pieces[j-1].Width; math.Abs(l.Pieces[j].X-want) > 1e-9 {
				t.Errorf("line %d piece %d at %v, want %v", i, j, l.Pieces[j].X, want)
			}
		}
		if i > 0 && lines[i].Y <= lines[i-1].Y {
			t.Errorf("line %d is not below previous", i)
		}
		words = append(words, strings.Fields(l.Text())...)
	}
	var src []string
	for _, s := range segs {
		src = append(src, strings.Fields(s.Text)...)
	}
	if strings.Join(words, " ") != strings.Join(src, " ") {
		t.Errorf("words lost: %q", words)
	}
}

func TestEmitTruncates(t *testing.T) {
	e := testEngine(t)
	c := diag.New()
	// one word per line, two lines of tolerance below rectangle
	segs := []model.Segment{{Text: "aa bb cc dd ee"}}
	lines, truncated := e.Emit(segs, model.Rect{X1: 12, Y1: 12}, flat, c.At(4, 2))
	if !truncated {
		t.Fatalf("expected truncation")
	}
	if len(lines) != 3 || lines[2].Text() != "cc" {
		t.Errorf("Emit() = %+v", lines)
	}
	if c.Count(diag.KindLayoutOverflow) != 1 {
		t.Fatalf("overflow recorded %d times", c.Count(diag.KindLayoutOverflow))
	}
	ev := c.Events()[0]
	if ev.Page != 4 || ev.Block != 2 {
		t.Errorf("overflow recorded at %d/%d", ev.Page, ev.Block)
	}
}

func TestEmitBoldSizes(t *testing.T) {
	e := testEngine(t)
	fit := e.Sizes(10, 0.8)
	lines, _ := e.Emit([]model.Segment{{Text: "16. Bxd6", Bold: true}, {Text: " to błąd"}}, model.Rect{X1: 500, Y1: 100}, fit, diag.Recorder{})
	if len(lines) != 1 || len(lines[0].Pieces) != 2 {
		t.Fatalf("Emit() = %+v", lines)
	}
	if p := lines[0].Pieces; p[0].Size != fit.Bold || p[1].Size != fit.Regular {
		t.Errorf("piece sizes = %v, %v", p[0].Size, p[1].Size)
	}
	if math.Abs(fit.Bold-fit.Regular*1.06) > 1e-9 {
		t.Errorf("bold size %v is not scaled regular %v", fit.Bold, fit.Regular)
	}
	if lines[0].Y != fit.Bold {
		t.Errorf("first baseline at %v", lines[0].Y)
	}
}

func TestStateNames(t *testing.T) {
	if StateLineFull.String() != "line-full" || StatePageExhausted.String() != "page-exhausted" {
		t.Errorf("unexpected state names %v", StateNames())
	}
	if s, err := ParseState("accumulating"); err != nil || s != StateAccumulating {
		t.Errorf("ParseState() = %v, %v", s, err)
	}
}

var sampleWords = []string{
	"16.", "Bxd6", "12...Qe7", "O-O-O", "i", "czarne", "bronią", "się,", "ale", "białe",
	"mają", "trwałą", "inicjatywę", "na", "skrzydle", "hetmańskim.", "Nf3", "+/-", "N", "ruch",
}

// randomSegments builds text of n words with random style changes and
// occasional hard line breaks.
func randomSegments(r *rand.Rand, n int) []model.Segment {
	var segs []model.Segment
	for i := range n {
		w := sampleWords[r.IntN(len(sampleWords))]
		bold := r.IntN(3) == 0
		sep := " "
		if i == 0 {
			sep = ""
		} else if r.IntN(12) == 0 {
			sep = "\n"
		}
		if k := len(segs); k > 0 && segs[k-1].Bold == bold {
			segs[k-1].Text += sep + w
			continue
		}
		segs = append(segs, model.Segment{Text: sep + w, Bold: bold})
	}
	return segs
}

func TestLayoutProperties(t *testing.T) {
	fonts, err := NewFontMetrics(&config.FontsConfig{}, 0.6)
	if err != nil {
		t.Fatalf("NewFontMetrics() error = %v", err)
	}
	for name, metrics := range map[string]Metrics{
		"approx": ApproxMetrics{CharWidth: 0.55},
		"font":   fonts,
	} {
		t.Run(name, func(t *testing.T) {
			e := NewEngine(testLayoutConfig(), metrics, zaptest.NewLogger(t))
			r := rand.New(rand.NewPCG(7, uint64(len(name))))
			for iter := range 60 {
				segs := randomSegments(r, 5+r.IntN(60))
				height := 40 + r.Float64()*200

				prev := 0.0
				for _, width := range []float64{60, 90, 140, 220, 400} {
					rect := model.Rect{X0: 15, Y0: 30, X1: 15 + width, Y1: 30 + height}

					scale := e.ChooseScale(segs, rect, 10)
					if scale < prev {
						t.Errorf("case %d: scale %v at width %v is below %v at narrower width", iter, scale, width, prev)
					}
					prev = scale

					lines, _ := e.Emit(segs, rect, e.Sizes(10, scale), diag.Recorder{})
					for i, l := range lines {
						if len(strings.Fields(l.Text())) < 2 {
							continue
						}
						if end := l.Pieces[0].X + lineWidth(l); end > rect.X1+1e-6 {
							t.Errorf("case %d width %v: line %d ends at %v past %v: %q", iter, width, i, end, rect.X1, l.Text())
						}
					}
				}
			}
		})
	}
}
