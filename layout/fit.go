package layout

import (
	"iter"
	"math"
	"strings"

	"go.uber.org/zap"

	"reflow/config"
	"reflow/content/text"
	"reflow/diag"
	"reflow/model"
)

// Engine fits segments into rectangles. It is stateless and may be shared.
type Engine struct {
	cfg     config.LayoutConfig
	metrics Metrics
	log     *zap.Logger
}

func NewEngine(cfg *config.LayoutConfig, metrics Metrics, log *zap.Logger) *Engine {
	if metrics == nil {
		metrics = ApproxMetrics{CharWidth: cfg.FallbackCharWidth}
	}
	return &Engine{cfg: *cfg, metrics: metrics, log: log}
}

// token is a word or a hard line break.
type token struct {
	text    string
	bold    bool
	newline bool
}

// tokens splits segments into words, non-breaking space keeps words together.
func tokens(segs []model.Segment) iter.Seq[token] {
	return func(yield func(token) bool) {
		for _, seg := range segs {
			parts := strings.Split(seg.Text, "\n")
			for i, part := range parts {
				for w := range text.Words(part, false) {
					if !yield(token{text: w, bold: seg.Bold}) {
						return
					}
				}
				if i < len(parts)-1 {
					if !yield(token{newline: true}) {
						return
					}
				}
			}
		}
	}
}

func (e *Engine) width(s string, bold bool, fit model.FitResult) float64 {
	if bold {
		return e.metrics.TextWidth(s, fit.Bold, Bold)
	}
	return e.metrics.TextWidth(s, fit.Regular, Regular)
}

// Sizes returns font sizes for baseline size and scale.
func (e *Engine) Sizes(base, scale float64) model.FitResult {
	reg := base * scale
	return model.FitResult{Regular: reg, Bold: reg * e.cfg.BoldScale, Scale: scale}
}

func (e *Engine) lineHeight(fit model.FitResult) float64 {
	return max(fit.Regular, fit.Bold) * e.cfg.LineHeight
}

// Measure returns number of lines greedy wrapping produces and their total
// height. Hard line break closes current line, empty lines are not counted.
func (e *Engine) Measure(segs []model.Segment, width float64, fit model.FitResult) (int, float64) {
	if width <= 0 {
		return 0, math.Inf(1)
	}
	var (
		lines int
		cur   float64
		open  bool
	)
	for tok := range tokens(segs) {
		if tok.newline {
			if open {
				lines++
				cur, open = 0, false
			}
			continue
		}
		w := e.width(tok.text, tok.bold, fit)
		if !open {
			cur, open = w, true
			continue
		}
		add := e.width(" ", tok.bold, fit) + w
		if cur+add <= width {
			cur += add
			continue
		}
		lines++
		cur = w
	}
	if open {
		lines++
	}
	return lines, float64(lines) * e.lineHeight(fit)
}

func (e *Engine) fits(segs []model.Segment, rect model.Rect, base, scale float64) bool {
	_, h := e.Measure(segs, rect.Width(), e.Sizes(base, scale))
	return h <= rect.Height()
}

// ChooseScale returns the largest scale in configured range for which
// segments fit rectangle height. Scale search stops after configured number
// of iterations or when interval gets narrower than precision. When nothing
// fits the lower bound is returned and emission truncates.
func (e *Engine) ChooseScale(segs []model.Segment, rect model.Rect, base float64) float64 {
	if e.fits(segs, rect, base, e.cfg.ScaleMax) {
		return e.cfg.ScaleMax
	}
	lo, hi := e.cfg.ScaleMin, e.cfg.ScaleMax
	for range e.cfg.MaxIterations {
		mid := (lo + hi) / 2
		if e.fits(segs, rect, base, mid) {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < e.cfg.Precision {
			break
		}
	}
	return lo
}

// emitter places tokens line by line.
type emitter struct {
	e          *Engine
	rect       model.Rect
	fit        model.FitResult
	lineHeight float64
	limit      float64
	rec        diag.Recorder

	state   State
	y       float64
	cur     float64
	pending []model.Piece
	lines   []model.Line
}

// Emit lays segments out inside rectangle using page font sizes. Lines may
// go below rectangle by configured number of lines, anything past that is
// dropped and reported, truncated is true then. Single word wider than
// rectangle is placed on its own line.
func (e *Engine) Emit(segs []model.Segment, rect model.Rect, fit model.FitResult, rec diag.Recorder) (lines []model.Line, truncated bool) {
	lh := e.lineHeight(fit)
	em := &emitter{
		e:          e,
		rect:       rect,
		fit:        fit,
		lineHeight: lh,
		limit:      rect.Y1 + float64(e.cfg.OverflowLines)*lh,
		rec:        rec,
		y:          rect.Y0 + max(fit.Regular, fit.Bold),
	}
	for tok := range tokens(segs) {
		if tok.newline {
			em.lineBreak()
		} else {
			em.append(tok.text, tok.bold)
		}
		if em.state == StatePageExhausted {
			break
		}
	}
	exhausted := em.state == StatePageExhausted
	if len(em.pending) > 0 {
		if em.y <= em.limit {
			em.flush()
		} else if !exhausted {
			em.exhaust("", "final line does not fit")
			exhausted = true
		}
	}
	return em.lines, exhausted
}

func (em *emitter) append(word string, bold bool) {
	add := em.e.width(word, bold, em.fit)
	if len(em.pending) > 0 {
		add += em.e.width(" ", bold, em.fit)
	}
	if em.cur > 0 && em.cur+add > em.rect.Width() {
		em.state = StateLineFull
		if em.y+em.lineHeight > em.limit {
			em.exhaust(word, "text truncated, out of vertical space")
			return
		}
		em.flush()
		add = em.e.width(word, bold, em.fit)
	}

	candidate := word
	if len(em.pending) > 0 {
		candidate = " " + word
	}
	size := em.fit.Regular
	if bold {
		size = em.fit.Bold
	}
	if n := len(em.pending); n > 0 && em.pending[n-1].Bold == bold {
		em.pending[n-1].Text += candidate
		em.pending[n-1].Width += add
	} else {
		em.pending = append(em.pending, model.Piece{
			Text:  candidate,
			Bold:  bold,
			X:     em.rect.X0 + em.cur,
			Width: add,
			Size:  size,
		})
	}
	em.cur += add
}

func (em *emitter) lineBreak() {
	if len(em.pending) == 0 {
		return
	}
	if em.y+em.lineHeight > em.limit {
		em.exhaust("", "text truncated, line break out of vertical space")
		return
	}
	em.flush()
}

func (em *emitter) flush() {
	em.lines = append(em.lines, model.Line{Y: em.y, Pieces: em.pending})
	em.y += em.lineHeight
	em.pending = nil
	em.cur = 0
	em.state = StateAccumulating
}

func (em *emitter) exhaust(word, msg string) {
	em.state = StatePageExhausted
	fields := []zap.Field{zap.Int("lines", len(em.lines))}
	if word != "" {
		fields = append(fields, zap.String("token", firstRunes(word, 30)))
	}
	em.rec.Record(diag.KindLayoutOverflow, msg, fields...)
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
