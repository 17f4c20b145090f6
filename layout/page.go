package layout

import (
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"reflow/config"
	"reflow/diag"
	"reflow/model"
)

// regionPad is distance kept from skipped regions.
const regionPad = 1.0

// move number, glued to the move or not
var moveHeadRe = regexp.MustCompile(`^\s*\d{1,3}\s*(?:\.\.\.|\.)(?:\s|$|[KQRBNOa-h])`)

// BaseSize returns page baseline font size: median of regular span sizes
// scaled by factor, when page has only bold spans their median is brought to
// regular size first. Result is clamped to configured range.
func BaseSize(blocks []*model.Block, cfg *config.BaseSizeConfig, boldScale float64) float64 {
	var regular, bold []float64
	for _, b := range blocks {
		spans, _ := b.StyleSpans()
		for _, s := range spans {
			if s.Size <= 0 {
				continue
			}
			if s.Bold {
				bold = append(bold, s.Size)
			} else {
				regular = append(regular, s.Size)
			}
		}
	}

	var median float64
	switch {
	case len(regular) > 0:
		slices.Sort(regular)
		median = regular[len(regular)/2] * cfg.Factor
	case len(bold) > 0:
		slices.Sort(bold)
		median = bold[len(bold)/2] / boldScale * cfg.Factor
	default:
		return cfg.Default
	}
	return max(cfg.Min, min(cfg.Max, median))
}

// AvoidRegions trims rectangle so it does not overlap any of the regions,
// cutting along the axis where overlap is larger. False when nothing usable
// is left.
func AvoidRegions(r model.Rect, regions []model.Rect, pad float64) (model.Rect, bool) {
	for _, b := range regions {
		if !r.Intersects(b) {
			continue
		}
		overlap := model.Rect{X0: max(r.X0, b.X0), Y0: max(r.Y0, b.Y0), X1: min(r.X1, b.X1), Y1: min(r.Y1, b.Y1)}
		horiz := overlap.Width() / max(r.Width(), 1e-6)
		vert := overlap.Height() / max(r.Height(), 1e-6)
		if horiz >= vert {
			if b.Y0 <= r.Y0 && r.Y0 < b.Y1 {
				r.Y0 = min(b.Y1+pad, r.Y1-1)
			} else {
				r.Y1 = max(b.Y0-pad, r.Y0+1)
			}
		} else {
			if b.X0 <= r.X0 && r.X0 < b.X1 {
				r.X0 = min(b.X1+pad, r.X1-1)
			} else {
				r.X1 = max(b.X0-pad, r.X0+1)
			}
		}
		if r.Width() <= 1 || r.Height() <= 1 {
			return model.Rect{}, false
		}
	}
	return r, true
}

// WorkRect returns area available for text of a block.
func (e *Engine) WorkRect(block model.Rect, regions []model.Rect) (model.Rect, bool) {
	safe, ok := AvoidRegions(block, regions, regionPad)
	if !ok {
		return model.Rect{}, false
	}
	m := e.cfg.Margin
	work := model.Rect{
		X0: safe.X0 + m,
		Y0: safe.Y0 + m,
		X1: safe.X1 - m + e.cfg.ExpandRight,
		Y1: safe.Y1 - m + e.cfg.ExpandBottom,
	}
	if work.Empty() {
		return model.Rect{}, false
	}
	return work, true
}

// BreakMoveHeads ends the line after a bold segment opening with a move
// number when prose follows it. Input is not modified.
func BreakMoveHeads(segs []model.Segment) []model.Segment {
	out := slices.Clone(segs)
	for i := 0; i < len(out)-1; i++ {
		if !out[i].Bold || out[i+1].Bold || !moveHeadRe.MatchString(out[i].Text) {
			continue
		}
		if !strings.HasSuffix(out[i].Text, "\n") {
			out[i].Text += "\n"
		}
	}
	return out
}

type placed struct {
	block *model.Block
	segs  []model.Segment
	rect  model.Rect
	index int
}

// LayoutPage measures all blocks of the page first to find a single scale
// every block fits with, then lays every block out with the same font sizes.
// Blocks without segments or usable area are left untouched. Recorder is
// rebound per block.
func (e *Engine) LayoutPage(page *model.Page, rec diag.Recorder) model.FitResult {
	base := BaseSize(page.Blocks, &e.cfg.BaseSize, e.cfg.BoldScale)

	var items []placed
	scale := e.cfg.ScaleMax
	for i, b := range page.Blocks {
		if len(b.Segments) == 0 {
			continue
		}
		work, ok := e.WorkRect(b.Rect, page.SkipRegions)
		if !ok {
			e.log.Debug("Block has no room left", zap.Int("page", page.Number), zap.Int("block", i))
			continue
		}
		segs := BreakMoveHeads(b.Segments)
		items = append(items, placed{block: b, segs: segs, rect: work, index: i})
		scale = min(scale, e.ChooseScale(segs, work, base))
	}

	fit := e.Sizes(base, scale)
	for _, it := range items {
		it.block.Lines, it.block.Truncated = e.Emit(it.segs, it.rect, fit, rec.Block(it.index))
	}
	page.Fit = &fit

	e.log.Debug("Page laid out",
		zap.Int("page", page.Number),
		zap.Int("blocks", len(items)),
		zap.Float64("base", base),
		zap.Float64("scale", scale))
	return fit
}
