// Package preview renders laid out pages for visual inspection.
package preview

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"reflow/model"
)

// A4 in points, used when page document carries no size.
const (
	defaultWidth  = 595
	defaultHeight = 842
)

const (
	fontFamily   = "Go, sans-serif"
	frameColor   = "#3070c0"
	overrunColor = "#d03030"
	regionColor  = "#909090"
)

// pageSize returns page dimensions, falling back to the extent of page
// content.
func pageSize(page *model.Page) (float64, float64) {
	w, h := page.Width, page.Height
	if w > 0 && h > 0 {
		return w, h
	}
	var ew, eh float64
	for _, b := range page.Blocks {
		ew, eh = max(ew, b.Rect.X1), max(eh, b.Rect.Y1)
		for _, l := range b.Lines {
			eh = max(eh, l.Y)
			for _, p := range l.Pieces {
				ew = max(ew, p.X+p.Width)
			}
		}
	}
	for _, r := range page.SkipRegions {
		ew, eh = max(ew, r.X1), max(eh, r.Y1)
	}
	if w <= 0 {
		w = max(ew, defaultWidth)
	}
	if h <= 0 {
		h = max(eh, defaultHeight)
	}
	return w, h
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func addRect(parent *etree.Element, r model.Rect, stroke string, dashed bool) *etree.Element {
	el := parent.CreateElement("rect")
	el.CreateAttr("x", num(r.X0))
	el.CreateAttr("y", num(r.Y0))
	el.CreateAttr("width", num(r.Width()))
	el.CreateAttr("height", num(r.Height()))
	el.CreateAttr("fill", "none")
	el.CreateAttr("stroke", stroke)
	el.CreateAttr("stroke-width", "0.5")
	if dashed {
		el.CreateAttr("stroke-dasharray", "4 2")
	}
	return el
}

// document builds page drawing. Text is left out when it is going to be
// drawn separately.
func document(page *model.Page, withText bool) *etree.Document {
	w, h := pageSize(page)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("version", "1.1")
	svg.CreateAttr("width", num(w))
	svg.CreateAttr("height", num(h))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", num(w), num(h)))

	bg := svg.CreateElement("rect")
	bg.CreateAttr("width", num(w))
	bg.CreateAttr("height", num(h))
	bg.CreateAttr("fill", "#ffffff")

	regions := svg.CreateElement("g")
	regions.CreateAttr("id", "skip-regions")
	for _, r := range page.SkipRegions {
		addRect(regions, r, regionColor, true)
	}

	for i, b := range page.Blocks {
		g := svg.CreateElement("g")
		g.CreateAttr("id", fmt.Sprintf("block-%d", i))
		if b.Strategy != "" {
			g.CreateAttr("class", b.Strategy)
		}
		stroke := frameColor
		if b.Truncated {
			stroke = overrunColor
		}
		addRect(g, b.Rect, stroke, false)
		if !withText {
			continue
		}
		for _, l := range b.Lines {
			for _, p := range l.Pieces {
				if p.Text == "" {
					continue
				}
				t := g.CreateElement("text")
				t.CreateAttr("x", num(p.X))
				t.CreateAttr("y", num(l.Y))
				t.CreateAttr("font-family", fontFamily)
				t.CreateAttr("font-size", num(p.Size))
				if p.Bold {
					t.CreateAttr("font-weight", "bold")
				}
				t.CreateAttr("xml:space", "preserve")
				t.SetText(p.Text)
			}
		}
	}
	return doc
}

// SVG renders laid out page with block frames, skip regions and text.
func SVG(page *model.Page) ([]byte, error) {
	doc := document(page, true)
	doc.Indent(2)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("unable to write page %d preview: %w", page.Number, err)
	}
	return buf.Bytes(), nil
}
