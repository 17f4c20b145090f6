// Package model defines data exchanged between reflow stages.
package model

import (
	"strings"
)

// Rect is an axis aligned rectangle in page coordinates, y grows down.
type Rect struct {
	X0 float64 `yaml:"x0" json:"x0"`
	Y0 float64 `yaml:"y0" json:"y0"`
	X1 float64 `yaml:"x1" json:"x1"`
	Y1 float64 `yaml:"y1" json:"y1"`
}

func (r Rect) Width() float64 {
	return max(0, r.X1-r.X0)
}

func (r Rect) Height() float64 {
	return max(0, r.Y1-r.Y0)
}

// Empty reports degenerate rectangles, callers must not pass those to layout.
func (r Rect) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Intersects reports whether two rectangles share a non empty area.
func (r Rect) Intersects(o Rect) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Span is an atomic styled fragment produced by extraction.
type Span struct {
	Text string  `yaml:"text" json:"text"`
	Bold bool    `yaml:"bold,omitempty" json:"bold,omitempty"`
	Size float64 `yaml:"size,omitempty" json:"size,omitempty"`
	Font string  `yaml:"font,omitempty" json:"font,omitempty"`
	Rect *Rect   `yaml:"rect,omitempty" json:"rect,omitempty"`
}

// Run is a maximal same-style stretch of block text.
type Run struct {
	Text string
	Bold bool
}

// Segment is a decoded piece of marked text, the unit of layout.
type Segment struct {
	Text string `yaml:"text" json:"text"`
	Bold bool   `yaml:"bold,omitempty" json:"bold,omitempty"`
}

// Piece is a positioned same-style fragment of a laid out line.
type Piece struct {
	Text  string  `yaml:"text" json:"text"`
	Bold  bool    `yaml:"bold,omitempty" json:"bold,omitempty"`
	X     float64 `yaml:"x" json:"x"`
	Width float64 `yaml:"width" json:"width"`
	Size  float64 `yaml:"size" json:"size"`
}

// Line is a single laid out line, Y is its baseline.
type Line struct {
	Y      float64 `yaml:"y" json:"y"`
	Pieces []Piece `yaml:"pieces" json:"pieces"`
}

func (l Line) Text() string {
	var b strings.Builder
	for _, p := range l.Pieces {
		b.WriteString(p.Text)
	}
	return b.String()
}

// FitResult holds page wide font sizes, Bold is always Regular times bold scale.
type FitResult struct {
	Regular float64 `yaml:"regular" json:"regular"`
	Bold    float64 `yaml:"bold" json:"bold"`
	Scale   float64 `yaml:"scale" json:"scale"`
}

// Block is a text region of a page.
type Block struct {
	Text  string `yaml:"text" json:"text"`
	Rect  Rect   `yaml:"rect" json:"rect"`
	Spans []Span `yaml:"spans,omitempty" json:"spans,omitempty"`
	// SpansBackup is written by the correction service before it rewrites
	// Spans and keeps the pristine styling.
	SpansBackup []Span `yaml:"spans_backup,omitempty" json:"spans_backup,omitempty"`

	TranslatedMarked string    `yaml:"translated_marked,omitempty" json:"translated_marked,omitempty"`
	Segments         []Segment `yaml:"segments,omitempty" json:"segments,omitempty"`
	Strategy         string    `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Lines            []Line    `yaml:"lines,omitempty" json:"lines,omitempty"`
	Truncated        bool      `yaml:"truncated,omitempty" json:"truncated,omitempty"`
}

// StyleSpans returns spans carrying original styling: backup when present,
// otherwise spans as extracted. False when block has no styling at all.
func (b *Block) StyleSpans() ([]Span, bool) {
	if len(b.SpansBackup) > 0 {
		return b.SpansBackup, true
	}
	if len(b.Spans) > 0 {
		return b.Spans, true
	}
	return nil, false
}

// Page is a unit of processing, nothing is shared between pages.
type Page struct {
	Number      int        `yaml:"page" json:"page"`
	Width       float64    `yaml:"width,omitempty" json:"width,omitempty"`
	Height      float64    `yaml:"height,omitempty" json:"height,omitempty"`
	SkipRegions []Rect     `yaml:"skip_regions,omitempty" json:"skip_regions,omitempty"`
	Blocks      []*Block   `yaml:"blocks" json:"blocks"`
	Fit         *FitResult `yaml:"fit,omitempty" json:"fit,omitempty"`
	RunID       string     `yaml:"run_id,omitempty" json:"run_id,omitempty"`
}

// Marked text delimiters, no escaping exists for their literal occurrences.
const (
	BoldOpen  = "[[B]]"
	BoldClose = "[[/B]]"
)
