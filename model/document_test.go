package model

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadPageYAML(t *testing.T) {
	src := `
page: 3
width: 595
height: 842
skip_regions:
  - {x0: 10, y0: 10, x1: 200, y1: 200}
blocks:
  - text: "16. Bxd6 is a mistake."
    rect: {x0: 50, y0: 100, x1: 300, y1: 140}
    spans:
      - {text: "16.", bold: true, size: 10.5}
      - {text: " Bxd6 is a mistake.", size: 10.5}
    spans_backup:
      - {text: "16. Bxd6", bold: true, size: 10.5}
`
	page, err := ReadPage(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadPage() error = %v", err)
	}
	if page.Number != 3 || len(page.Blocks) != 1 || len(page.SkipRegions) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	spans, ok := page.Blocks[0].StyleSpans()
	if !ok || len(spans) != 1 || spans[0].Text != "16. Bxd6" {
		t.Errorf("StyleSpans() = %v, %v, want backup", spans, ok)
	}
}

func TestReadPageJSON(t *testing.T) {
	src := `{"page": 1, "blocks": [{"text": "e4", "rect": {"x0": 0, "y0": 0, "x1": 10, "y1": 10}}]}`
	page, err := ReadPage(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadPage() error = %v", err)
	}
	if _, ok := page.Blocks[0].StyleSpans(); ok {
		t.Errorf("block without spans must report no styling")
	}
}

func TestReadPageErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"unknown field", "page: 1\nbogus: true\n"},
		{"null block", "page: 1\nblocks:\n  - null\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadPage(strings.NewReader(tt.src)); err == nil {
				t.Errorf("ReadPage() expected error")
			}
		})
	}
}

func TestWritePage(t *testing.T) {
	page := &Page{Number: 7, Blocks: []*Block{{Text: "a", Rect: Rect{0, 0, 1, 1}, TranslatedMarked: "[[B]]a[[/B]]"}}}
	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WritePage(&buf, page, format); err != nil {
				t.Fatalf("WritePage() error = %v", err)
			}
			back, err := ReadPage(&buf)
			if err != nil {
				t.Fatalf("ReadPage() error = %v", err)
			}
			if back.Number != 7 || back.Blocks[0].TranslatedMarked != "[[B]]a[[/B]]" {
				t.Errorf("unexpected page after write: %+v", back)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := Rect{10, 10, 20, 30}
	if r.Width() != 10 || r.Height() != 20 || r.Empty() {
		t.Errorf("unexpected geometry for %+v", r)
	}
	if !(Rect{5, 5, 5, 9}).Empty() {
		t.Errorf("zero width rect must be empty")
	}
	if !r.Intersects(Rect{15, 0, 40, 15}) || r.Intersects(Rect{20, 10, 30, 30}) {
		t.Errorf("unexpected intersection result")
	}
}
