// Package layout fits mixed style text into page rectangles.
package layout

import (
	"fmt"
	"os"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"reflow/config"
)

// Family selects font used for measuring and drawing.
type Family int

const (
	Regular Family = iota
	Bold
)

func familyOf(bold bool) Family {
	if bold {
		return Bold
	}
	return Regular
}

func (f Family) String() string {
	if f == Bold {
		return "bold"
	}
	return "regular"
}

// Metrics measures text in layout units (points).
type Metrics interface {
	TextWidth(text string, size float64, family Family) float64
}

// ApproxMetrics assumes every character has the same advance, used when real
// fonts are not available.
type ApproxMetrics struct {
	CharWidth float64
}

func (m ApproxMetrics) TextWidth(text string, size float64, _ Family) float64 {
	cw := m.CharWidth
	if cw <= 0 {
		cw = 0.6
	}
	return float64(utf8.RuneCountInString(text)) * size * cw
}

type glyphKey struct {
	family Family
	r      rune
}

// FontMetrics measures text with real font advances and kerning. Advances are
// cached in font units so any size is a multiplication away.
type FontMetrics struct {
	fonts    [2]*sfnt.Font
	fallback ApproxMetrics

	mu       sync.Mutex
	buf      sfnt.Buffer
	advances map[glyphKey]float64
}

// NewFontMetrics loads configured fonts, built-in Go fonts are used for any
// font not configured.
func NewFontMetrics(cfg *config.FontsConfig, fallbackCharWidth float64) (*FontMetrics, error) {
	m := &FontMetrics{
		fallback: ApproxMetrics{CharWidth: fallbackCharWidth},
		advances: make(map[glyphKey]float64),
	}
	for family, src := range map[Family]struct {
		path    string
		builtin []byte
	}{
		Regular: {cfg.Regular, goregular.TTF},
		Bold:    {cfg.Bold, gobold.TTF},
	} {
		data := src.builtin
		if src.path != "" {
			var err error
			if data, err = os.ReadFile(src.path); err != nil {
				return nil, fmt.Errorf("unable to read %s font: %w", family, err)
			}
		}
		f, err := sfnt.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("unable to parse %s font: %w", family, err)
		}
		m.fonts[family] = f
	}
	return m, nil
}

// Font returns parsed font for the family, used for drawing previews.
func (m *FontMetrics) Font(family Family) *sfnt.Font {
	return m.fonts[family]
}

func (m *FontMetrics) TextWidth(text string, size float64, family Family) float64 {
	f := m.fonts[family]
	if f == nil {
		return m.fallback.TextWidth(text, size, family)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	upem := float64(f.UnitsPerEm())
	ppem := fixed.Int26_6(f.UnitsPerEm()) << 6

	var (
		units float64
		prev  sfnt.GlyphIndex
	)
	for i, r := range text {
		idx, err := f.GlyphIndex(&m.buf, r)
		if err != nil || idx == 0 {
			units += m.fallback.CharWidth * upem
			prev = 0
			continue
		}
		units += m.advance(f, family, r, idx, ppem, upem)
		if i > 0 && prev != 0 {
			if k, err := f.Kern(&m.buf, prev, idx, ppem, font.HintingNone); err == nil {
				units += float64(k) / 64
			}
		}
		prev = idx
	}
	return units / upem * size
}

func (m *FontMetrics) advance(f *sfnt.Font, family Family, r rune, idx sfnt.GlyphIndex, ppem fixed.Int26_6, upem float64) float64 {
	key := glyphKey{family: family, r: r}
	if adv, ok := m.advances[key]; ok {
		return adv
	}
	adv := m.fallback.CharWidth * upem
	if a, err := f.GlyphAdvance(&m.buf, idx, ppem, font.HintingNone); err == nil {
		adv = float64(a) / 64
	}
	m.advances[key] = adv
	return adv
}
