package layout

import (
	"math"
	"path/filepath"
	"testing"

	"reflow/config"
)

func TestApproxMetrics(t *testing.T) {
	m := ApproxMetrics{CharWidth: 0.6}
	if got := m.TextWidth("błąd", 10, Regular); math.Abs(got-24) > 1e-9 {
		t.Errorf("TextWidth() = %v, want 24", got)
	}
	if got := (ApproxMetrics{}).TextWidth("ab", 10, Bold); math.Abs(got-12) > 1e-9 {
		t.Errorf("zero char width must fall back, got %v", got)
	}
}

func TestFontMetrics(t *testing.T) {
	m, err := NewFontMetrics(&config.FontsConfig{}, 0.6)
	if err != nil {
		t.Fatalf("NewFontMetrics() error = %v", err)
	}
	if m.Font(Regular) == nil || m.Font(Bold) == nil {
		t.Fatalf("built-in fonts not loaded")
	}

	for _, s := range []string{"16. Bxd6", "to błąd", "O-O-O"} {
		small := m.TextWidth(s, 10, Regular)
		if small <= 0 {
			t.Errorf("TextWidth(%q) = %v", s, small)
		}
		if big := m.TextWidth(s, 20, Regular); math.Abs(big-2*small) > 1e-6 {
			t.Errorf("TextWidth(%q) does not scale with size: %v vs %v", s, small, big)
		}
		// cached advances give the same answer
		if again := m.TextWidth(s, 10, Regular); again != small {
			t.Errorf("TextWidth(%q) changed between calls", s)
		}
	}
	if reg, bold := m.TextWidth("Bxd6", 10, Regular), m.TextWidth("Bxd6", 10, Bold); bold <= reg {
		t.Errorf("bold %v is not wider than regular %v", bold, reg)
	}
	if got := m.TextWidth("", 10, Regular); got != 0 {
		t.Errorf("empty text width %v", got)
	}
	// no glyph in built-in fonts
	if got := m.TextWidth("\U0001F600", 10, Regular); math.Abs(got-6) > 1e-9 {
		t.Errorf("missing glyph width %v, want 6", got)
	}
}

func TestFontMetricsErrors(t *testing.T) {
	if _, err := NewFontMetrics(&config.FontsConfig{Regular: filepath.Join(t.TempDir(), "missing.ttf")}, 0.6); err == nil {
		t.Errorf("expected error for missing font")
	}
}
