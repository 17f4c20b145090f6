package style

import (
	"slices"
	"strings"
	"testing"

	"reflow/model"
)

func TestProjectDegenerate(t *testing.T) {
	p := Projector{Window: 24}
	if got := p.Project([]model.Run{{Text: "x", Bold: true}}, ""); got != nil {
		t.Errorf("empty target = %+v", got)
	}
	if got := p.Project(nil, "to błąd"); !slices.Equal(got, []model.Run{{Text: "to błąd"}}) {
		t.Errorf("no runs = %+v", got)
	}
	if got := p.Project([]model.Run{{Text: "16.", Bold: true}}, "to błąd"); !slices.Equal(got, []model.Run{{Text: "to błąd", Bold: true}}) {
		t.Errorf("single run = %+v", got)
	}
}

func TestProjectProportional(t *testing.T) {
	p := Projector{Window: 24}
	runs := []model.Run{{Text: "aaaa", Bold: true}, {Text: "bbbb"}, {Text: "cccc", Bold: true}}
	target := "xx yy zz ww qq rr"

	got := p.Project(runs, target)
	var joined strings.Builder
	for _, r := range got {
		joined.WriteString(r.Text)
	}
	if joined.String() != target {
		t.Fatalf("Project() lost text: %+v", got)
	}
	want := []model.Run{{Text: "xx yy ", Bold: true}, {Text: "zz ww"}, {Text: " qq rr", Bold: true}}
	if !slices.Equal(got, want) {
		t.Errorf("Project() = %+v, want %+v", got, want)
	}
	if got := (Projector{}).Project(runs, target); !slices.Equal(got, want) {
		t.Errorf("default window Project() = %+v, want %+v", got, want)
	}
}

func TestProjectNeverSplitsWordsWithinWindow(t *testing.T) {
	p := Projector{Window: 24}
	runs := []model.Run{{Text: "16. Bxd6", Bold: true}, {Text: " is a mistake here."}}
	target := "16. Bxd6 to poważny błąd tutaj."
	got := p.Project(runs, target)
	if len(got) != 2 {
		t.Fatalf("Project() = %+v", got)
	}
	cut := len(got[0].Text)
	if !strings.HasSuffix(got[0].Text, " ") && !strings.HasPrefix(target[cut:], " ") {
		t.Errorf("cut splits a word: %+v", got)
	}
}

func TestProjectMergesCollapsedRuns(t *testing.T) {
	p := Projector{Window: 24}
	// middle run gets zero length
	runs := []model.Run{{Text: "aaaaaaaaaa", Bold: true}, {Text: "b"}, {Text: "cccccccccc", Bold: true}}
	got := p.Project(runs, "ab")
	if !slices.Equal(got, []model.Run{{Text: "ab", Bold: true}}) {
		t.Errorf("Project() = %+v", got)
	}
}

func TestSnapCut(t *testing.T) {
	text := []rune("abc def ghi")
	tests := []struct {
		cut, window, want int
	}{
		{3, 24, 3},   // already at boundary
		{5, 24, 4},   // left looked at first
		{6, 24, 7},   // right is closer
		{5, 0, 5},    // no window
		{0, 24, 0},   // lower bound
		{11, 24, 11}, // upper bound
		{-4, 24, 0},  // clamped
	}
	for _, tt := range tests {
		if got := snapCut(text, tt.cut, 0, len(text), tt.window); got != tt.want {
			t.Errorf("snapCut(%d, window %d) = %d, want %d", tt.cut, tt.window, got, tt.want)
		}
	}
}
