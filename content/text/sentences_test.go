package text

import (
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"
)

var paras = []string{
	`Białe zagrały słabo. Po 16. Bxd6 czarne przejmują inicjatywę! Czy to koniec? Nie.`,
	`16. Bxd6 to błąd. Lepsze było 16. Nf3, zachowując przewagę.`,
	`White is better. The bishop on d6 is strong, e.g. after 17. O-O-O Black cannot castle.`,
	`Jedno zdanie bez kropki`,
	`  Spacje na początku. I na końcu.  `,
}

func TestSplitterKeepsText(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	s := NewSplitter(language.Polish, log)
	if s == nil {
		t.Fatal("unable to create splitter")
	}
	for _, p := range paras {
		got := s.Split(p)
		if joined := strings.Join(got, ""); joined != p {
			t.Errorf("Split(%q) lost text: %q", p, joined)
		}
		var iterated []string
		for sentence := range s.Sentences(p) {
			iterated = append(iterated, sentence)
		}
		if !slices.Equal(got, iterated) {
			t.Errorf("Sentences(%q) = %q, Split = %q", p, iterated, got)
		}
	}
}

func TestSplitterMoveNumbers(t *testing.T) {
	s := NewSplitter(language.English, zap.NewNop())
	got := s.Split(paras[1])
	if len(got) == 0 || !strings.HasPrefix(got[0], "16. Bxd6 to błąd.") {
		t.Errorf("first sentence = %q", got)
	}
	for _, sentence := range got {
		if moveNumberTailRe.MatchString(sentence) && sentence != got[len(got)-1] {
			t.Errorf("sentence ends with move number: %q", sentence)
		}
	}
}

func TestNilSplitter(t *testing.T) {
	var s *Splitter
	if got := s.Split("a. b."); !slices.Equal(got, []string{"a. b."}) {
		t.Errorf("nil splitter Split() = %q", got)
	}
	if got := s.Split(""); got != nil {
		t.Errorf("nil splitter Split(\"\") = %q", got)
	}
}

func TestNonLatinScript(t *testing.T) {
	if s := NewSplitter(language.Russian, zap.NewNop()); s != nil {
		t.Errorf("expected splitting to be off for cyrillic")
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		ignoreNBSP bool
		want       []string
	}{
		{"plain", "16. Bxd6 to błąd", false, []string{"16.", "Bxd6", "to", "błąd"}},
		{"repeated separators", "a  \n\tb", false, []string{"a", "b"}},
		{"nbsp glues", "16. Bxd6 to", false, []string{"16. Bxd6", "to"}},
		{"nbsp separates", "16. Bxd6 to", true, []string{"16.", "Bxd6", "to"}},
		{"unicode space", "a b", false, []string{"a", "b"}},
		{"empty", "", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitWords(tt.in, tt.ignoreNBSP); !slices.Equal(got, tt.want) {
				t.Errorf("SplitWords(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWordsEarlyStop(t *testing.T) {
	var got []string
	for w := range Words("a b c d", false) {
		got = append(got, w)
		if len(got) == 2 {
			break
		}
	}
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Words() = %q", got)
	}
}
