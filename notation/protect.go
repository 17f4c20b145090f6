package notation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var protectRes = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,3}\s*\.(?:\s*\.\.)?`),
	regexp.MustCompile(`\b[KQRBN]?[a-h]?[1-8]?x?[a-h][1-8](?:=[QRBN])?[+#!?]*`),
	regexp.MustCompile(`\b[O0]-[O0](?:-[O0])?[+#!?]*`),
	regexp.MustCompile(`(?:1-0|0-1|1/2-1/2)`),
}

// Protected keeps text with notation replaced by opaque placeholders and the
// original fragments needed to restore it.
type Protected struct {
	Text      string
	Fragments []string
}

func placeholder(i int) string {
	return fmt.Sprintf("<<<CHESS_%d>>>", i)
}

// Protect replaces every notation fragment with a numbered placeholder so it
// survives translation verbatim.
func Protect(text string) Protected {
	type span struct{ start, end int }

	var found []span
	for _, re := range protectRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			found = append(found, span{loc[0], loc[1]})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].start != found[j].start {
			return found[i].start < found[j].start
		}
		return found[i].end > found[j].end
	})

	var (
		b    strings.Builder
		frag []string
		pos  int
	)
	for _, s := range found {
		if s.start < pos {
			// overlaps with already protected fragment
			continue
		}
		b.WriteString(text[pos:s.start])
		b.WriteString(placeholder(len(frag)))
		frag = append(frag, text[s.start:s.end])
		pos = s.end
	}
	b.WriteString(text[pos:])
	return Protected{Text: b.String(), Fragments: frag}
}

// Restore puts protected fragments back into (translated) text. Placeholders
// lost by translation are ignored.
func (p Protected) Restore(text string) string {
	if len(p.Fragments) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(p.Fragments))
	for i, f := range p.Fragments {
		pairs = append(pairs, placeholder(i), f)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Missing returns number of placeholders absent from text.
func (p Protected) Missing(text string) int {
	var n int
	for i := range p.Fragments {
		if !strings.Contains(text, placeholder(i)) {
			n++
		}
	}
	return n
}
