package notation

import (
	"time"

	"github.com/dlclark/regexp2"
)

const matchTimeout = 2 * time.Second

// Transform is a named pure text rewrite. Apply never fails, on internal
// problems it returns its input unchanged.
type Transform struct {
	Name  string
	Apply func(string) string
}

// Pipeline applies ordered transforms. Order matters: later transforms expect
// text normalized by earlier ones.
type Pipeline struct {
	transforms []Transform
	maxPasses  int
}

// DefaultPasses bounds fixpoint iteration of the pipeline.
const DefaultPasses = 6

// NewPipeline returns pipeline with default transforms. Passing custom
// transforms replaces defaults.
func NewPipeline(transforms ...Transform) *Pipeline {
	if len(transforms) == 0 {
		transforms = DefaultTransforms()
	}
	return &Pipeline{transforms: transforms, maxPasses: DefaultPasses}
}

// DefaultTransforms lists repair transforms in application order.
func DefaultTransforms() []Transform {
	return []Transform{
		{"bold-split", SplitMisplacedBold},
		{"missing-dot", InsertMissingDot},
		{"move-numbers", NormalizeMoveNumbers},
		{"castling", NormalizeCastling},
		{"figurines", NormalizeSymbols},
		{"punctuation", NormalizePunctuation},
		{"san-suffix", StripSANSuffix},
		{"ocr-artifacts", FixOCRArtifacts},
		{"idioms", FixIdioms},
		{"soft-wraps", CollapseSoftWraps},
		{"heading-break", BreakAfterHeading},
		{"blank-lines", CollapseBlankLines},
		{"spaces", CollapseSpaces},
	}
}

// WithPasses changes bound of fixpoint iteration, non positive values are
// ignored.
func (p *Pipeline) WithPasses(n int) *Pipeline {
	if n > 0 {
		p.maxPasses = n
	}
	return p
}

func (p *Pipeline) Transforms() []Transform {
	return p.transforms
}

// Once folds text through every transform a single time.
func (p *Pipeline) Once(text string) string {
	for _, t := range p.transforms {
		text = t.Apply(text)
	}
	return text
}

// Repair folds text through the pipeline until it stops changing, so running
// it again over its own output is a no-op.
func (p *Pipeline) Repair(text string) string {
	for range p.maxPasses {
		next := p.Once(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func re2(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.None)
	re.MatchTimeout = matchTimeout
	return re
}

func re2i(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.IgnoreCase)
	re.MatchTimeout = matchTimeout
	return re
}

func sub2(re *regexp2.Regexp, s, repl string) string {
	out, err := re.Replace(s, repl, -1, -1)
	if err != nil {
		return s
	}
	return out
}

func sub2Func(re *regexp2.Regexp, s string, fn func(m regexp2.Match) string) string {
	out, err := re.ReplaceFunc(s, fn, -1, -1)
	if err != nil {
		return s
	}
	return out
}
