// Package debug formats human readable dumps stored in debug report.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented outline of nested items.
type TreeWriter struct {
	b      strings.Builder
	indent string
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{indent: "  "}
}

func (tw *TreeWriter) String() string {
	return tw.b.String()
}

func (tw *TreeWriter) Bytes() []byte {
	return []byte(tw.b.String())
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.b.WriteString(tw.indent)
	}
}

// Line writes formatted line at requested depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(&tw.b, format, args...)
	tw.b.WriteByte('\n')
}

// Text writes labeled text value, quoted so line breaks and markers stay
// visible.
func (tw *TreeWriter) Text(depth int, label, value string) {
	tw.pad(depth)
	tw.b.WriteString(label)
	tw.b.WriteString(": ")
	tw.b.WriteString(quote(value))
	tw.b.WriteByte('\n')
}

// Number writes labeled value with two decimals, enough for page geometry.
func (tw *TreeWriter) Number(depth int, label string, value float64) {
	tw.pad(depth)
	tw.b.WriteString(label)
	tw.b.WriteString(": ")
	tw.b.WriteString(strconv.FormatFloat(value, 'f', 2, 64))
	tw.b.WriteByte('\n')
}

func quote(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
