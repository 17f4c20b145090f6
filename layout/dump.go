package layout

import (
	"reflow/model"
	"reflow/utils/debug"
)

// Dump renders laid out page as a tree for the debug report.
func Dump(page *model.Page) []byte {
	tw := debug.NewTreeWriter()
	tw.Line(0, "page %d", page.Number)
	if page.Fit != nil {
		tw.Number(1, "regular", page.Fit.Regular)
		tw.Number(1, "bold", page.Fit.Bold)
		tw.Number(1, "scale", page.Fit.Scale)
	}
	for i, b := range page.Blocks {
		tw.Line(1, "block %d", i)
		tw.Text(2, "strategy", b.Strategy)
		tw.Text(2, "marked", b.TranslatedMarked)
		if b.Truncated {
			tw.Line(2, "truncated")
		}
		for _, l := range b.Lines {
			tw.Number(2, "line", l.Y)
			for _, p := range l.Pieces {
				label := "regular"
				if p.Bold {
					label = "bold"
				}
				tw.Text(3, label, p.Text)
			}
		}
	}
	return tw.Bytes()
}
