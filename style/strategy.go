package style

//go:generate go tool go-enum --marshal --names

// Strategy names the way bold layout of a block was restored.
// ENUM(empty, plain, trusted, notation-prefix, ratio, sentence, notation-lines, first-line, patterns, headings, first-delimiter, projection)
type Strategy string

// Exact reports strategies which locate bold boundaries from the text itself
// rather than from proportions.
func (s Strategy) Exact() bool {
	switch s {
	case StrategyRatio, StrategyProjection, StrategyFirstLine, StrategyFirstDelimiter:
		return false
	}
	return true
}
