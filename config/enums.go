package config

//go:generate go tool go-enum --marshal --names

// Specification of page document output format.
// ENUM(yaml, json)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtYaml:
		return ".yaml"
	case OutputFmtJson:
		return ".json"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Specification of page preview rendering.
// ENUM(none, svg, png)
type PreviewFmt int

func (p PreviewFmt) Ext() string {
	switch p {
	case PreviewFmtSvg:
		return ".svg"
	case PreviewFmtPng:
		return ".png"
	}
	return ""
}

// Translation engine.
// ENUM(none, openai)
type TranslatorEngine string
