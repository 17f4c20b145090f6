package layout

//go:generate go tool go-enum --names

// State of line emission.
// ENUM(accumulating, line-full, page-exhausted)
type State int
