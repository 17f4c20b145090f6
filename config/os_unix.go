//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

// only separators are rejected
const forbiddenNameRunes = ""

// EnableColorOutput checks if log stream is a terminal.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
