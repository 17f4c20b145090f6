package config

import (
	"os"
	"strings"
	"unicode"
)

// fallbackFileName replaces page output names which have nothing usable left.
const fallbackFileName = "_page_"

// CleanFileName makes a single path element out of book name or page label:
// separators, control characters and characters the platform rejects are
// dropped, leading dots and trailing dots and spaces are trimmed.
func CleanFileName(in string) string {
	drop := string(os.PathSeparator) + string(os.PathListSeparator) + forbiddenNameRunes
	out := strings.Map(func(sym rune) rune {
		if sym == 0 || unicode.IsControl(sym) || strings.ContainsRune(drop, sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimRight(strings.TrimLeft(out, ". "), ". ")
	if len(out) == 0 {
		return fallbackFileName
	}
	return out
}
