package config

import (
	"os"
	"testing"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"partia-lodz-0007", "partia-lodz-0007"},
		{"a" + string(os.PathSeparator) + "b", "ab"},
		{"a" + string(os.PathListSeparator) + "b", "ab"},
		{".hidden", "hidden"},
		{"page. ", "page"},
		{"tab\there\x00", "tabhere"},
		{"...", fallbackFileName},
		{"", fallbackFileName},
		{"Партия 3", "Партия 3"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
