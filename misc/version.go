// Package misc holds build related information.
package misc

import (
	"runtime/debug"
)

// set by linker
var (
	appName = "reflow"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns revision program was built from, falling back to vcs
// information embedded by the toolchain.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
