//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

const forbiddenNameRunes = `<>":/\|?*`

// EnableColorOutput checks if log stream is a console able to show colors,
// VT100 processing is switched on for it.
func EnableColorOutput(stream *os.File) bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	if err != nil {
		return false
	}

	if v < 10 || !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	var mode uint32
	if err := windows.GetConsoleMode(windows.Handle(stream.Fd()), &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(windows.Handle(stream.Fd()), mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
