// Package term provides terminal detection and ANSI color state.
//
// [Configure] resolves the color mode once during startup; logging picks its
// level encoder from the result, and display gates the banner, accents and
// the progress spinner on it. When colors are disabled the accent variables
// are empty strings, making string concatenation a no-op.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/panomux/internal/config"
)

// ANSI accent codes used by display output. Empty when colors are disabled.
var (
	Bold    = ""
	Green   = ""
	Yellow  = ""
	Red     = ""
	Magenta = ""
	NC      = "" // Reset sequence.
)

var enabled bool

// Configure resolves the color mode and sets the package color state.
// Call once during startup, before the logger is built.
func Configure(mode config.ColorMode) {
	enabled = resolve(mode)
	if enabled {
		Bold = "\033[1m"
		Green = "\033[1;92m"
		Yellow = "\033[1;93m"
		Red = "\033[1;91m"
		Magenta = "\033[1;95m"
		NC = "\033[0m"
	} else {
		Bold, Green, Yellow, Red, Magenta, NC = "", "", "", "", "", ""
	}
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return enabled }

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
