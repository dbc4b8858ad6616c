package display

import (
	"fmt"
	"os"

	"github.com/backmassage/panomux/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are
// enabled. It stays quiet when stdout is not a terminal so piped output
// carries data only.
func PrintBanner() {
	if !term.IsTerminal(os.Stdout) {
		return
	}
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` ____                   __  __
|  _ \ __ _ _ __   ___ |  \/  |_   ___  __
| |_) / _`+"`"+` | '_ \ / _ \| |\/| | | | \ \/ /
|  __/ (_| | | | | (_) | |  | | |_| |>  <
|_|   \__,_|_| |_|\___/|_|  |_|\__,_/_/\_\
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
