package colors

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// COLOR is an ANSI escape sequence. NONE writes text unchanged.
type COLOR string

const (
	NONE        COLOR = ""
	RESET       COLOR = "\033[0m"
	BOLD        COLOR = "\033[1m"
	RED         COLOR = "\033[31m"
	GREEN       COLOR = "\033[32m"
	YELLOW      COLOR = "\033[33m"
	BLUE        COLOR = "\033[34m"
	PURPLE      COLOR = "\033[35m"
	CYAN        COLOR = "\033[36m"
	GREY        COLOR = "\033[90m"
	BOLD_RED    COLOR = "\033[1;31m"
	BOLD_GREEN  COLOR = "\033[1;32m"
	BOLD_YELLOW COLOR = "\033[1;33m"
	BOLD_PURPLE COLOR = "\033[1;35m"
	BOLD_CYAN   COLOR = "\033[1;36m"
	ORANGE      COLOR = "\033[38;5;208m"
)

// IsTerminal reports whether w is a terminal, the default condition for
// colouring output.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Enabled decides colouring for w from a mode of "always", "never" or "auto".
func Enabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return os.Getenv("NO_COLOR") == "" && IsTerminal(w)
}
