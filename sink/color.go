package sink

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/philipp01105/logshim/formatter"
)

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// colorOutput resolves the color mode for w and returns the writer to use.
// Terminal files are wrapped so ANSI sequences also render on Windows
// consoles.
func colorOutput(w io.Writer, mode formatter.ColorMode) (io.Writer, bool) {
	switch mode {
	case formatter.ColorNever:
		return w, false
	case formatter.ColorAlways:
		if f, ok := w.(*os.File); ok && isTerminal(f) {
			return colorable.NewColorable(f), true
		}
		return w, true
	default:
		if !isTerminal(w) {
			return w, false
		}
		return colorable.NewColorable(w.(*os.File)), true
	}
}
