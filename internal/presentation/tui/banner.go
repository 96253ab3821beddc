package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerColors = []string{"#38bdf8", "#22d3ee", "#2dd4bf", "#34d399", "#4ade80"}

var bannerLines = []string{
	"              _ _                       ",
	"  _   _ _ __ (_) |_ ___ ___  _ ____   __",
	" | | | | '_ \\| | __/ __/ _ \\| '_ \\ \\ / /",
	" | |_| | | | | | || (_| (_) | | | \\ V / ",
	"  \\__,_|_| |_|_|\\__\\___\\___/|_| |_|\\_/  ",
}

// Printer writes styled REPL output. Colors degrade to plain text when w is not a terminal.
type Printer struct {
	out *termenv.Output
}

// NewPrinter creates a Printer on w.
func NewPrinter(w io.Writer, opts ...termenv.OutputOption) *Printer {
	return &Printer{out: termenv.NewOutput(w, opts...)}
}

// Banner outputs the ASCII art banner followed by the version.
func (p *Printer) Banner(version string) {
	fmt.Fprintln(p.out)
	for i, line := range bannerLines {
		fmt.Fprintln(p.out, p.out.String(line).Foreground(p.out.Color(bannerColors[i%len(bannerColors)])))
	}
	fmt.Fprintln(p.out, p.out.String("  v"+version).Faint())
	fmt.Fprintln(p.out)
}

// Result prints the current conversion, e.g. "[Distance] 100000.0 Meters".
// invalid marks results that carry no number.
func (p *Printer) Result(mode, result string, invalid bool) {
	color := "#4ade80"
	if invalid {
		color = "#f87171"
	}
	tag := p.out.String("[" + mode + "]").Faint()
	value := p.out.String(result).Bold().Foreground(p.out.Color(color))
	fmt.Fprintf(p.out, "%s %s\n", tag, value)
}

// System prints a standardized system message.
func (p *Printer) System(format string, args ...any) {
	fmt.Fprintf(p.out, ">>> %s\n", fmt.Sprintf(format, args...))
}

// Prompt prints the input prompt without a newline.
func (p *Printer) Prompt() {
	fmt.Fprint(p.out, p.out.String("> ").Foreground(p.out.Color("#38bdf8")))
}
