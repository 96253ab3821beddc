package tui

import (
	"github.com/charmbracelet/glamour"
)

// HelpMarkdown documents the REPL commands.
const HelpMarkdown = `# unitconv

Type a number and press Enter to convert it with the current mode.

| Command | Effect |
|---|---|
| ` + "`:mode <name>`" + ` | Select Distance, Temperature or Weight |
| ` + "`:modes`" + ` | List the supported conversions |
| ` + "`:state`" + ` | Show the session state |
| ` + "`:help`" + ` | Show this help |
| ` + "`:quit`" + ` | Leave |

Anything that is not a number converts as 0.
`

// NewRenderer returns a function that renders markdown using glamour.
// An empty style detects light or dark backgrounds automatically.
func NewRenderer(style string) (func(string) (string, error), error) {
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(80))
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
