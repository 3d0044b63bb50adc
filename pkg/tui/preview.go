package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// renderMarkdown renders page bodies for the preview pane. When glamour
// cannot build a renderer the body is only wrapped.
func renderMarkdown(body string, width int) string {
	if width < 20 {
		width = 20
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, err := renderer.Render(body); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return wordwrap.String(body, width)
}
