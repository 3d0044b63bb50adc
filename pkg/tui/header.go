package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = "cmsdesk"

// renderHeader draws the tab bar with the logo on the right
func renderHeader(width int, tabs []string, active int, modified bool) string {
	var rendered []string
	for i, name := range tabs {
		label := name
		if i == active && modified {
			label += " •"
		}
		if i == active {
			rendered = append(rendered, ActiveTabStyle.Render(label))
		} else {
			rendered = append(rendered, TabStyle.Render(label))
		}
	}
	tabBar := strings.Join(rendered, " ")

	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBrand)).
		Bold(true)
	logoRendered := logoStyle.Render(logo)

	gap := width - 2 - lipgloss.Width(tabBar) - lipgloss.Width(logoRendered)
	if gap < 1 {
		gap = 1
	}

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	return headerPadding.Render(tabBar + strings.Repeat(" ", gap) + logoRendered)
}
