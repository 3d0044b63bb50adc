package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RegionBuilderModel edits the ordered list of regions a template exposes.
// Pages built on the template get one section per region.
type RegionBuilderModel struct {
	regions []string
	cursor  int
	active  bool
	adding  bool
	input   textinput.Model
	err     string
}

func NewRegionBuilder(regions []string) *RegionBuilderModel {
	input := textinput.New()
	input.Placeholder = "region name"
	input.CharLimit = 40
	input.Width = 30

	return &RegionBuilderModel{
		regions: append([]string(nil), regions...),
		input:   input,
	}
}

func (m *RegionBuilderModel) Regions() []string {
	return append([]string(nil), m.regions...)
}

func (m *RegionBuilderModel) Active() bool { return m.active }
func (m *RegionBuilderModel) Adding() bool { return m.adding }

func (m *RegionBuilderModel) Focus() {
	m.active = true
	m.err = ""
}

func (m *RegionBuilderModel) Blur() {
	m.active = false
	m.adding = false
	m.input.Blur()
}

func (m *RegionBuilderModel) Update(msg tea.KeyMsg) tea.Cmd {
	m.err = ""
	if m.adding {
		switch msg.String() {
		case "esc":
			m.adding = false
			m.input.Blur()
			m.input.SetValue("")
			return nil
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				m.err = "region name cannot be empty"
				return nil
			}
			for _, r := range m.regions {
				if r == name {
					m.err = fmt.Sprintf("region %q already exists", name)
					return nil
				}
			}
			m.regions = append(m.regions, name)
			m.cursor = len(m.regions) - 1
			m.adding = false
			m.input.Blur()
			m.input.SetValue("")
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.regions)-1 {
			m.cursor++
		}
	case "a":
		m.adding = true
		return m.input.Focus()
	case "d":
		if len(m.regions) > 0 {
			m.regions = append(m.regions[:m.cursor], m.regions[m.cursor+1:]...)
			if m.cursor >= len(m.regions) && m.cursor > 0 {
				m.cursor--
			}
		}
	case "J":
		// Move region down
		if m.cursor < len(m.regions)-1 {
			m.regions[m.cursor], m.regions[m.cursor+1] = m.regions[m.cursor+1], m.regions[m.cursor]
			m.cursor++
		}
	case "K":
		// Move region up
		if m.cursor > 0 {
			m.regions[m.cursor], m.regions[m.cursor-1] = m.regions[m.cursor-1], m.regions[m.cursor]
			m.cursor--
		}
	}
	return nil
}

func (m *RegionBuilderModel) View(width int) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("REGIONS"))
	b.WriteString("\n\n")

	if len(m.regions) == 0 {
		b.WriteString(DimStyle.Render("  no regions yet, press a to add one"))
		b.WriteString("\n")
	}
	for i, region := range m.regions {
		line := fmt.Sprintf("%d. %s", i+1, region)
		if m.active && i == m.cursor {
			b.WriteString(SelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(NormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if m.adding {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDanger)).Render(m.err))
		b.WriteString("\n")
	}

	border := InactiveBorderStyle
	if m.active {
		border = ActiveBorderStyle
	}
	return border.Width(width).Render(b.String())
}
