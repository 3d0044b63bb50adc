package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// NewPageDialog asks for a title and a template and creates a draft page
type NewPageDialog struct {
	active    bool
	title     textinput.Model
	templates []string
	selected  int
	err       string
}

func NewNewPageDialog() *NewPageDialog {
	ti := textinput.New()
	ti.Placeholder = "Page title"
	ti.CharLimit = 120
	ti.Width = 40
	return &NewPageDialog{title: ti}
}

func (d *NewPageDialog) Active() bool { return d.active }

// Open shows the dialog, preselecting defaultTemplate when it exists
func (d *NewPageDialog) Open(defaultTemplate string) tea.Cmd {
	templates, err := files.ListTemplates()
	d.active = true
	d.err = ""
	d.templates = templates
	d.selected = 0
	if err != nil {
		d.err = err.Error()
	}
	for i, name := range templates {
		if name == defaultTemplate {
			d.selected = i
		}
	}
	d.title.SetValue("")
	return d.title.Focus()
}

func (d *NewPageDialog) Close() {
	d.active = false
	d.title.Blur()
}

func (d *NewPageDialog) template() string {
	if d.selected < 0 || d.selected >= len(d.templates) {
		return ""
	}
	return d.templates[d.selected]
}

func (d *NewPageDialog) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		d.Close()
		return nil
	case "tab", "ctrl+n":
		if len(d.templates) > 0 {
			d.selected = (d.selected + 1) % len(d.templates)
		}
		return nil
	case "shift+tab", "ctrl+p":
		if len(d.templates) > 0 {
			d.selected = (d.selected - 1 + len(d.templates)) % len(d.templates)
		}
		return nil
	case "enter":
		title := strings.TrimSpace(d.title.Value())
		if title == "" {
			d.err = "title cannot be empty"
			return nil
		}
		page, err := files.NewPageFromTemplate(title, d.template())
		if err != nil {
			d.err = err.Error()
			return nil
		}
		d.Close()
		return func() tea.Msg { return pageCreatedMsg{page: page} }
	}

	var cmd tea.Cmd
	d.title, cmd = d.title.Update(msg)
	d.err = ""
	return cmd
}

func (d *NewPageDialog) View(width int) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("New page"))
	b.WriteString("\n\n")
	b.WriteString(d.title.View())
	b.WriteString("\n\n")

	tmpl := d.template()
	if tmpl == "" {
		tmpl = "(no templates)"
	}
	b.WriteString(fmt.Sprintf("Template: %s", SelectedStyle.Render(tmpl)))
	if slug := models.Slugify(d.title.Value()); slug != "" {
		b.WriteString(DimStyle.Render(fmt.Sprintf("   slug: %s", slug)))
	}
	b.WriteString("\n")

	if d.err != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDanger)).Render(d.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter create • tab next template • esc cancel"))

	if width <= 0 || width > 70 {
		width = 70
	}
	return ActiveBorderStyle.Width(width).Padding(0, 1).Render(b.String())
}
