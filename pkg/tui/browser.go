package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
	"github.com/cmsdesk/cmsdesk-cli/pkg/utils"
)

type browserItem struct {
	name   string
	title  string
	detail string
}

// BrowserModel lists the stored resources of one kind
type BrowserModel struct {
	kind   models.ResourceKind
	items  []browserItem
	cursor int
	err    error
	loaded bool
	width  int
	height int
}

func NewBrowserModel(kind models.ResourceKind) *BrowserModel {
	return &BrowserModel{kind: kind}
}

func (m *BrowserModel) Init() tea.Cmd {
	return loadResourcesCmd(m.kind)
}

func (m *BrowserModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the name under the cursor, or "" for an empty list
func (m *BrowserModel) Selected() string {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return ""
	}
	return m.items[m.cursor].name
}

func (m *BrowserModel) setItems(items []browserItem, err error) {
	m.loaded = true
	m.err = err
	selected := m.Selected()
	m.items = items
	m.cursor = 0
	for i, item := range items {
		if item.name == selected {
			m.cursor = i
			break
		}
	}
}

func (m *BrowserModel) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		if len(m.items) > 0 {
			m.cursor = len(m.items) - 1
		}
	case "enter", "e":
		if name := m.Selected(); name != "" {
			kind := m.kind
			return func() tea.Msg { return openResourceMsg{kind: kind, name: name} }
		}
	case "y":
		if name := m.Selected(); name != "" {
			return copyResourceCmd(m.kind, name)
		}
	case "d":
		if name := m.Selected(); name != "" {
			kind := m.kind
			return func() tea.Msg { return deleteRequestMsg{kind: kind, name: name} }
		}
	case "n":
		if m.kind == models.KindPage {
			return func() tea.Msg { return newPageRequestMsg{} }
		}
	case "r":
		return loadResourcesCmd(m.kind)
	}
	return nil
}

func (m *BrowserModel) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(strings.ToUpper(m.kind.Plural())))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(EmptyStyle.Render(fmt.Sprintf("Failed to load %s: %v", m.kind.Plural(), m.err)))
		b.WriteString("\n")
	case !m.loaded:
		b.WriteString(DimStyle.Render("Loading..."))
		b.WriteString("\n")
	case len(m.items) == 0:
		b.WriteString(EmptyStyle.Render(fmt.Sprintf("No %s yet.", m.kind.Plural())))
		b.WriteString("\n")
	}

	width := m.width - 6
	if width < 20 {
		width = 20
	}
	for i, item := range m.items {
		line := fmt.Sprintf("%-28s %s", item.title, item.detail)
		line = truncate.StringWithTail(line, uint(width), "…")
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(NormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.help()))
	return ContentPaddingStyle.Render(b.String())
}

func (m *BrowserModel) help() string {
	parts := []string{"↑/↓ move", "enter edit", "y copy", "d delete", "r reload"}
	if m.kind == models.KindPage {
		parts = append(parts, "n new page")
	}
	parts = append(parts, "tab/1-4 switch", "q quit")
	return strings.Join(parts, " • ")
}

func loadResourcesCmd(kind models.ResourceKind) tea.Cmd {
	return func() tea.Msg {
		items, err := loadBrowserItems(kind)
		return resourcesLoadedMsg{kind: kind, items: items, err: err}
	}
}

func loadBrowserItems(kind models.ResourceKind) ([]browserItem, error) {
	names, err := files.ListNames(kind)
	if err != nil {
		return nil, err
	}

	items := make([]browserItem, 0, len(names))
	for _, name := range names {
		item := browserItem{name: name, title: name}
		switch kind {
		case models.KindPage:
			if page, err := files.ReadPage(name); err == nil {
				item.title = page.Title
				item.detail = fmt.Sprintf("%s · %s · %s", page.State, page.Template, utils.FormatStats(page.Body))
			}
		case models.KindTemplate:
			if tmpl, err := files.ReadTemplate(name); err == nil {
				item.detail = fmt.Sprintf("%d region(s)", len(tmpl.Regions))
			}
		case models.KindAsset:
			if asset, err := files.ReadAsset(name); err == nil {
				item.detail = asset.MimeType
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// resourceText returns the text a user would want to paste elsewhere
func resourceText(kind models.ResourceKind, name string) (string, error) {
	switch kind {
	case models.KindPage:
		page, err := files.ReadPage(name)
		if err != nil {
			return "", err
		}
		return page.Body, nil
	case models.KindTemplate:
		tmpl, err := files.ReadTemplate(name)
		if err != nil {
			return "", err
		}
		return tmpl.Markup, nil
	case models.KindAsset:
		asset, err := files.ReadAsset(name)
		if err != nil {
			return "", err
		}
		return asset.Source, nil
	}
	return "", models.ErrUnknownKind
}

func copyResourceCmd(kind models.ResourceKind, name string) tea.Cmd {
	return func() tea.Msg {
		text, err := resourceText(kind, name)
		if err != nil {
			return StatusMsg(fmt.Sprintf("✗ Failed to read %s: %v", name, err))
		}
		if err := clipboard.WriteAll(text); err != nil {
			return StatusMsg(fmt.Sprintf("✗ Failed to copy to clipboard: %v", err))
		}
		return StatusMsg(fmt.Sprintf("✓ Copied %s %s to clipboard", kind.Label(), name))
	}
}
