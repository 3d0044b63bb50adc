package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cmsdesk/cmsdesk-cli/pkg/dirty"
)

// ConfirmationType defines the visual style of the confirmation
type ConfirmationType int

const (
	ConfirmTypeInline ConfirmationType = iota // Simple inline message
	ConfirmTypeDialog                         // Full dialog with border and centered layout
)

// ConfirmationConfig holds the configuration for a yes/no prompt
type ConfirmationConfig struct {
	Title       string
	Message     string
	Warning     string // shown in orange
	Destructive bool   // If true, Yes is red, No is green
	Type        ConfirmationType
	YesLabel    string
	NoLabel     string
	Width       int
}

// ConfirmationModel renders yes/no prompts and the unsaved-changes
// prompts raised by the dirty guard. It implements dirty.Presenter.
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd

	prompt dirty.Prompt
	cursor int

	viewWidth int
}

var _ dirty.Presenter = (*ConfirmationModel)(nil)

func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates a yes/no confirmation
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.prompt = nil
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
}

// Present shows a guard prompt. The first choice is preselected.
func (m *ConfirmationModel) Present(p dirty.Prompt) {
	head := p.Header()
	m.active = true
	m.prompt = p
	m.cursor = 0
	m.onConfirm = nil
	m.onCancel = nil
	m.config = ConfirmationConfig{
		Title:   head.Title,
		Message: head.Message,
		Type:    ConfirmTypeDialog,
		Width:   head.Width,
	}
}

func (m *ConfirmationModel) Hide() {
	m.active = false
	m.prompt = nil
}

func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Prompt returns the guard prompt being shown, if any
func (m *ConfirmationModel) Prompt() dirty.Prompt {
	return m.prompt
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}
	if m.prompt != nil {
		m.updatePrompt(msg)
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
		return nil

	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
		return nil
	}

	return nil
}

func (m *ConfirmationModel) updatePrompt(msg tea.KeyMsg) {
	choices := m.prompt.Choices()

	switch msg.String() {
	case "left", "h", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l", "tab":
		if m.cursor < len(choices)-1 {
			m.cursor++
		}
	case "enter":
		m.resolve(choices[m.cursor])
	case "s", "S", "ctrl+s":
		if dirty.Offers(m.prompt, dirty.ChoiceSave) {
			m.resolve(dirty.ChoiceSave)
		}
	case "c", "C", "y", "Y":
		m.resolve(dirty.ChoiceContinue)
	case "n", "N", "esc":
		m.resolve(dirty.ChoiceCancel)
	}
}

// resolve dismisses the dialog before running the choice, so the callback
// may present a new prompt.
func (m *ConfirmationModel) resolve(c dirty.Choice) {
	p := m.prompt
	m.active = false
	m.prompt = nil
	p.Resolve(c)
}

func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	switch m.config.Type {
	case ConfirmTypeDialog:
		return m.renderDialog()
	default:
		return m.renderInline()
	}
}

// ViewWithWidth renders the confirmation with a specific width for centering
func (m *ConfirmationModel) ViewWithWidth(width int) string {
	m.viewWidth = width
	return m.View()
}

func (m *ConfirmationModel) renderInline() string {
	options := formatConfirmOptions(m.config.Destructive)
	message := fmt.Sprintf("%s %s", m.config.Message, options)

	if m.viewWidth > 0 && lipgloss.Width(message) < m.viewWidth {
		return lipgloss.NewStyle().
			Width(m.viewWidth).
			Align(lipgloss.Center).
			Render(message)
	}
	return message
}

func (m *ConfirmationModel) renderDialog() string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning))

	width := m.config.Width
	if width == 0 {
		width = dirty.DefaultWidth
	}
	contentWidth := width - 4
	center := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center)

	var content strings.Builder
	if m.config.Title != "" {
		content.WriteString(center.Render(headerStyle.Render(m.config.Title)))
		content.WriteString("\n\n")
	}
	if m.config.Message != "" {
		content.WriteString(center.Render(m.config.Message))
		content.WriteString("\n")
	}
	if m.config.Warning != "" {
		content.WriteString("\n")
		content.WriteString(center.Render(warningStyle.Render(m.config.Warning)))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	if m.prompt != nil {
		content.WriteString(center.Render(m.renderChoices()))
	} else {
		labels := fmt.Sprintf("(%s / %s)",
			strings.ToLower(m.config.YesLabel),
			strings.ToLower(m.config.NoLabel))
		content.WriteString(center.Render(formatConfirmOptions(m.config.Destructive) + "  " + labels))
	}

	return borderStyle.Width(width).Render(content.String())
}

func (m *ConfirmationModel) renderChoices() string {
	var buttons []string
	for i, choice := range m.prompt.Choices() {
		label := fmt.Sprintf("[%s] %s", choiceKey(choice), choice.Label())
		style := TabStyle
		if i == m.cursor {
			style = ActiveTabStyle
		}
		buttons = append(buttons, style.Render(label))
	}
	return strings.Join(buttons, "  ")
}

func choiceKey(c dirty.Choice) string {
	switch c {
	case dirty.ChoiceSave:
		return "s"
	case dirty.ChoiceContinue:
		return "c"
	default:
		return "esc"
	}
}

func formatConfirmOptions(destructive bool) string {
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true)
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDanger)).Bold(true)
	if destructive {
		yes, no = no, yes
	}
	return yes.Render("[Y]es") + " / " + no.Render("[N]o")
}

// ShowInline shows a one-line yes/no confirmation
func (m *ConfirmationModel) ShowInline(message string, destructive bool, onConfirm, onCancel func() tea.Cmd) {
	m.Show(ConfirmationConfig{
		Message:     message,
		Destructive: destructive,
		Type:        ConfirmTypeInline,
	}, onConfirm, onCancel)
}
