package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cmsdesk/cmsdesk-cli/internal/logging"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

var workflowKeys = map[string]models.WorkflowAction{
	"s": models.ActionSubmit,
	"a": models.ActionApprove,
	"x": models.ActionReject,
	"p": models.ActionPublish,
	"u": models.ActionUnpublish,
	"z": models.ActionArchive,
	"R": models.ActionRestore,
}

// WorkflowModel lists pages with their publishing state and raises
// workflow actions for the selected page
type WorkflowModel struct {
	pages      []*models.Page
	cursor     int
	err        error
	loaded     bool
	scheduling bool
	schedule   [3]textinput.Model
	focus      int
	layout     string
	width      int
	height     int
}

func NewWorkflowModel(layout string) *WorkflowModel {
	if layout == "" {
		layout = models.DefaultSettings().Workflow.ScheduleLayout
	}
	m := &WorkflowModel{layout: layout}
	for i := range m.schedule {
		ti := textinput.New()
		ti.Placeholder = layout
		ti.CharLimit = 32
		ti.Width = 24
		m.schedule[i] = ti
	}
	m.schedule[scheduleComment].Placeholder = "optional"
	m.schedule[scheduleComment].CharLimit = models.MaxCommentLength
	m.schedule[scheduleComment].Width = 48
	return m
}

// schedule dialog fields
const (
	schedulePublish = iota
	scheduleRemove
	scheduleComment
)

var scheduleLabels = [3]string{"Publish at: ", "Remove at:  ", "Comment:    "}

func (m *WorkflowModel) Init() tea.Cmd {
	return loadWorkflowCmd()
}

func (m *WorkflowModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *WorkflowModel) Scheduling() bool { return m.scheduling }

func (m *WorkflowModel) Selected() *models.Page {
	if m.cursor < 0 || m.cursor >= len(m.pages) {
		return nil
	}
	return m.pages[m.cursor]
}

func (m *WorkflowModel) setPages(pages []*models.Page, err error) {
	m.loaded = true
	m.err = err
	var selected string
	if p := m.Selected(); p != nil {
		selected = p.Slug
	}
	m.pages = pages
	m.cursor = 0
	for i, p := range pages {
		if p.Slug == selected {
			m.cursor = i
		}
	}
}

func (m *WorkflowModel) Update(msg tea.KeyMsg) tea.Cmd {
	if m.scheduling {
		switch msg.String() {
		case "esc":
			m.closeSchedule()
			return nil
		case "tab", "down":
			return m.focusSchedule((m.focus + 1) % len(m.schedule))
		case "shift+tab", "up":
			return m.focusSchedule((m.focus + len(m.schedule) - 1) % len(m.schedule))
		case "enter":
			m.closeSchedule()
			page := m.Selected()
			if page == nil {
				return nil
			}
			req := scheduleRequestMsg{
				slug:    page.Slug,
				publish: m.schedule[schedulePublish].Value(),
				remove:  m.schedule[scheduleRemove].Value(),
				comment: m.schedule[scheduleComment].Value(),
			}
			return func() tea.Msg { return req }
		}
		var cmd tea.Cmd
		m.schedule[m.focus], cmd = m.schedule[m.focus].Update(msg)
		return cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case "down", "j":
		if m.cursor < len(m.pages)-1 {
			m.cursor++
		}
		return nil
	case "r":
		return loadWorkflowCmd()
	case "t":
		if page := m.Selected(); page != nil {
			m.openSchedule(page)
			return m.focusSchedule(schedulePublish)
		}
		return nil
	}

	if action, ok := workflowKeys[msg.String()]; ok {
		if page := m.Selected(); page != nil {
			slug := page.Slug
			return func() tea.Msg { return workflowActionMsg{slug: slug, action: action} }
		}
	}
	return nil
}

// openSchedule fills the dialog with the page's current schedule
func (m *WorkflowModel) openSchedule(page *models.Page) {
	m.scheduling = true
	m.schedule[schedulePublish].SetValue(formatSchedule(page.PublishAt, m.layout))
	m.schedule[scheduleRemove].SetValue(formatSchedule(page.RemoveAt, m.layout))
	m.schedule[scheduleComment].SetValue(page.Comment)
}

func (m *WorkflowModel) closeSchedule() {
	m.scheduling = false
	for i := range m.schedule {
		m.schedule[i].Blur()
	}
}

func (m *WorkflowModel) focusSchedule(i int) tea.Cmd {
	m.schedule[m.focus].Blur()
	m.focus = i
	return m.schedule[i].Focus()
}

func formatSchedule(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func (m *WorkflowModel) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("WORKFLOW"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(EmptyStyle.Render(fmt.Sprintf("Failed to load pages: %v", m.err)))
		b.WriteString("\n")
	case !m.loaded:
		b.WriteString(DimStyle.Render("Loading..."))
		b.WriteString("\n")
	case len(m.pages) == 0:
		b.WriteString(EmptyStyle.Render("No pages yet."))
		b.WriteString("\n")
	}

	for i, page := range m.pages {
		state := stateStyle(string(page.State)).Render(fmt.Sprintf("%-9s", page.State))
		line := fmt.Sprintf("%-28s ", page.Title)
		schedule := ""
		if page.PublishAt != nil {
			schedule += DimStyle.Render("  publishes " + page.PublishAt.Format(m.layout))
		}
		if page.RemoveAt != nil {
			schedule += DimStyle.Render("  comes down " + page.RemoveAt.Format(m.layout))
		}
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("▸ "+line) + state + schedule)
		} else {
			b.WriteString(NormalStyle.Render("  "+line) + state + schedule)
		}
		b.WriteString("\n")
	}

	if m.scheduling {
		for i, label := range scheduleLabels {
			b.WriteString("\n")
			b.WriteString(HeaderStyle.Render(label))
			b.WriteString(m.schedule[i].View())
		}
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("tab next field • enter confirm • empty dates clear • esc cancel"))
		return ContentPaddingStyle.Render(b.String())
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("s submit • a approve • x reject • p publish • u unpublish • z archive • R restore • t schedule • r reload"))
	return ContentPaddingStyle.Render(b.String())
}

func loadWorkflowCmd() tea.Cmd {
	return func() tea.Msg {
		pages, errs := files.LoadPages()
		for _, err := range errs {
			logging.Get(logging.CategoryWorkflow).Warn("skipping unreadable page", zap.Error(err))
		}

		archived, err := files.ListArchivedPages()
		if err != nil {
			return workflowLoadedMsg{pages: pages, err: err}
		}
		for _, slug := range archived {
			if page, err := files.ReadArchivedPage(slug); err == nil {
				pages = append(pages, page)
			}
		}

		sort.SliceStable(pages, func(i, j int) bool {
			return stateOrder(pages[i].State) < stateOrder(pages[j].State)
		})
		return workflowLoadedMsg{pages: pages}
	}
}

func stateOrder(s models.WorkflowState) int {
	switch s {
	case models.StatePending:
		return 0
	case models.StateDraft:
		return 1
	case models.StateLive:
		return 2
	default:
		return 3
	}
}

func applyWorkflowCmd(slug string, action models.WorkflowAction, policy models.WorkflowSettings) tea.Cmd {
	return func() tea.Msg {
		page, err := files.ApplyWorkflowAction(slug, action, policy)
		if err != nil {
			logging.Get(logging.CategoryWorkflow).Warn("workflow action failed",
				zap.String("slug", slug),
				zap.String("action", string(action)),
				zap.Error(err))
			return StatusMsg(fmt.Sprintf("✗ %v", err))
		}
		logging.Get(logging.CategoryWorkflow).Info("workflow action applied",
			zap.String("slug", slug),
			zap.String("action", string(action)),
			zap.String("state", string(page.State)))
		return StatusMsg(fmt.Sprintf("✓ %s is now %s", page.Title, page.State))
	}
}

func scheduleCmd(req scheduleRequestMsg, layout string) tea.Cmd {
	return func() tea.Msg {
		sched := models.Schedule{Comment: strings.TrimSpace(req.comment)}
		for _, field := range []struct {
			input string
			into  *time.Time
		}{
			{req.publish, &sched.PublishAt},
			{req.remove, &sched.RemoveAt},
		} {
			input := strings.TrimSpace(field.input)
			if input == "" {
				continue
			}
			parsed, err := time.ParseInLocation(layout, input, time.Local)
			if err != nil {
				return StatusMsg(fmt.Sprintf("✗ Invalid time %q, expected %s", input, layout))
			}
			*field.into = parsed
		}

		page, err := files.SetSchedule(req.slug, sched)
		if err != nil {
			return StatusMsg(fmt.Sprintf("✗ %v", err))
		}
		logging.Get(logging.CategoryWorkflow).Info("schedule set",
			zap.String("slug", req.slug),
			zap.Bool("publish", page.PublishAt != nil),
			zap.Bool("remove", page.RemoveAt != nil))

		var parts []string
		if page.PublishAt != nil {
			parts = append(parts, "publishes "+page.PublishAt.Format(layout))
		}
		if page.RemoveAt != nil {
			parts = append(parts, "comes down "+page.RemoveAt.Format(layout))
		}
		if len(parts) == 0 {
			return StatusMsg(fmt.Sprintf("✓ Cleared schedule for %s", page.Title))
		}
		return StatusMsg(fmt.Sprintf("✓ %s %s", page.Title, strings.Join(parts, ", ")))
	}
}
