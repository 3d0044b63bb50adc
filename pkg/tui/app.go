package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/cmsdesk/cmsdesk-cli/internal/logging"
	"github.com/cmsdesk/cmsdesk-cli/pkg/dirty"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

type tab int

const (
	pagesTab tab = iota
	templatesTab
	assetsTab
	workflowTab
)

var tabNames = []string{"1 Pages", "2 Templates", "3 Assets", "4 Workflow"}

var tabKinds = map[tab]models.ResourceKind{
	pagesTab:     models.KindPage,
	templatesTab: models.KindTemplate,
	assetsTab:    models.KindAsset,
}

// App is the editor shell. It owns the session's dirty guard and routes
// every navigation through it.
type App struct {
	tab      tab
	browsers map[models.ResourceKind]*BrowserModel
	workflow *WorkflowModel
	editor   *ResourceEditorModel
	newPage  *NewPageDialog
	confirm  *ConfirmationModel
	guard    *dirty.Guard
	settings *models.Settings
	watcher  *files.Watcher

	width     int
	height    int
	statusMsg string
	warning   string

	// pending collects commands produced by guard callbacks, which run
	// synchronously inside Update
	pending []tea.Cmd
}

var _ dirty.ViewContext = (*App)(nil)

// NewApp builds the shell. watcher may be nil when change watching is off.
func NewApp(settings *models.Settings, watcher *files.Watcher) *App {
	if settings == nil {
		settings = models.DefaultSettings()
	}

	a := &App{
		tab: pagesTab,
		browsers: map[models.ResourceKind]*BrowserModel{
			models.KindPage:     NewBrowserModel(models.KindPage),
			models.KindTemplate: NewBrowserModel(models.KindTemplate),
			models.KindAsset:    NewBrowserModel(models.KindAsset),
		},
		workflow: NewWorkflowModel(settings.Workflow.ScheduleLayout),
		newPage:  NewNewPageDialog(),
		confirm:  NewConfirmation(),
		settings: settings,
		watcher:  watcher,
	}
	a.guard = dirty.New(a.confirm, a)
	return a
}

// Guard exposes the session guard
func (a *App) Guard() *dirty.Guard {
	return a.guard
}

// ActiveView implements dirty.ViewContext
func (a *App) ActiveView() dirty.ViewKind {
	if a.editor != nil {
		return a.editor.ViewKind()
	}
	if a.tab == workflowTab {
		return dirty.ViewWorkflow
	}
	return dirty.ViewBrowser
}

func (a *App) Init() tea.Cmd {
	a.guard.Init()
	cmds := []tea.Cmd{a.workflow.Init()}
	for _, b := range a.browsers {
		cmds = append(cmds, b.Init())
	}
	if a.watcher != nil {
		cmds = append(cmds, waitForChange(a.watcher))
	}
	return tea.Batch(cmds...)
}

func (a *App) queue(cmd tea.Cmd) {
	if cmd != nil {
		a.pending = append(a.pending, cmd)
	}
}

func (a *App) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append(a.pending, cmd)
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *App) setStatus(msg string) {
	a.statusMsg = msg
}

// navigate runs to once the guard allows leaving the current editor. A
// Save that failed keeps the editor open and dirty.
func (a *App) navigate(to func() tea.Cmd, opts *dirty.ConfirmOptions) {
	a.guard.ConfirmIfDirty(
		func() {
			if a.editor != nil {
				if err := a.editor.takePromptSaveError(); err != nil {
					a.editor.syncDirty()
					logging.Get(logging.CategoryUI).Warn("navigation stopped after failed save", zap.Error(err))
					return
				}
			}
			a.queue(to())
		},
		func() { a.setStatus("Kept unsaved changes") },
		opts,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, a.flush(cmd)
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, b := range a.browsers {
			b.SetSize(msg.Width, msg.Height-4)
		}
		a.workflow.SetSize(msg.Width, msg.Height-4)
		if a.editor != nil {
			a.editor.SetSize(msg.Width, msg.Height-4)
		}
		return nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case StatusMsg:
		a.statusMsg = string(msg)
		return nil

	case resourcesLoadedMsg:
		if b, ok := a.browsers[msg.kind]; ok {
			b.setItems(msg.items, msg.err)
		}
		return nil

	case workflowLoadedMsg:
		a.workflow.setPages(msg.pages, msg.err)
		return nil

	case reloadMsg:
		return a.reload(msg.kind)

	case openResourceMsg:
		a.navigate(func() tea.Cmd { return a.openEditor(msg.kind, msg.name) }, nil)
		return nil

	case closeEditorMsg:
		a.navigate(func() tea.Cmd { return a.closeEditor() }, nil)
		return nil

	case newPageRequestMsg:
		return a.newPage.Open(a.settings.Workflow.DefaultTemplate)

	case pageCreatedMsg:
		a.statusMsg = fmt.Sprintf("✓ Created page %s", msg.page.Slug)
		slug := msg.page.Slug
		a.navigate(func() tea.Cmd {
			return tea.Batch(a.reload(models.KindPage), a.openEditor(models.KindPage, slug))
		}, nil)
		return nil

	case deleteRequestMsg:
		a.confirmDelete(msg.kind, msg.name)
		return nil

	case workflowActionMsg:
		a.navigate(func() tea.Cmd {
			return tea.Sequence(
				applyWorkflowCmd(msg.slug, msg.action, a.settings.Workflow),
				loadWorkflowCmd(),
				loadResourcesCmd(models.KindPage),
			)
		}, &dirty.ConfirmOptions{Title: fmt.Sprintf("Run %s with unsaved changes?", msg.action)})
		return nil

	case scheduleRequestMsg:
		return tea.Sequence(
			scheduleCmd(msg, a.settings.Workflow.ScheduleLayout),
			loadWorkflowCmd(),
		)

	case changeEventMsg:
		return tea.Batch(a.handleChange(files.ChangeEvent(msg)), waitForChange(a.watcher))

	case watcherClosedMsg:
		return nil
	}

	if a.editor != nil {
		return a.editor.Update(msg)
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.confirm.Active() {
		return a.confirm.Update(msg)
	}

	if msg.Type == tea.KeyCtrlC {
		return a.quit()
	}
	a.warning = ""

	// a taken navigation warning cleared the guard; the editor still
	// knows whether it holds unsaved work
	if a.editor != nil {
		a.editor.syncDirty()
	}

	if a.newPage.Active() {
		return a.newPage.Update(msg)
	}

	switch msg.String() {
	case "ctrl+pgdown":
		a.switchTab((a.tab + 1) % tab(len(tabNames)))
		return nil
	case "ctrl+pgup":
		a.switchTab((a.tab + tab(len(tabNames)) - 1) % tab(len(tabNames)))
		return nil
	}

	if a.editor != nil {
		return a.editor.Update(msg)
	}

	if a.tab == workflowTab && a.workflow.Scheduling() {
		return a.workflow.Update(msg)
	}

	switch msg.String() {
	case "q":
		return a.quit()
	case "tab":
		a.switchTab((a.tab + 1) % tab(len(tabNames)))
		return nil
	case "shift+tab":
		a.switchTab((a.tab + tab(len(tabNames)) - 1) % tab(len(tabNames)))
		return nil
	case "1", "2", "3", "4":
		a.switchTab(tab(msg.String()[0] - '1'))
		return nil
	}

	if a.tab == workflowTab {
		return a.workflow.Update(msg)
	}
	return a.browsers[tabKinds[a.tab]].Update(msg)
}

// quit behaves like a browser leave-page hook: the first attempt with
// unsaved changes shows a warning and consumes it, the next one quits.
func (a *App) quit() tea.Cmd {
	if warning, ok := a.guard.TakeNavigationWarning(); ok {
		a.warning = warning + " Press ctrl+c again to quit."
		return nil
	}
	logging.Get(logging.CategoryUI).Info("quitting")
	return tea.Quit
}

func (a *App) switchTab(to tab) {
	if to == a.tab && a.editor == nil {
		return
	}
	a.navigate(func() tea.Cmd {
		closed := a.closeEditor()
		a.tab = to
		if to == workflowTab {
			return tea.Batch(closed, loadWorkflowCmd())
		}
		return tea.Batch(closed, loadResourcesCmd(tabKinds[to]))
	}, nil)
}

func (a *App) openEditor(kind models.ResourceKind, name string) tea.Cmd {
	editor, err := NewResourceEditor(kind, name, a.guard, a.settings)
	if err != nil {
		a.statusMsg = fmt.Sprintf("✗ Failed to open %s %s: %v", kind.Label(), name, err)
		return nil
	}
	editor.SetNotify(a.setStatus)
	editor.SetSize(a.width, a.height-4)
	a.editor = editor
	for t, k := range tabKinds {
		if k == kind {
			a.tab = t
		}
	}
	logging.Get(logging.CategoryUI).Debug("editor opened",
		zap.String("kind", kind.Label()),
		zap.String("name", name))
	return nil
}

func (a *App) closeEditor() tea.Cmd {
	if a.editor == nil {
		return nil
	}
	kind := a.editor.Kind()
	a.editor = nil
	a.guard.MarkDirty(false, kind, nil)
	return a.reload(kind)
}

func (a *App) reload(kind models.ResourceKind) tea.Cmd {
	if kind == models.KindPage {
		return tea.Batch(loadResourcesCmd(kind), loadWorkflowCmd())
	}
	return loadResourcesCmd(kind)
}

func (a *App) confirmDelete(kind models.ResourceKind, name string) {
	a.confirm.Show(ConfirmationConfig{
		Title:       "Delete " + kind.Label(),
		Message:     fmt.Sprintf("Delete %s %q?", kind.Label(), name),
		Warning:     "This cannot be undone.",
		Destructive: true,
		Type:        ConfirmTypeDialog,
		Width:       a.settings.UI.PromptWidth,
	}, func() tea.Cmd {
		var err error
		if kind == models.KindTemplate {
			err = files.DeleteTemplate(name)
		} else {
			err = files.Delete(kind, name)
		}
		if err != nil {
			return statusCmd(fmt.Sprintf("✗ %v", err))
		}
		return tea.Batch(statusCmd(fmt.Sprintf("✓ Deleted %s %s", kind.Label(), name)), a.reload(kind))
	}, nil)
}

// handleChange reloads lists after an edit on disk. The open editor is
// never reloaded under the user; a dirty one only gets a notice.
func (a *App) handleChange(ev files.ChangeEvent) tea.Cmd {
	if a.editor != nil && a.editor.Kind() == ev.Kind && a.editor.Name() == ev.Name && a.guard.IsDirty() {
		a.statusMsg = fmt.Sprintf("⚠ %s %s changed on disk while you have unsaved edits", ev.Kind.Label(), ev.Name)
		return nil
	}
	return a.reload(ev.Kind)
}

func waitForChange(w *files.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return watcherClosedMsg{}
		}
		return changeEventMsg(ev)
	}
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	modified := a.editor != nil && a.editor.Modified()
	header := renderHeader(a.width, tabNames, int(a.tab), modified)

	var content string
	switch {
	case a.confirm.Active():
		content = lipgloss.Place(a.width, a.height-4, lipgloss.Center, lipgloss.Center, a.confirm.ViewWithWidth(a.width))
	case a.newPage.Active():
		content = lipgloss.Place(a.width, a.height-4, lipgloss.Center, lipgloss.Center, a.newPage.View(a.width-4))
	case a.editor != nil:
		content = a.editor.View()
	case a.tab == workflowTab:
		content = a.workflow.View()
	default:
		content = a.browsers[tabKinds[a.tab]].View()
	}

	parts := []string{header, content}
	if a.warning != "" {
		parts = append(parts, WarningBarStyle.Width(a.width).Render(a.warning))
	}
	if a.statusMsg != "" {
		parts = append(parts, StatusBarStyle.Width(a.width).Render(a.statusMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
