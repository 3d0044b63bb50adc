package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/cmsdesk/cmsdesk-cli/internal/logging"
	"github.com/cmsdesk/cmsdesk-cli/pkg/composer"
	"github.com/cmsdesk/cmsdesk-cli/pkg/dirty"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
	"github.com/cmsdesk/cmsdesk-cli/pkg/utils"
)

// editorSnapshot is everything the user can change in an editor
type editorSnapshot struct {
	field   string
	body    string
	regions []string
}

func (s editorSnapshot) equal(o editorSnapshot) bool {
	return s.field == o.field && s.body == o.body && slices.Equal(s.regions, o.regions)
}

// ResourceEditorModel edits one page, template or asset. Every change is
// reported to the shared dirty guard.
type ResourceEditorModel struct {
	kind  models.ResourceKind
	name  string
	guard *dirty.Guard

	// notify reports save results raised from a guard prompt
	notify func(string)
	// promptSaveErr holds the failure of the last save chosen in a guard
	// prompt until the navigation it guarded consumes it
	promptSaveErr error

	page  *models.Page
	tmpl  *models.Template
	asset *models.Asset

	field       textinput.Model
	fieldLabel  string
	body        textarea.Model
	bodyLabel   string
	regions     *RegionBuilderModel
	focusField  bool
	showPreview bool
	preview     string

	original editorSnapshot
	width    int
	height   int
}

// NewResourceEditor loads the named resource for editing
func NewResourceEditor(kind models.ResourceKind, name string, guard *dirty.Guard, settings *models.Settings) (*ResourceEditorModel, error) {
	if settings == nil {
		settings = models.DefaultSettings()
	}

	ta := textarea.New()
	ta.ShowLineNumbers = settings.Editor.ShowLineNums
	ta.Prompt = "  "
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(20)

	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 60

	e := &ResourceEditorModel{
		kind:  kind,
		name:  name,
		guard: guard,
		field: ti,
		body:  ta,
	}

	switch kind {
	case models.KindPage:
		page, err := files.ReadPage(name)
		if err != nil {
			return nil, err
		}
		e.page = page
		e.fieldLabel = "Title"
		e.bodyLabel = "Body"
		e.field.SetValue(page.Title)
		e.body.SetValue(page.Body)
	case models.KindTemplate:
		tmpl, err := files.ReadTemplate(name)
		if err != nil {
			return nil, err
		}
		e.tmpl = tmpl
		e.bodyLabel = "Markup"
		e.body.SetValue(tmpl.Markup)
		e.regions = NewRegionBuilder(tmpl.Regions)
	case models.KindAsset:
		asset, err := files.ReadAsset(name)
		if err != nil {
			return nil, err
		}
		e.asset = asset
		e.fieldLabel = "Source"
		e.bodyLabel = "Description"
		e.field.SetValue(asset.Source)
		e.body.SetValue(asset.Description)
	default:
		return nil, fmt.Errorf("%w: cannot edit %s", models.ErrUnknownKind, kind.Label())
	}

	e.body.Focus()
	e.original = e.snapshot()
	return e, nil
}

func (e *ResourceEditorModel) Kind() models.ResourceKind { return e.kind }
func (e *ResourceEditorModel) Name() string              { return e.name }

// ViewKind reports which editor view is in front
func (e *ResourceEditorModel) ViewKind() dirty.ViewKind {
	switch e.kind {
	case models.KindPage:
		return dirty.ViewPageEditor
	case models.KindTemplate:
		if e.regions != nil && e.regions.Active() {
			return dirty.ViewWidgetBuilder
		}
		return dirty.ViewTemplateEditor
	case models.KindAsset:
		return dirty.ViewAssetEditor
	}
	return dirty.ViewNone
}

func (e *ResourceEditorModel) SetNotify(fn func(string)) {
	e.notify = fn
}

func (e *ResourceEditorModel) SetSize(width, height int) {
	e.width = width
	e.height = height

	bodyHeight := height - 12
	if e.fieldLabel != "" {
		bodyHeight -= 2
	}
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	bodyWidth := width - 4
	if e.regions != nil || e.showPreview {
		bodyWidth = width*3/5 - 4
	}
	if bodyWidth < 20 {
		bodyWidth = 20
	}
	e.body.SetWidth(bodyWidth)
	e.body.SetHeight(bodyHeight)
	e.field.Width = bodyWidth - len(e.fieldLabel) - 4
}

func (e *ResourceEditorModel) snapshot() editorSnapshot {
	s := editorSnapshot{
		field: e.field.Value(),
		body:  e.body.Value(),
	}
	if e.regions != nil {
		s.regions = e.regions.Regions()
	}
	return s
}

// Modified reports whether the editor differs from what was loaded or
// last saved
func (e *ResourceEditorModel) Modified() bool {
	return !e.snapshot().equal(e.original)
}

// takePromptSaveError returns and clears the error of the last save run
// from a guard prompt
func (e *ResourceEditorModel) takePromptSaveError() error {
	err := e.promptSaveErr
	e.promptSaveErr = nil
	return err
}

func (e *ResourceEditorModel) syncDirty() {
	e.guard.MarkDirty(e.Modified(), e.kind, e.saveFromPrompt)
}

// Save writes the editor content back to the store
func (e *ResourceEditorModel) Save() error {
	current := e.snapshot()

	var err error
	switch e.kind {
	case models.KindPage:
		e.page.Title = current.field
		e.page.Body = current.body
		err = files.WritePage(e.page)
	case models.KindTemplate:
		e.tmpl.Markup = current.body
		e.tmpl.Regions = current.regions
		err = files.WriteTemplate(e.tmpl)
	case models.KindAsset:
		e.asset.Source = current.field
		e.asset.Description = current.body
		e.asset.MimeType = ""
		err = files.WriteAsset(e.asset)
	}
	if err != nil {
		logging.Get(logging.CategoryStore).Error("save failed",
			zap.String("kind", e.kind.Label()),
			zap.String("name", e.name),
			zap.Error(err))
		return err
	}

	e.original = current
	e.guard.MarkDirty(false, e.kind, nil)
	logging.Get(logging.CategoryStore).Info("saved",
		zap.String("kind", e.kind.Label()),
		zap.String("name", e.name))
	return nil
}

func (e *ResourceEditorModel) saveFromPrompt() {
	err := e.Save()
	e.promptSaveErr = err
	if e.notify == nil {
		return
	}
	if err != nil {
		e.notify(fmt.Sprintf("✗ Failed to save %s %s: %v", e.kind.Label(), e.name, err))
		return
	}
	e.notify(fmt.Sprintf("✓ Saved %s %s", e.kind.Label(), e.name))
}

func (e *ResourceEditorModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return e.forward(msg)
	}

	switch keyMsg.String() {
	case "ctrl+s":
		if err := e.Save(); err != nil {
			return statusCmd(fmt.Sprintf("✗ Failed to save: %v", err))
		}
		return statusCmd(fmt.Sprintf("✓ Saved %s %s", e.kind.Label(), e.name))

	case "esc":
		if e.regions != nil && e.regions.Active() {
			if e.regions.Adding() {
				e.regions.Update(keyMsg)
				return nil
			}
			e.regions.Blur()
			e.body.Focus()
			return nil
		}
		return func() tea.Msg { return closeEditorMsg{} }

	case "ctrl+r":
		if e.regions != nil {
			if e.regions.Active() {
				e.regions.Blur()
				e.body.Focus()
			} else {
				e.body.Blur()
				e.field.Blur()
				e.regions.Focus()
			}
			return nil
		}

	case "ctrl+o":
		if e.kind == models.KindPage {
			e.showPreview = !e.showPreview
			if e.showPreview {
				e.preview = renderMarkdown(e.composed(), e.width*2/5-4)
			}
			e.SetSize(e.width, e.height)
			return nil
		}

	case "tab":
		if e.fieldLabel != "" {
			e.focusField = !e.focusField
			if e.focusField {
				e.body.Blur()
				return e.field.Focus()
			}
			e.field.Blur()
			return e.body.Focus()
		}
	}

	var cmd tea.Cmd
	switch {
	case e.regions != nil && e.regions.Active():
		cmd = e.regions.Update(keyMsg)
	case e.focusField:
		e.field, cmd = e.field.Update(keyMsg)
	default:
		e.body, cmd = e.body.Update(keyMsg)
	}
	e.syncDirty()
	return cmd
}

func (e *ResourceEditorModel) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if e.focusField {
		e.field, cmd = e.field.Update(msg)
	} else {
		e.body, cmd = e.body.Update(msg)
	}
	return cmd
}

// composed renders the unsaved page through its template. The raw body
// is used when the template cannot be loaded.
func (e *ResourceEditorModel) composed() string {
	page := *e.page
	page.Title = e.field.Value()
	page.Body = e.body.Value()

	name := page.Template
	if name == "" {
		name = files.DefaultTemplateName
	}
	tmpl, err := files.ReadTemplate(name)
	if err != nil {
		return page.Body
	}
	out, err := composer.ComposePage(&page, tmpl)
	if err != nil {
		return page.Body
	}
	return out
}

func (e *ResourceEditorModel) title() string {
	title := fmt.Sprintf("Editing %s: %s", e.kind.Label(), e.name)
	if e.kind == models.KindPage {
		title += DimStyle.Render(" · " + utils.FormatStats(e.body.Value()))
	}
	if e.Modified() {
		title += ModifiedStyle.Render(" [modified]")
	}
	return title
}

func (e *ResourceEditorModel) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(e.title()))
	b.WriteString("\n\n")

	if e.fieldLabel != "" {
		label := DimStyle.Render(e.fieldLabel + ": ")
		if e.focusField {
			label = HeaderStyle.Render(e.fieldLabel + ": ")
		}
		b.WriteString(label + e.field.View())
		b.WriteString("\n\n")
	}

	b.WriteString(DimStyle.Render(e.bodyLabel))
	b.WriteString("\n")

	border := ActiveBorderStyle
	if e.focusField || (e.regions != nil && e.regions.Active()) {
		border = InactiveBorderStyle
	}
	main := border.Render(e.body.View())

	switch {
	case e.regions != nil:
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, " ", e.regions.View(e.width*2/5-4))
	case e.showPreview:
		pane := InactiveBorderStyle.Width(e.width*2/5 - 4).Render(e.preview)
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, " ", pane)
	}
	b.WriteString(main)
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(e.help()))

	return ContentPaddingStyle.Render(b.String())
}

func (e *ResourceEditorModel) help() string {
	parts := []string{"ctrl+s save", "esc close"}
	if e.fieldLabel != "" {
		parts = append(parts, "tab switch field")
	}
	switch e.kind {
	case models.KindPage:
		parts = append(parts, "ctrl+o preview")
	case models.KindTemplate:
		if e.regions.Active() {
			parts = []string{"a add", "d delete", "J/K move", "esc back to markup", "ctrl+s save"}
		} else {
			parts = append(parts, "ctrl+r regions")
		}
	}
	parts = append(parts, "ctrl+pgup/pgdn switch tab")
	return strings.Join(parts, " • ")
}

func statusCmd(msg string) tea.Cmd {
	return func() tea.Msg { return StatusMsg(msg) }
}
