package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmsdesk/cmsdesk-cli/pkg/dirty"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

type viewStub dirty.ViewKind

func (v viewStub) ActiveView() dirty.ViewKind { return dirty.ViewKind(v) }

func TestResourceEditor_TracksModifications(t *testing.T) {
	setupProject(t)
	require.NoError(t, files.WritePage(&models.Page{Title: "About", Body: "text"}))

	guard := dirty.New(nil, viewStub(dirty.ViewPageEditor))
	e, err := NewResourceEditor(models.KindPage, "about", guard, nil)
	require.NoError(t, err)
	assert.False(t, e.Modified())

	e.Update(keyRunes("!"))
	assert.True(t, e.Modified())
	assert.True(t, guard.IsDirty())
	assert.Equal(t, models.KindPage, guard.Kind())

	e.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.False(t, e.Modified())
	assert.False(t, guard.IsDirty(), "undoing the edit clears the guard")
}

func TestResourceEditor_SaveWritesAndClears(t *testing.T) {
	setupProject(t)
	require.NoError(t, files.WritePage(&models.Page{Title: "About", Body: "text"}))

	guard := dirty.New(nil, viewStub(dirty.ViewPageEditor))
	e, err := NewResourceEditor(models.KindPage, "about", guard, nil)
	require.NoError(t, err)

	e.Update(tea.KeyMsg{Type: tea.KeyTab})
	e.Update(keyRunes("!"))
	require.True(t, guard.IsDirty())

	cmd := e.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.Contains(t, string(cmd().(StatusMsg)), "Saved")
	assert.False(t, e.Modified())
	assert.False(t, guard.IsDirty())

	page, err := files.ReadPage("about")
	require.NoError(t, err)
	assert.Equal(t, "About!", page.Title)
	assert.Equal(t, "about", page.Slug)
}

func TestResourceEditor_SaveFromPromptNotifies(t *testing.T) {
	setupProject(t)
	require.NoError(t, files.WriteAsset(&models.Asset{Name: "logo", Source: "img/logo.png", Description: "a"}))

	guard := dirty.New(nil, viewStub(dirty.ViewAssetEditor))
	e, err := NewResourceEditor(models.KindAsset, "logo", guard, nil)
	require.NoError(t, err)

	var notes []string
	e.SetNotify(func(s string) { notes = append(notes, s) })
	e.Update(keyRunes("b"))
	e.saveFromPrompt()

	require.Len(t, notes, 1)
	assert.Contains(t, notes[0], "Saved asset logo")

	asset, err := files.ReadAsset("logo")
	require.NoError(t, err)
	assert.Equal(t, "ab", asset.Description)
	assert.Equal(t, "image/png", asset.MimeType)
}

func TestResourceEditor_ViewKind(t *testing.T) {
	setupProject(t)
	guard := dirty.New(nil, viewStub(dirty.ViewTemplateEditor))

	e, err := NewResourceEditor(models.KindTemplate, files.DefaultTemplateName, guard, nil)
	require.NoError(t, err)
	assert.Equal(t, dirty.ViewTemplateEditor, e.ViewKind())

	e.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, dirty.ViewWidgetBuilder, e.ViewKind())

	// esc leaves the region builder before it closes the editor
	cmd := e.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, dirty.ViewTemplateEditor, e.ViewKind())

	cmd = e.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, closeEditorMsg{}, cmd())
}

func TestResourceEditor_MissingResource(t *testing.T) {
	setupProject(t)
	guard := dirty.New(nil, viewStub(dirty.ViewPageEditor))

	_, err := NewResourceEditor(models.KindPage, "nope", guard, nil)
	assert.ErrorIs(t, err, files.ErrNotFound)

	_, err = NewResourceEditor(models.KindObject, "x", guard, nil)
	assert.ErrorIs(t, err, models.ErrUnknownKind)
}

func TestResourceEditor_PreviewComposesUnsavedBody(t *testing.T) {
	setupProject(t)
	_, err := files.NewPageFromTemplate("Home", "")
	require.NoError(t, err)

	guard := dirty.New(nil, viewStub(dirty.ViewPageEditor))
	e, err := NewResourceEditor(models.KindPage, "home", guard, nil)
	require.NoError(t, err)

	e.Update(keyRunes("x"))
	assert.Equal(t, "# Home\n\nx\n", e.composed())
	assert.Contains(t, e.View(), "2 words")
}
