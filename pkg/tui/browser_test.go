package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

func loadedBrowser(t *testing.T, kind models.ResourceKind) *BrowserModel {
	t.Helper()
	m := NewBrowserModel(kind)
	msg := loadResourcesCmd(kind)().(resourcesLoadedMsg)
	m.setItems(msg.items, msg.err)
	return m
}

func TestBrowserModel_Navigation(t *testing.T) {
	setupProject(t)
	require.NoError(t, files.WritePage(&models.Page{Title: "Alpha"}))
	require.NoError(t, files.WritePage(&models.Page{Title: "Beta"}))

	m := loadedBrowser(t, models.KindPage)
	assert.Equal(t, "alpha", m.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "beta", m.Selected())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "beta", m.Selected())

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, openResourceMsg{kind: models.KindPage, name: "beta"}, cmd())
}

func TestBrowserModel_NewOnlyForPages(t *testing.T) {
	setupProject(t)

	pages := loadedBrowser(t, models.KindPage)
	cmd := pages.Update(keyRunes("n"))
	require.NotNil(t, cmd)
	assert.IsType(t, newPageRequestMsg{}, cmd())

	templates := loadedBrowser(t, models.KindTemplate)
	assert.Nil(t, templates.Update(keyRunes("n")))
}

func TestBrowserModel_KeepsSelectionOnReload(t *testing.T) {
	setupProject(t)
	require.NoError(t, files.WritePage(&models.Page{Title: "Beta"}))
	require.NoError(t, files.WritePage(&models.Page{Title: "Gamma"}))

	m := loadedBrowser(t, models.KindPage)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "gamma", m.Selected())

	require.NoError(t, files.WritePage(&models.Page{Title: "Alpha"}))
	msg := loadResourcesCmd(models.KindPage)().(resourcesLoadedMsg)
	m.setItems(msg.items, msg.err)
	assert.Equal(t, "gamma", m.Selected())
}

func TestResourceText(t *testing.T) {
	setupProject(t)
	require.NoError(t, files.WritePage(&models.Page{Title: "Home", Body: "# Hello"}))

	text, err := resourceText(models.KindPage, "home")
	require.NoError(t, err)
	assert.Equal(t, "# Hello", text)

	_, err = resourceText(models.KindObject, "home")
	assert.ErrorIs(t, err, models.ErrUnknownKind)
}

func TestRenderMarkdown(t *testing.T) {
	out := renderMarkdown("# Title\n\nsome body text", 40)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}
