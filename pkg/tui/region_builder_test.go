package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeInto(m *RegionBuilderModel, s string) {
	for _, r := range s {
		m.Update(keyRunes(string(r)))
	}
}

func TestRegionBuilder_AddMoveDelete(t *testing.T) {
	m := NewRegionBuilder([]string{"header", "content"})
	m.Focus()

	m.Update(keyRunes("a"))
	assert.True(t, m.Adding())
	typeInto(m, "footer")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Adding())
	assert.Equal(t, []string{"header", "content", "footer"}, m.Regions())

	m.Update(keyRunes("K"))
	assert.Equal(t, []string{"header", "footer", "content"}, m.Regions())

	m.Update(keyRunes("d"))
	assert.Equal(t, []string{"header", "content"}, m.Regions())
}

func TestRegionBuilder_RejectsDuplicatesAndEmpty(t *testing.T) {
	m := NewRegionBuilder([]string{"content"})
	m.Focus()

	m.Update(keyRunes("a"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Adding())
	assert.Contains(t, m.View(40), "cannot be empty")

	typeInto(m, "content")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Adding())
	assert.Equal(t, []string{"content"}, m.Regions())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Adding())
}

func TestRegionBuilder_RegionsIsACopy(t *testing.T) {
	source := []string{"a", "b"}
	m := NewRegionBuilder(source)
	got := m.Regions()
	got[0] = "changed"

	assert.Equal(t, []string{"a", "b"}, m.Regions())
	assert.Equal(t, "a", source[0])
}
