package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/cmsdesk/cmsdesk-cli/pkg/dirty"
)

type choiceRecorder struct {
	got []dirty.Choice
}

func (r *choiceRecorder) saveCapable() *dirty.SaveCapablePrompt {
	return &dirty.SaveCapablePrompt{
		Head:     dirty.Header{Title: "Unsaved", Message: "leave?", Width: 50},
		Save:     func() { r.got = append(r.got, dirty.ChoiceSave) },
		Continue: func() { r.got = append(r.got, dirty.ChoiceContinue) },
		Cancel:   func() { r.got = append(r.got, dirty.ChoiceCancel) },
	}
}

func (r *choiceRecorder) simple() *dirty.SimplePrompt {
	return &dirty.SimplePrompt{
		Head:     dirty.Header{Title: "Unsaved", Message: "leave?"},
		Continue: func() { r.got = append(r.got, dirty.ChoiceContinue) },
		Cancel:   func() { r.got = append(r.got, dirty.ChoiceCancel) },
	}
}

func TestConfirmationModel_PresentKeys(t *testing.T) {
	tests := []struct {
		name   string
		simple bool
		keys   []tea.KeyMsg
		want   []dirty.Choice
		active bool
	}{
		{
			name: "s saves",
			keys: []tea.KeyMsg{keyRunes("s")},
			want: []dirty.Choice{dirty.ChoiceSave},
		},
		{
			name: "c continues",
			keys: []tea.KeyMsg{keyRunes("c")},
			want: []dirty.Choice{dirty.ChoiceContinue},
		},
		{
			name: "y continues",
			keys: []tea.KeyMsg{keyRunes("y")},
			want: []dirty.Choice{dirty.ChoiceContinue},
		},
		{
			name: "esc cancels",
			keys: []tea.KeyMsg{{Type: tea.KeyEsc}},
			want: []dirty.Choice{dirty.ChoiceCancel},
		},
		{
			name: "enter picks the first button",
			keys: []tea.KeyMsg{{Type: tea.KeyEnter}},
			want: []dirty.Choice{dirty.ChoiceSave},
		},
		{
			name: "right then enter picks continue",
			keys: []tea.KeyMsg{{Type: tea.KeyRight}, {Type: tea.KeyEnter}},
			want: []dirty.Choice{dirty.ChoiceContinue},
		},
		{
			name:   "s is ignored without a save button",
			simple: true,
			keys:   []tea.KeyMsg{keyRunes("s")},
			active: true,
		},
		{
			name:   "enter on simple prompt continues",
			simple: true,
			keys:   []tea.KeyMsg{{Type: tea.KeyEnter}},
			want:   []dirty.Choice{dirty.ChoiceContinue},
		},
		{
			name:   "second key after resolving is ignored",
			simple: true,
			keys:   []tea.KeyMsg{keyRunes("n"), keyRunes("c")},
			want:   []dirty.Choice{dirty.ChoiceCancel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &choiceRecorder{}
			m := NewConfirmation()
			if tt.simple {
				m.Present(rec.simple())
			} else {
				m.Present(rec.saveCapable())
			}
			assert.True(t, m.Active())

			for _, k := range tt.keys {
				m.Update(k)
			}

			assert.Equal(t, tt.want, rec.got)
			assert.Equal(t, tt.active, m.Active())
		})
	}
}

func TestConfirmationModel_PresentFromCallback(t *testing.T) {
	m := NewConfirmation()
	rec := &choiceRecorder{}

	first := &dirty.SimplePrompt{
		Continue: func() { m.Present(rec.saveCapable()) },
		Cancel:   func() {},
	}
	m.Present(first)
	m.Update(keyRunes("c"))

	assert.True(t, m.Active(), "a prompt raised from a callback stays open")
	assert.True(t, dirty.Offers(m.Prompt(), dirty.ChoiceSave))
}

func TestConfirmationModel_YesNo(t *testing.T) {
	var confirmed, cancelled bool
	m := NewConfirmation()
	m.Show(ConfirmationConfig{Title: "Delete", Message: "Delete page?", Type: ConfirmTypeDialog},
		func() tea.Cmd { confirmed = true; return nil },
		func() tea.Cmd { cancelled = true; return nil })

	assert.Nil(t, m.Prompt())
	m.Update(keyRunes("x"))
	assert.True(t, m.Active())

	m.Update(keyRunes("y"))
	assert.True(t, confirmed)
	assert.False(t, cancelled)
	assert.False(t, m.Active())
}

func TestConfirmationModel_ViewShowsChoices(t *testing.T) {
	rec := &choiceRecorder{}
	m := NewConfirmation()

	m.Present(rec.simple())
	view := m.ViewWithWidth(100)
	assert.Contains(t, view, "Continue anyway")
	assert.Contains(t, view, "Cancel")
	assert.NotContains(t, view, "[s] Save")

	m.Hide()
	assert.Empty(t, m.View())
}
