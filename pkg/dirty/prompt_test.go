package dirty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChoiceLabels(t *testing.T) {
	assert.Equal(t, "Save", ChoiceSave.Label())
	assert.Equal(t, "Continue anyway", ChoiceContinue.Label())
	assert.Equal(t, "Cancel", ChoiceCancel.Label())
	assert.Equal(t, "", Choice(99).Label())
}

func TestSaveCapable(t *testing.T) {
	assert.True(t, SaveCapable(ViewPageEditor))
	assert.True(t, SaveCapable(ViewTemplateEditor))
	assert.True(t, SaveCapable(ViewWidgetBuilder))
	assert.False(t, SaveCapable(ViewAssetEditor))
	assert.False(t, SaveCapable(ViewWorkflow))
}

func TestSimplePrompt_Resolve(t *testing.T) {
	var continued, cancelled bool
	p := &SimplePrompt{
		Continue: func() { continued = true },
		Cancel:   func() { cancelled = true },
	}

	assert.False(t, p.Resolve(ChoiceSave))
	assert.True(t, p.Resolve(ChoiceCancel))
	assert.True(t, cancelled)
	assert.False(t, p.Resolve(ChoiceContinue))
	assert.False(t, continued)
}

func TestSaveCapablePrompt_NilCallbacks(t *testing.T) {
	p := &SaveCapablePrompt{}
	assert.NotPanics(t, func() {
		assert.True(t, p.Resolve(ChoiceSave))
	})
	assert.False(t, p.Resolve(Choice(7)))
}
