package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

func TestFindPagesUsingTemplate(t *testing.T) {
	setupProject(t)
	require.NoError(t, WriteTemplate(&models.Template{Name: "blog"}))
	require.NoError(t, WritePage(&models.Page{Title: "A", Template: "blog"}))
	require.NoError(t, WritePage(&models.Page{Title: "B", Template: DefaultTemplateName}))
	require.NoError(t, WritePage(&models.Page{Title: "C", Template: "blog"}))
	_, err := ApplyWorkflowAction("c", models.ActionArchive, models.WorkflowSettings{})
	require.NoError(t, err)

	active, archived, err := FindPagesUsingTemplate("blog")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, active)
	assert.Equal(t, []string{"c"}, archived)
}

func TestDeleteTemplateInUse(t *testing.T) {
	setupProject(t)
	require.NoError(t, WritePage(&models.Page{Title: "Home", Template: DefaultTemplateName}))

	err := DeleteTemplate(DefaultTemplateName)
	assert.ErrorIs(t, err, ErrInUse)
	assert.True(t, Exists(models.KindTemplate, DefaultTemplateName))

	require.NoError(t, WriteTemplate(&models.Template{Name: "unused"}))
	assert.NoError(t, DeleteTemplate("unused"))
}

func TestRenameTemplateUpdatesPages(t *testing.T) {
	setupProject(t)
	require.NoError(t, WriteTemplate(&models.Template{Name: "blog", Markup: "x"}))
	require.NoError(t, WritePage(&models.Page{Title: "Post", Template: "blog"}))

	require.NoError(t, RenameTemplate("blog", "article"))

	assert.False(t, Exists(models.KindTemplate, "blog"))
	tmpl, err := ReadTemplate("article")
	require.NoError(t, err)
	assert.Equal(t, "x", tmpl.Markup)

	page, err := ReadPage("post")
	require.NoError(t, err)
	assert.Equal(t, "article", page.Template)
}

func TestRenameTemplateTargetExists(t *testing.T) {
	setupProject(t)
	require.NoError(t, WriteTemplate(&models.Template{Name: "blog"}))

	err := RenameTemplate("blog", DefaultTemplateName)
	assert.ErrorIs(t, err, ErrExists)
}
