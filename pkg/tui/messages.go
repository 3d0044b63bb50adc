package tui

import (
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// Messages for communication between views

type StatusMsg string

type openResourceMsg struct {
	kind models.ResourceKind
	name string
}

type closeEditorMsg struct{}

type reloadMsg struct {
	kind models.ResourceKind
}

type resourcesLoadedMsg struct {
	kind  models.ResourceKind
	items []browserItem
	err   error
}

type deleteRequestMsg struct {
	kind models.ResourceKind
	name string
}

type newPageRequestMsg struct{}

type pageCreatedMsg struct {
	page *models.Page
}

type workflowActionMsg struct {
	slug   string
	action models.WorkflowAction
}

type scheduleRequestMsg struct {
	slug    string
	publish string
	remove  string
	comment string
}

type workflowLoadedMsg struct {
	pages []*models.Page
	err   error
}

type changeEventMsg files.ChangeEvent

type watcherClosedMsg struct{}
