package files

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// ApplyWorkflowAction moves the page identified by slug through the
// workflow and persists the result. Archiving moves the file into the
// archive; restoring moves it back.
func ApplyWorkflowAction(slug string, action models.WorkflowAction, policy models.WorkflowSettings) (*models.Page, error) {
	var page *models.Page
	var err error
	if action == models.ActionRestore {
		page, err = ReadArchivedPage(slug)
	} else {
		page, err = ReadPage(slug)
	}
	if err != nil {
		return nil, err
	}

	next, err := policy.Check(page.State, action)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", slug, err)
	}

	previous := page.State
	page.State = next
	if next == models.StateLive {
		page.PublishAt = nil
	}
	if previous == models.StateLive && next != models.StateLive {
		page.RemoveAt = nil
	}

	switch {
	case next == models.StateArchived:
		err = archivePage(page)
	case previous == models.StateArchived:
		err = unarchivePage(page)
	default:
		err = WritePage(page)
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

// SetSchedule replaces the page's publish and removal dates and its
// workflow comment. Draft and pending pages accept both dates; live pages
// only a removal date. Archived pages cannot be scheduled.
func SetSchedule(slug string, sched models.Schedule) (*models.Page, error) {
	if err := sched.Validate(); err != nil {
		return nil, err
	}

	page, err := ReadPage(slug)
	if err != nil {
		return nil, err
	}

	switch page.State {
	case models.StateArchived:
		return nil, fmt.Errorf("%w: cannot schedule an archived page", models.ErrIllegalTransition)
	case models.StateLive:
		if !sched.PublishAt.IsZero() {
			return nil, fmt.Errorf("%w: page is already live, only a removal date can be set", models.ErrIllegalTransition)
		}
	}

	page.ApplySchedule(sched)
	if err := WritePage(page); err != nil {
		return nil, err
	}
	return page, nil
}

// DueForPublish lists pages whose schedule is at or before now
func DueForPublish(now time.Time) ([]*models.Page, error) {
	pages, errs := LoadPages()
	if len(errs) > 0 && len(pages) == 0 {
		return nil, errors.Join(errs...)
	}

	var due []*models.Page
	for _, page := range pages {
		if page.PublishAt == nil || page.PublishAt.After(now) {
			continue
		}
		if page.State == models.StateDraft || page.State == models.StatePending {
			due = append(due, page)
		}
	}
	return due, nil
}

// PublishDue publishes every page that is due and returns the slugs that
// went live. Pages the policy refuses are reported in the joined error.
func PublishDue(now time.Time, policy models.WorkflowSettings) ([]string, error) {
	due, err := DueForPublish(now)
	if err != nil {
		return nil, err
	}

	var published []string
	var errs []error
	for _, page := range due {
		if _, err := ApplyWorkflowAction(page.Slug, models.ActionPublish, policy); err != nil {
			errs = append(errs, err)
			continue
		}
		published = append(published, page.Slug)
	}
	return published, errors.Join(errs...)
}

// DueForRemoval lists live pages whose removal date is at or before now
func DueForRemoval(now time.Time) ([]*models.Page, error) {
	pages, errs := LoadPages()
	if len(errs) > 0 && len(pages) == 0 {
		return nil, errors.Join(errs...)
	}

	var due []*models.Page
	for _, page := range pages {
		if page.State != models.StateLive || page.RemoveAt == nil || page.RemoveAt.After(now) {
			continue
		}
		due = append(due, page)
	}
	return due, nil
}

// UnpublishDue takes down every live page whose removal date has passed
// and returns their slugs. Failures are reported in the joined error.
func UnpublishDue(now time.Time, policy models.WorkflowSettings) ([]string, error) {
	due, err := DueForRemoval(now)
	if err != nil {
		return nil, err
	}

	var removed []string
	var errs []error
	for _, page := range due {
		if _, err := ApplyWorkflowAction(page.Slug, models.ActionUnpublish, policy); err != nil {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, page.Slug)
	}
	return removed, errors.Join(errs...)
}
