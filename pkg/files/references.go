package files

import (
	"errors"
	"fmt"
	"os"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

var ErrInUse = errors.New("still in use")

// FindPagesUsingTemplate returns the slugs of active and archived pages
// built on the named template
func FindPagesUsingTemplate(name string) (active []string, archived []string, err error) {
	pages, errs := LoadPages()
	if len(errs) > 0 && len(pages) == 0 {
		return nil, nil, errors.Join(errs...)
	}
	for _, page := range pages {
		if page.Template == name {
			active = append(active, page.Slug)
		}
	}

	archivedSlugs, err := ListArchivedPages()
	if err != nil {
		return nil, nil, err
	}
	for _, slug := range archivedSlugs {
		page, err := ReadArchivedPage(slug)
		if err != nil {
			continue
		}
		if page.Template == name {
			archived = append(archived, slug)
		}
	}
	return active, archived, nil
}

// DeleteTemplate refuses to delete a template that active pages still use
func DeleteTemplate(name string) error {
	active, _, err := FindPagesUsingTemplate(name)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return fmt.Errorf("template %q used by %d page(s): %w", name, len(active), ErrInUse)
	}
	return Delete(models.KindTemplate, name)
}

// RenameTemplate renames a template and rewrites every active page that
// references it. On failure the pages already rewritten are restored.
func RenameTemplate(oldName, newName string) error {
	if err := validateName(newName); err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}
	if Exists(models.KindTemplate, newName) {
		return fmt.Errorf("template %q: %w", newName, ErrExists)
	}

	tmpl, err := ReadTemplate(oldName)
	if err != nil {
		return err
	}
	active, _, err := FindPagesUsingTemplate(oldName)
	if err != nil {
		return err
	}

	tmpl.Name = newName
	if err := WriteTemplate(tmpl); err != nil {
		return err
	}

	type backup struct {
		path    string
		content []byte
	}
	var done []backup
	rollback := func() {
		for _, b := range done {
			os.WriteFile(b.path, b.content, 0644)
		}
		Delete(models.KindTemplate, newName)
	}

	for _, slug := range active {
		path, _ := resourcePath(models.KindPage, slug)
		content, err := os.ReadFile(path)
		if err != nil {
			rollback()
			return fmt.Errorf("failed to back up page %s: %w", slug, err)
		}
		page, err := ReadPage(slug)
		if err != nil {
			rollback()
			return err
		}
		page.Template = newName
		if err := WritePage(page); err != nil {
			rollback()
			return fmt.Errorf("failed to update page %s: %w", slug, err)
		}
		done = append(done, backup{path: path, content: content})
	}

	if err := Delete(models.KindTemplate, oldName); err != nil {
		rollback()
		return err
	}
	return nil
}
