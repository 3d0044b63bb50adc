package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

func ReadArchivedPage(slug string) (*models.Page, error) {
	path, err := archivedPagePath(slug)
	if err != nil {
		return nil, err
	}

	var page models.Page
	info, err := readYAML(path, "archived page "+slug, &page)
	if err != nil {
		return nil, err
	}
	if page.Slug == "" {
		page.Slug = slug
	}
	page.Modified = info.ModTime()
	return &page, nil
}

func ListArchivedPages() ([]string, error) {
	return listYAML(filepath.Join(ProjectDir, ArchiveDir, PagesDir))
}

// archivePage moves a page into the archive directory
func archivePage(page *models.Page) error {
	archivePath, err := archivedPagePath(page.Slug)
	if err != nil {
		return err
	}
	activePath, err := resourcePath(models.KindPage, page.Slug)
	if err != nil {
		return err
	}

	if err := writeYAML(archivePath, "archived page "+page.Slug, page); err != nil {
		return err
	}
	if err := os.Remove(activePath); err != nil && !os.IsNotExist(err) {
		// Rollback: keep the page active
		os.Remove(archivePath)
		return fmt.Errorf("failed to remove archived page from active pages: %w", err)
	}
	return nil
}

// unarchivePage moves a page back to the active pages directory
func unarchivePage(page *models.Page) error {
	archivePath, err := archivedPagePath(page.Slug)
	if err != nil {
		return err
	}
	if Exists(models.KindPage, page.Slug) {
		return fmt.Errorf("cannot restore page %q: %w", page.Slug, ErrExists)
	}

	if err := WritePage(page); err != nil {
		return err
	}
	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		activePath, _ := resourcePath(models.KindPage, page.Slug)
		os.Remove(activePath)
		return fmt.Errorf("failed to remove page from archive: %w", err)
	}
	return nil
}

// DeleteArchivedPage removes a page from the archive permanently
func DeleteArchivedPage(slug string) error {
	path, err := archivedPagePath(slug)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("archived page %q: %w", slug, ErrNotFound)
		}
		return fmt.Errorf("failed to delete archived page '%s': %w", slug, err)
	}
	return nil
}
