package files

import (
	"fmt"
	"path/filepath"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

func ReadPage(slug string) (*models.Page, error) {
	path, err := resourcePath(models.KindPage, slug)
	if err != nil {
		return nil, err
	}

	var page models.Page
	info, err := readYAML(path, "page "+slug, &page)
	if err != nil {
		return nil, err
	}

	if page.Slug == "" {
		page.Slug = slug
	}
	if page.State == "" {
		page.State = models.StateDraft
	}
	page.Modified = info.ModTime()
	return &page, nil
}

// WritePage stores a page under its slug, deriving the slug from the title
// and assigning an ID the first time.
func WritePage(page *models.Page) error {
	if page.Slug == "" {
		page.Slug = models.Slugify(page.Title)
	}
	if page.ID == "" {
		page.ID = newID()
	}
	if page.State == "" {
		page.State = models.StateDraft
	}

	path, err := resourcePath(models.KindPage, page.Slug)
	if err != nil {
		return fmt.Errorf("invalid page slug: %w", err)
	}
	return writeYAML(path, "page "+page.Slug, page)
}

func ListPages() ([]string, error) {
	return ListNames(models.KindPage)
}

// LoadPages reads every active page, skipping files that fail to parse
func LoadPages() ([]*models.Page, []error) {
	slugs, err := ListPages()
	if err != nil {
		return nil, []error{err}
	}

	var pages []*models.Page
	var errs []error
	for _, slug := range slugs {
		page, err := ReadPage(slug)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pages = append(pages, page)
	}
	return pages, errs
}

// NewPageFromTemplate creates a draft page whose body is seeded from the
// template's regions.
func NewPageFromTemplate(title, templateName string) (*models.Page, error) {
	if title == "" {
		return nil, fmt.Errorf("page title cannot be empty")
	}
	slug := models.Slugify(title)
	if slug == "" {
		return nil, fmt.Errorf("page title %q produces an empty slug", title)
	}
	if templateName == "" {
		templateName = DefaultTemplateName
	}

	tmpl, err := ReadTemplate(templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	if Exists(models.KindPage, slug) || archivedPageExists(slug) {
		return nil, fmt.Errorf("page %q: %w", slug, ErrExists)
	}

	page := &models.Page{
		Title:    title,
		Slug:     slug,
		Template: tmpl.Name,
		State:    models.StateDraft,
		Body:     seedBody(title, tmpl),
	}
	if err := WritePage(page); err != nil {
		return nil, err
	}
	return page, nil
}

func seedBody(title string, tmpl *models.Template) string {
	body := "# " + title + "\n"
	for _, region := range tmpl.Regions {
		if region == "content" {
			body += "\n"
			continue
		}
		body += fmt.Sprintf("\n## %s\n", region)
	}
	return body
}

func archivedPageExists(slug string) bool {
	_, err := ReadArchivedPage(slug)
	return err == nil
}

func archivedPagePath(slug string) (string, error) {
	if err := validateName(slug); err != nil {
		return "", err
	}
	return filepath.Join(ProjectDir, ArchiveDir, PagesDir, slug+fileExt), nil
}
