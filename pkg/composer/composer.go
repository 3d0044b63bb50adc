package composer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

const contentRegion = "content"

// SplitRegions cuts a page body into the sections named by regions. A
// "## <region>" heading starts a section; text before the first such
// heading, minus the leading "# title" line, belongs to "content".
func SplitRegions(body string, regions []string) map[string]string {
	known := make(map[string]bool, len(regions))
	for _, r := range regions {
		known[r] = true
	}

	sections := make(map[string]*strings.Builder)
	current := contentRegion
	titleSeen := false

	for _, line := range strings.Split(body, "\n") {
		if !titleSeen && strings.HasPrefix(line, "# ") {
			titleSeen = true
			continue
		}
		if name, ok := strings.CutPrefix(line, "## "); ok && known[strings.TrimSpace(name)] {
			current = strings.TrimSpace(name)
			continue
		}
		if strings.TrimSpace(line) != "" {
			titleSeen = true
		}
		b, ok := sections[current]
		if !ok {
			b = &strings.Builder{}
			sections[current] = b
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	out := make(map[string]string, len(sections))
	for name, b := range sections {
		out[name] = strings.TrimSpace(b.String())
	}
	return out
}

// ComposePage fills the template markup with the page's title, slug and
// region sections. Regions the page does not provide render empty.
func ComposePage(page *models.Page, tmpl *models.Template) (string, error) {
	if page == nil {
		return "", fmt.Errorf("page is nil")
	}
	if tmpl == nil {
		return "", fmt.Errorf("template is nil")
	}

	regions := tmpl.Regions
	if len(regions) == 0 {
		regions = []string{contentRegion}
	}
	sections := SplitRegions(page.Body, regions)

	pairs := []string{
		"{{title}}", page.Title,
		"{{slug}}", page.Slug,
	}
	for _, region := range regions {
		pairs = append(pairs, "{{"+region+"}}", sections[region])
	}

	markup := tmpl.Markup
	if strings.TrimSpace(markup) == "" {
		markup = "# {{title}}\n\n{{content}}\n"
	}
	return strings.NewReplacer(pairs...).Replace(markup), nil
}

// ComposeSlug loads a page, active or archived, with its template and
// composes it
func ComposeSlug(slug string) (string, *models.Page, error) {
	page, err := files.ReadPage(slug)
	if err != nil {
		archived, archErr := files.ReadArchivedPage(slug)
		if archErr != nil {
			return "", nil, err
		}
		page = archived
	}

	name := page.Template
	if name == "" {
		name = files.DefaultTemplateName
	}
	tmpl, err := files.ReadTemplate(name)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load template for page %s: %w", slug, err)
	}

	out, err := ComposePage(page, tmpl)
	if err != nil {
		return "", nil, err
	}
	return out, page, nil
}

// WriteExport writes composed content to path, creating parent directories
func WriteExport(content, path string) error {
	if path == "" {
		return fmt.Errorf("export path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
