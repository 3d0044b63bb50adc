package composer

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

type frontMatter struct {
	Title     string     `yaml:"title"`
	Slug      string     `yaml:"slug"`
	Template  string     `yaml:"template,omitempty"`
	State     string     `yaml:"state"`
	PublishAt *time.Time `yaml:"publish_at,omitempty"`
	RemoveAt  *time.Time `yaml:"remove_at,omitempty"`
}

// WithFrontMatter prefixes composed content with a YAML front matter block
// describing the page, the format static site generators expect
func WithFrontMatter(page *models.Page, content string) (string, error) {
	data, err := yaml.Marshal(frontMatter{
		Title:     page.Title,
		Slug:      page.Slug,
		Template:  page.Template,
		State:     string(page.State),
		PublishAt: page.PublishAt,
		RemoveAt:  page.RemoveAt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode front matter: %w", err)
	}
	return "---\n" + string(data) + "---\n\n" + content, nil
}
