package files

import (
	"fmt"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

func ReadTemplate(name string) (*models.Template, error) {
	path, err := resourcePath(models.KindTemplate, name)
	if err != nil {
		return nil, err
	}

	var tmpl models.Template
	info, err := readYAML(path, "template "+name, &tmpl)
	if err != nil {
		return nil, err
	}
	if tmpl.Name == "" {
		tmpl.Name = name
	}
	tmpl.Modified = info.ModTime()
	return &tmpl, nil
}

func WriteTemplate(tmpl *models.Template) error {
	if tmpl.Name == "" {
		return fmt.Errorf("template name cannot be empty")
	}
	if tmpl.ID == "" {
		tmpl.ID = newID()
	}
	path, err := resourcePath(models.KindTemplate, tmpl.Name)
	if err != nil {
		return fmt.Errorf("invalid template name: %w", err)
	}
	return writeYAML(path, "template "+tmpl.Name, tmpl)
}

func ListTemplates() ([]string, error) {
	return ListNames(models.KindTemplate)
}
