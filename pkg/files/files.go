package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

const (
	ProjectDir   = ".cmsdesk"
	PagesDir     = "pages"
	TemplatesDir = "templates"
	AssetsDir    = "assets"
	ArchiveDir   = "archive"
	SettingsFile = "settings.yaml"

	DefaultTemplateName = "default"
	fileExt             = ".yaml"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

func InitProjectStructure() error {
	dirs := []string{
		ProjectDir,
		filepath.Join(ProjectDir, PagesDir),
		filepath.Join(ProjectDir, TemplatesDir),
		filepath.Join(ProjectDir, AssetsDir),
		filepath.Join(ProjectDir, ArchiveDir, PagesDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(filepath.Join(ProjectDir, SettingsFile)); os.IsNotExist(err) {
		if err := WriteSettings(models.DefaultSettings()); err != nil {
			return err
		}
	}

	if _, err := ReadTemplate(DefaultTemplateName); errors.Is(err, ErrNotFound) {
		tmpl := &models.Template{
			Name:    DefaultTemplateName,
			Regions: []string{"content"},
			Markup:  "# {{title}}\n\n{{content}}\n",
		}
		if err := WriteTemplate(tmpl); err != nil {
			return err
		}
	}

	return nil
}

// DirFor returns the directory holding resources of kind
func DirFor(kind models.ResourceKind) (string, error) {
	switch kind {
	case models.KindPage:
		return filepath.Join(ProjectDir, PagesDir), nil
	case models.KindTemplate:
		return filepath.Join(ProjectDir, TemplatesDir), nil
	case models.KindAsset:
		return filepath.Join(ProjectDir, AssetsDir), nil
	}
	return "", fmt.Errorf("%w: %s has no storage directory", models.ErrUnknownKind, kind.Label())
}

// ListNames returns the names (file names without extension) of every
// resource of kind, in directory order
func ListNames(kind models.ResourceKind) ([]string, error) {
	dir, err := DirFor(kind)
	if err != nil {
		return nil, err
	}
	return listYAML(dir)
}

// Delete removes a stored resource
func Delete(kind models.ResourceKind, name string) error {
	path, err := resourcePath(kind, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s %q: %w", kind.Label(), name, ErrNotFound)
		}
		return fmt.Errorf("failed to delete %s %s: %w", kind.Label(), name, err)
	}
	return nil
}

// Exists reports whether a resource file is present
func Exists(kind models.ResourceKind, name string) bool {
	path, err := resourcePath(kind, name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func resourcePath(kind models.ResourceKind, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	dir, err := DirFor(kind)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+fileExt), nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}

func listYAML(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), fileExt) {
			names = append(names, strings.TrimSuffix(entry.Name(), fileExt))
		}
	}
	return names, nil
}

func readYAML(path, what string, out interface{}) (os.FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", what, err)
	}

	if err := yaml.Unmarshal(content, out); err != nil {
		return nil, fmt.Errorf("failed to parse %s YAML: %w", what, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", what, err)
	}
	return info, nil
}

func writeYAML(path, what string, in interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", what, err)
	}

	content, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal %s to YAML: %w", what, err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", what, err)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}
