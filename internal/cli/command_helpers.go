package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	validated   bool
}

// NewCommandContext creates a new command context
func NewCommandContext() *CommandContext {
	return &CommandContext{
		ProjectPath: files.ProjectDir,
	}
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return fmt.Errorf("no %s directory found. Run 'cmsdesk init' first", files.ProjectDir)
	}

	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}
	c.Settings = files.ReadSettingsOrDefault()
	return c.Settings
}

// RequireProject is a cobra PreRunE that fails outside a project
func RequireProject() error {
	return NewCommandContext().ValidateProject()
}

// EditorLauncher handles all editor-related operations
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher picks the editor from settings, then $EDITOR, then vi
func NewEditorLauncher(settings *models.Settings) *EditorLauncher {
	editor := ""
	if settings != nil {
		editor = settings.Editor.Command
	}
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// Command builds the editor invocation for path without running it
func (e *EditorLauncher) Command(path string) *exec.Cmd {
	parts := strings.Fields(e.DefaultEditor)
	if len(parts) > 1 {
		return exec.Command(parts[0], append(parts[1:], path)...)
	}
	return exec.Command(e.DefaultEditor, path)
}

// OpenFile opens a file in the configured editor
func (e *EditorLauncher) OpenFile(path string) error {
	editorCmd := e.Command(path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}

// ResolvedResource is a resource found by reference
type ResolvedResource struct {
	Kind     models.ResourceKind
	Name     string
	Path     string
	Archived bool
}

// ResourceResolver finds resources by "kind/name" or bare name
type ResourceResolver struct {
	ProjectPath string
}

// NewResourceResolver creates a resolver rooted at the project directory
func NewResourceResolver() *ResourceResolver {
	return &ResourceResolver{ProjectPath: files.ProjectDir}
}

// Resolve looks ref up. A bare name is searched across pages, templates and
// assets, then the page archive; more than one match is an error.
func (r *ResourceResolver) Resolve(ref string) (*ResolvedResource, error) {
	kind, name, err := ParseResourceRef(ref)
	if err != nil {
		return nil, err
	}

	if kind != "" {
		if res := r.find(kind, name); res != nil {
			return res, nil
		}
		if kind == models.KindPage {
			if res := r.findArchived(name); res != nil {
				return res, nil
			}
		}
		return nil, fmt.Errorf("%s %q: %w", kind.Label(), name, files.ErrNotFound)
	}

	var matches []*ResolvedResource
	for _, k := range []models.ResourceKind{models.KindPage, models.KindTemplate, models.KindAsset} {
		if res := r.find(k, name); res != nil {
			matches = append(matches, res)
		}
	}

	switch len(matches) {
	case 0:
		if res := r.findArchived(name); res != nil {
			return res, nil
		}
		return nil, fmt.Errorf("no page, template or asset named %q: %w", name, files.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("multiple resources named %q. Please specify the kind (e.g., templates/%s)", name, name)
	}
}

func (r *ResourceResolver) find(kind models.ResourceKind, name string) *ResolvedResource {
	if !files.Exists(kind, name) {
		return nil
	}
	dir, err := files.DirFor(kind)
	if err != nil {
		return nil
	}
	return &ResolvedResource{
		Kind: kind,
		Name: name,
		Path: filepath.Join(dir, name+".yaml"),
	}
}

func (r *ResourceResolver) findArchived(slug string) *ResolvedResource {
	if _, err := files.ReadArchivedPage(slug); err != nil {
		return nil
	}
	return &ResolvedResource{
		Kind:     models.KindPage,
		Name:     slug,
		Path:     filepath.Join(r.ProjectPath, files.ArchiveDir, files.PagesDir, slug+".yaml"),
		Archived: true,
	}
}
