package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Type  string     `json:"type" yaml:"type"`
	Items []ListItem `json:"items" yaml:"items"`
	Count int        `json:"count" yaml:"count"`
}

// ListItem represents a single item in the list
type ListItem struct {
	Name       string `json:"name" yaml:"name"`
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	Kind       string `json:"kind" yaml:"kind"`
	State      string `json:"state,omitempty" yaml:"state,omitempty"`
	Template   string `json:"template,omitempty" yaml:"template,omitempty"`
	PublishAt  string `json:"publish_at,omitempty" yaml:"publish_at,omitempty"`
	RemoveAt   string `json:"remove_at,omitempty" yaml:"remove_at,omitempty"`
	Regions    int    `json:"regions,omitempty" yaml:"regions,omitempty"`
	MimeType   string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	IsArchived bool   `json:"is_archived,omitempty" yaml:"is_archived,omitempty"`
}

var (
	listShowArchived bool
	listShowPaths    bool
	listState        string
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [type]",
		Short: "List pages, templates and assets",
		Long: `List the content in the current project.

Types:
  pages       - List only pages
  templates   - List only templates
  assets      - List only assets
  all         - List everything (default)

Examples:
  # List everything
  cmsdesk list

  # List pages waiting for approval
  cmsdesk list pages --state pending

  # List templates as JSON
  cmsdesk list templates -o json

  # Show archived pages
  cmsdesk list pages --archived`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"pages", "templates", "assets", "all"},
		PreRunE:   requireProject,
		RunE:      runList,
	}

	cmd.Flags().BoolVarP(&listShowArchived, "archived", "a", false, "Show only archived pages")
	cmd.Flags().BoolVar(&listShowPaths, "paths", false, "Show file paths")
	cmd.Flags().StringVar(&listState, "state", "", "Only pages in this workflow state")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	listType := "all"
	if len(args) > 0 {
		listType = strings.ToLower(args[0])
	}
	kinds, err := cli.ParseKinds(listType)
	if err != nil {
		return err
	}

	settings := cli.NewCommandContext().LoadSettingsWithDefault()
	result := ListResult{Type: listType}

	for _, kind := range kinds {
		var items []ListItem
		switch kind {
		case models.KindPage:
			items, err = listPages(settings.Workflow.ScheduleLayout)
		case models.KindTemplate:
			items, err = listTemplates()
		case models.KindAsset:
			items, err = listAssets()
		default:
			err = fmt.Errorf("cannot list %s", kind.Plural())
		}
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", kind.Plural(), err)
		}
		result.Items = append(result.Items, items...)
	}

	result.Count = len(result.Items)

	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	default:
		return outputListText(cmd, result)
	}
}

func listPages(layout string) ([]ListItem, error) {
	var pages []*models.Page
	if listShowArchived {
		slugs, err := files.ListArchivedPages()
		if err != nil {
			return nil, err
		}
		for _, slug := range slugs {
			page, err := files.ReadArchivedPage(slug)
			if err != nil {
				cli.PrintWarning("Failed to load archived page %s: %v", slug, err)
				continue
			}
			pages = append(pages, page)
		}
	} else {
		loaded, errs := files.LoadPages()
		for _, err := range errs {
			cli.PrintWarning("Failed to load page: %v", err)
		}
		pages = loaded
	}

	var items []ListItem
	for _, page := range pages {
		if listState != "" && string(page.State) != listState {
			continue
		}
		item := ListItem{
			Name:       page.Slug,
			Title:      page.Title,
			Kind:       string(models.KindPage),
			State:      string(page.State),
			Template:   page.Template,
			IsArchived: listShowArchived,
		}
		item.PublishAt = formatOptional(page.PublishAt, layout)
		item.RemoveAt = formatOptional(page.RemoveAt, layout)
		if listShowPaths {
			item.Path = resourceFilePath(models.KindPage, page.Slug, listShowArchived)
		}
		items = append(items, item)
	}
	return items, nil
}

func listTemplates() ([]ListItem, error) {
	if listShowArchived {
		return nil, nil
	}
	names, err := files.ListTemplates()
	if err != nil {
		return nil, err
	}

	var items []ListItem
	for _, name := range names {
		tmpl, err := files.ReadTemplate(name)
		if err != nil {
			cli.PrintWarning("Failed to load template %s: %v", name, err)
			continue
		}
		item := ListItem{
			Name:    name,
			Kind:    string(models.KindTemplate),
			Regions: len(tmpl.Regions),
		}
		if listShowPaths {
			item.Path = resourceFilePath(models.KindTemplate, name, false)
		}
		items = append(items, item)
	}
	return items, nil
}

func listAssets() ([]ListItem, error) {
	if listShowArchived {
		return nil, nil
	}
	names, err := files.ListAssets()
	if err != nil {
		return nil, err
	}

	var items []ListItem
	for _, name := range names {
		asset, err := files.ReadAsset(name)
		if err != nil {
			cli.PrintWarning("Failed to load asset %s: %v", name, err)
			continue
		}
		item := ListItem{
			Name:     name,
			Kind:     string(models.KindAsset),
			MimeType: asset.MimeType,
		}
		if listShowPaths {
			item.Path = resourceFilePath(models.KindAsset, name, false)
		}
		items = append(items, item)
	}
	return items, nil
}

func outputListText(cmd *cobra.Command, result ListResult) error {
	if result.Count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No items found")
		return nil
	}

	grouped := map[string][]ListItem{}
	for _, item := range result.Items {
		grouped[item.Kind] = append(grouped[item.Kind], item)
	}

	out := cmd.OutOrStdout()
	if pages := grouped[string(models.KindPage)]; len(pages) > 0 {
		fmt.Fprintln(out, "\nPAGES")

		table := cli.NewTableFormatter(out)
		columns := []string{"Slug", "Title", "State", "Template", "Publish At", "Remove At"}
		if listShowPaths {
			columns = append(columns, "Path")
		}
		table.Header(columns...)
		for _, p := range pages {
			row := []string{p.Name, cli.TruncateString(p.Title, 40), p.State, cli.OrDash(p.Template), cli.OrDash(p.PublishAt), cli.OrDash(p.RemoveAt)}
			if listShowPaths {
				row = append(row, p.Path)
			}
			table.Row(row...)
		}
		table.Flush()
	}

	if templates := grouped[string(models.KindTemplate)]; len(templates) > 0 {
		fmt.Fprintln(out, "\nTEMPLATES")

		table := cli.NewTableFormatter(out)
		columns := []string{"Name", "Regions"}
		if listShowPaths {
			columns = append(columns, "Path")
		}
		table.Header(columns...)
		for _, t := range templates {
			row := []string{t.Name, fmt.Sprintf("%d", t.Regions)}
			if listShowPaths {
				row = append(row, t.Path)
			}
			table.Row(row...)
		}
		table.Flush()
	}

	if assets := grouped[string(models.KindAsset)]; len(assets) > 0 {
		fmt.Fprintln(out, "\nASSETS")

		table := cli.NewTableFormatter(out)
		columns := []string{"Name", "MIME Type"}
		if listShowPaths {
			columns = append(columns, "Path")
		}
		table.Header(columns...)
		for _, a := range assets {
			row := []string{a.Name, cli.OrDash(a.MimeType)}
			if listShowPaths {
				row = append(row, a.Path)
			}
			table.Row(row...)
		}
		table.Flush()
	}

	fmt.Fprintf(out, "\nTotal: %d items\n", result.Count)
	return nil
}

func resourceFilePath(kind models.ResourceKind, name string, archived bool) string {
	if archived {
		return filepath.Join(files.ProjectDir, files.ArchiveDir, files.PagesDir, name+".yaml")
	}
	dir, err := files.DirFor(kind)
	if err != nil {
		return ""
	}
	return filepath.Join(dir, name+".yaml")
}
