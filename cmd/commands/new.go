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

var (
	newTemplate string
	newEdit     bool
)

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a draft page from a template",
		Long: `Create a new draft page. The slug is derived from the title and the
body is seeded with one section per template region.

Examples:
  # Create a page with the default template
  cmsdesk new "About Us"

  # Create a page from another template
  cmsdesk new "Spring Sale" --template landing

  # Create and open it in your editor
  cmsdesk new "Contact" --edit`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: requireProject,
		RunE:    runNew,
	}

	cmd.Flags().StringVarP(&newTemplate, "template", "t", "", "Template to build the page on (default from settings)")
	cmd.Flags().BoolVarP(&newEdit, "edit", "e", false, "Open the new page in your editor")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	ctx := cli.NewCommandContext()
	settings := ctx.LoadSettingsWithDefault()

	templateName := newTemplate
	if templateName == "" {
		templateName = settings.Workflow.DefaultTemplate
	}

	page, err := files.NewPageFromTemplate(title, templateName)
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		if err := cli.OutputResults(cmd.OutOrStdout(), format, page); err != nil {
			return err
		}
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Created page %s (template %s)\n", page.Slug, page.Template)
	}

	if newEdit {
		dir, err := files.DirFor(models.KindPage)
		if err != nil {
			return err
		}
		return cli.NewEditorLauncher(settings).OpenFile(filepath.Join(dir, page.Slug+".yaml"))
	}
	return nil
}
