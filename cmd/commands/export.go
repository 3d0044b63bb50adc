package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/pkg/composer"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

var (
	exportToFile      string
	exportFrontMatter bool
	exportLiveDir     string
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [page]",
		Short: "Export composed pages to stdout or files",
		Long: `Export a page rendered through its template.

By default the composed content is written to stdout. Use --file to write
it to a file, or --live-dir to export every live page at once.

Examples:
  # Export a page to stdout
  cmsdesk export about

  # Export with YAML front matter for a static site generator
  cmsdesk export about --front-matter --file site/content/about.md

  # Export every live page
  cmsdesk export --live-dir site/content`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: requireProject,
		RunE:    runExport,
	}

	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Export to file instead of stdout")
	cmd.Flags().BoolVar(&exportFrontMatter, "front-matter", false, "Prefix output with YAML front matter")
	cmd.Flags().StringVar(&exportLiveDir, "live-dir", "", "Export every live page into this directory")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportLiveDir != "" {
		if len(args) > 0 {
			return fmt.Errorf("--live-dir exports every live page; do not name a page")
		}
		return exportLive(cmd)
	}
	if len(args) == 0 {
		return fmt.Errorf("name a page to export, or use --live-dir")
	}

	content, err := composeForExport(args[0])
	if err != nil {
		return err
	}

	if exportToFile == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	if err := composer.WriteExport(content, exportToFile); err != nil {
		return err
	}
	cli.PrintSuccess("Exported %s to %s", args[0], exportToFile)
	return nil
}

func composeForExport(slug string) (string, error) {
	content, page, err := composer.ComposeSlug(slug)
	if err != nil {
		return "", fmt.Errorf("failed to compose page: %w", err)
	}
	if exportFrontMatter {
		return composer.WithFrontMatter(page, content)
	}
	return content, nil
}

func exportLive(cmd *cobra.Command) error {
	pages, errs := files.LoadPages()
	for _, err := range errs {
		cli.PrintWarning("Skipping page: %v", err)
	}

	count := 0
	for _, page := range pages {
		if page.State != models.StateLive {
			continue
		}
		content, err := composeForExport(page.Slug)
		if err != nil {
			return err
		}
		path := filepath.Join(exportLiveDir, page.Slug+".md")
		if err := composer.WriteExport(content, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", page.Slug, path)
		count++
	}

	cli.PrintSuccess("Exported %d live page(s)", count)
	return nil
}
