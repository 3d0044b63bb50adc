package commands

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/pkg/composer"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
	"github.com/cmsdesk/cmsdesk-cli/pkg/utils"
)

var (
	clipboardComposed bool
	// writeClipboard is replaced in tests
	writeClipboard = clipboard.WriteAll
)

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard <resource>",
		Short: "Copy a page, template or asset to the clipboard",
		Long: `Copy the content of a resource to the system clipboard.

Pages copy their Markdown body, templates their markup and assets their
source path.

Examples:
  # Copy a page body
  cmsdesk clipboard about

  # Copy a page rendered through its template
  cmsdesk clipboard about --composed

  # Copy template markup
  cmsdesk clipboard templates/landing`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip", "copy"},
		PreRunE: requireProject,
		RunE:    runClipboard,
	}

	cmd.Flags().BoolVar(&clipboardComposed, "composed", false, "Copy a page rendered through its template")

	return cmd
}

func runClipboard(cmd *cobra.Command, args []string) error {
	res, err := cli.NewResourceResolver().Resolve(args[0])
	if err != nil {
		return err
	}

	content, err := clipboardContent(res)
	if err != nil {
		return err
	}

	if err := writeClipboard(content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	cli.PrintSuccess("Copied %s '%s' to clipboard", res.Kind.Label(), res.Name)
	cli.PrintInfo("Length: %s", utils.FormatStats(content))

	lines := strings.Split(content, "\n")
	preview := lines[0]
	if len(lines) > 1 {
		preview += " ..."
	}
	cli.PrintInfo("Preview: %s", cli.TruncateString(preview, 80))
	return nil
}

func clipboardContent(res *cli.ResolvedResource) (string, error) {
	switch res.Kind {
	case models.KindPage:
		if clipboardComposed {
			out, _, err := composer.ComposeSlug(res.Name)
			return out, err
		}
		var page *models.Page
		var err error
		if res.Archived {
			page, err = files.ReadArchivedPage(res.Name)
		} else {
			page, err = files.ReadPage(res.Name)
		}
		if err != nil {
			return "", err
		}
		return page.Body, nil
	case models.KindTemplate:
		tmpl, err := files.ReadTemplate(res.Name)
		if err != nil {
			return "", err
		}
		return tmpl.Markup, nil
	case models.KindAsset:
		asset, err := files.ReadAsset(res.Name)
		if err != nil {
			return "", err
		}
		return asset.Source, nil
	}
	return "", fmt.Errorf("cannot copy %s", res.Kind.Label())
}
