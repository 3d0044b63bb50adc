package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// NewArchiveCommand creates the archive command
func NewArchiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <page>",
		Short: "Archive a page",
		Long: `Archive a page to move it out of the site.

Archived pages are moved to the archive directory and won't appear
in normal listings unless specifically requested.

Examples:
  # Archive a page
  cmsdesk archive spring-sale

  # Archive without confirmation
  cmsdesk archive spring-sale -y`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runArchive,
	}

	return cmd
}

func runArchive(cmd *cobra.Command, args []string) error {
	slug := args[0]

	confirmed, err := cli.Confirm(fmt.Sprintf("Archive page '%s'?", slug), false)
	if err != nil {
		return err
	}
	if !confirmed {
		cli.PrintInfo("Archive cancelled")
		return nil
	}

	page, err := applyAction(slug, models.ActionArchive)
	if err != nil {
		return fmt.Errorf("failed to archive page: %w", err)
	}

	cli.PrintSuccess("Archived page: %s", page.Slug)
	return nil
}
