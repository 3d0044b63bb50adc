package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// NewRestoreCommand creates the restore command
func NewRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <page>",
		Short: "Restore an archived page as a draft",
		Long: `Restore a page from the archive. The page comes back as a draft.

Examples:
  # Restore an archived page
  cmsdesk restore spring-sale`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runRestore,
	}

	return cmd
}

func runRestore(cmd *cobra.Command, args []string) error {
	page, err := applyAction(args[0], models.ActionRestore)
	if err != nil {
		return fmt.Errorf("failed to restore page: %w", err)
	}

	cli.PrintSuccess("Restored page: %s (now %s)", page.Slug, page.State)
	return nil
}
