package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

var (
	deleteForce bool
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <resource>",
		Short: "Permanently delete a resource",
		Long: `Permanently delete a page, template or asset.

Pages should normally be archived instead. Deleting a live page requires
--force. Templates still used by pages cannot be deleted.

Examples:
  # Delete an archived page
  cmsdesk delete old-news

  # Delete an asset without confirmation
  cmsdesk delete assets/banner -y

  # Delete a live page anyway
  cmsdesk delete promo --force`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"rm"},
		PreRunE: requireProject,
		RunE:    runDelete,
	}

	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete without confirmation, even live pages")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ref := args[0]

	res, err := cli.NewResourceResolver().Resolve(ref)
	if err != nil {
		return err
	}

	if res.Kind == models.KindPage && !res.Archived && !deleteForce {
		page, err := files.ReadPage(res.Name)
		if err != nil {
			return err
		}
		if page.State == models.StateLive {
			return fmt.Errorf("page %s is live. Unpublish or archive it first, or use --force", res.Name)
		}
		cli.PrintWarning("Page '%s' is not archived. Consider 'cmsdesk archive %s' instead.", res.Name, res.Name)
	}

	if !deleteForce {
		prompt := fmt.Sprintf("Permanently delete %s '%s'? This cannot be undone.", res.Kind.Label(), res.Name)
		confirmed, err := cli.Confirm(prompt, false)
		if err != nil {
			return err
		}
		if !confirmed {
			cli.PrintInfo("Deletion cancelled")
			return nil
		}
	}

	switch {
	case res.Archived:
		err = files.DeleteArchivedPage(res.Name)
	case res.Kind == models.KindTemplate:
		err = files.DeleteTemplate(res.Name)
	default:
		err = files.Delete(res.Kind, res.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", res.Kind.Label(), err)
	}

	cli.PrintSuccess("Deleted %s: %s", res.Kind.Label(), res.Name)
	if res.Archived {
		cli.PrintInfo("Deleted from archive")
	}
	return nil
}
