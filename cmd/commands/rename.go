package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
)

// NewRenameTemplateCommand creates the rename-template command
func NewRenameTemplateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename-template <old> <new>",
		Short: "Rename a template and update the pages using it",
		Long: `Rename a template. Every active page built on it is rewritten to
reference the new name; if any page cannot be updated the rename is
rolled back.

Examples:
  cmsdesk rename-template landing campaign`,
		Args:    cobra.ExactArgs(2),
		PreRunE: requireProject,
		RunE:    runRenameTemplate,
	}

	return cmd
}

func runRenameTemplate(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]

	active, _, err := files.FindPagesUsingTemplate(oldName)
	if err != nil {
		return err
	}

	if len(active) > 0 {
		prompt := fmt.Sprintf("Rename template '%s' to '%s' and update %d page(s)?", oldName, newName, len(active))
		confirmed, err := cli.Confirm(prompt, true)
		if err != nil {
			return err
		}
		if !confirmed {
			cli.PrintInfo("Rename cancelled")
			return nil
		}
	}

	if err := files.RenameTemplate(oldName, newName); err != nil {
		return fmt.Errorf("failed to rename template: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Renamed template %s to %s (%d page(s) updated)\n", oldName, newName, len(active))
	return nil
}
