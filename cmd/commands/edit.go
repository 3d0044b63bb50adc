package commands

import (
	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <resource>",
		Short: "Edit a resource file in your editor",
		Long: `Open the YAML file of a page, template or asset in your editor.

The editor comes from editor.command in settings.yaml, then $EDITOR,
then vi.

Examples:
  # Edit a page
  cmsdesk edit about

  # Edit a template when a page shares its name
  cmsdesk edit templates/landing

  # Edit with a specific editor
  EDITOR=vim cmsdesk edit about`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runEdit,
	}

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext()

	res, err := cli.NewResourceResolver().Resolve(args[0])
	if err != nil {
		return err
	}

	launcher := cli.NewEditorLauncher(ctx.LoadSettingsWithDefault())
	cli.PrintInfo("Opening %s in editor...", res.Path)
	if err := launcher.OpenFile(res.Path); err != nil {
		return err
	}

	cli.PrintSuccess("Edited %s %s", res.Kind.Label(), res.Name)
	return nil
}
