package commands

import (
	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
)

// outputFormat reads the persistent --output flag, defaulting to text when
// the command runs without the root command
func outputFormat(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("output")
	if err != nil || format == "" {
		return string(cli.FormatText)
	}
	return format
}

func requireProject(cmd *cobra.Command, args []string) error {
	return cli.RequireProject()
}
