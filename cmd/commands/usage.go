package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// UsageResult lists the pages built on a template
type UsageResult struct {
	Template string   `json:"template" yaml:"template"`
	Active   []string `json:"active" yaml:"active"`
	Archived []string `json:"archived" yaml:"archived"`
}

// NewUsageCommand creates the usage command
func NewUsageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage <template>",
		Short: "Show which pages use a template",
		Long: `List the active and archived pages built on a template.

Examples:
  # Find pages on the landing template
  cmsdesk usage landing

  # Output as JSON
  cmsdesk usage landing -o json`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runUsage,
	}

	return cmd
}

func runUsage(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !files.Exists(models.KindTemplate, name) {
		return fmt.Errorf("template not found: %s", name)
	}

	active, archived, err := files.FindPagesUsingTemplate(name)
	if err != nil {
		return fmt.Errorf("failed to scan pages: %w", err)
	}

	result := UsageResult{Template: name, Active: active, Archived: archived}
	out := cmd.OutOrStdout()
	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		return cli.OutputResults(out, format, result)
	}

	fmt.Fprintf(out, "Template: %s\n", name)
	if len(active)+len(archived) == 0 {
		fmt.Fprintln(out, "Not used by any page")
		return nil
	}
	fmt.Fprintf(out, "Used in %d page(s):\n", len(active))
	for _, slug := range active {
		fmt.Fprintf(out, "  - %s\n", slug)
	}
	if len(archived) > 0 {
		fmt.Fprintf(out, "Archived pages: %d\n", len(archived))
		for _, slug := range archived {
			fmt.Fprintf(out, "  - %s\n", slug)
		}
	}
	return nil
}
