package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/pkg/composer"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
	"github.com/cmsdesk/cmsdesk-cli/pkg/utils"
)

var (
	showMetadata bool
	showRaw      bool
	showComposed bool
	showWidth    int
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <resource>",
		Short: "Display a page, template or asset",
		Long: `Display the content of a page, template or asset.

Page bodies are rendered as Markdown in the terminal. The resource can be
named directly or prefixed with its kind when names collide.

Examples:
  # Show a page
  cmsdesk show about

  # Show a page through its template
  cmsdesk show about --composed

  # Show a template when a page shares its name
  cmsdesk show templates/landing

  # Show with metadata
  cmsdesk show about --metadata

  # Output as JSON
  cmsdesk show about -o json`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runShow,
	}

	cmd.Flags().BoolVarP(&showMetadata, "metadata", "m", false, "Show resource metadata")
	cmd.Flags().BoolVar(&showRaw, "raw", false, "Print Markdown without rendering")
	cmd.Flags().BoolVar(&showComposed, "composed", false, "Render a page through its template")
	cmd.Flags().IntVar(&showWidth, "width", 80, "Wrap width for rendered Markdown")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	res, err := cli.NewResourceResolver().Resolve(args[0])
	if err != nil {
		return err
	}

	switch res.Kind {
	case models.KindPage:
		return showPage(cmd, res)
	case models.KindTemplate:
		return showTemplate(cmd, res.Name)
	case models.KindAsset:
		return showAsset(cmd, res.Name)
	}
	return fmt.Errorf("cannot show %s", res.Kind.Label())
}

func showPage(cmd *cobra.Command, res *cli.ResolvedResource) error {
	var page *models.Page
	var err error
	if res.Archived {
		page, err = files.ReadArchivedPage(res.Name)
	} else {
		page, err = files.ReadPage(res.Name)
	}
	if err != nil {
		return err
	}

	body := page.Body
	if showComposed {
		body, _, err = composer.ComposeSlug(res.Name)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		data := map[string]interface{}{
			"kind": string(models.KindPage),
			"page": page,
		}
		if showComposed {
			data["composed"] = body
		}
		return cli.OutputResults(out, format, data)
	}

	if showMetadata {
		fmt.Fprintf(out, "Title:     %s\n", page.Title)
		fmt.Fprintf(out, "Slug:      %s\n", page.Slug)
		fmt.Fprintf(out, "ID:        %s\n", cli.OrDash(page.ID))
		fmt.Fprintf(out, "State:     %s\n", page.State)
		fmt.Fprintf(out, "Template:  %s\n", cli.OrDash(page.Template))
		layout := cli.NewCommandContext().LoadSettingsWithDefault().Workflow.ScheduleLayout
		fmt.Fprintf(out, "Publish:   %s\n", cli.FormatTime(page.PublishAt, layout))
		fmt.Fprintf(out, "Remove:    %s\n", cli.FormatTime(page.RemoveAt, layout))
		if page.Comment != "" {
			fmt.Fprintf(out, "Comment:   %s\n", page.Comment)
		}
		fmt.Fprintf(out, "Length:    %s\n", utils.FormatStats(page.Body))
		fmt.Fprintln(out, strings.Repeat("-", 40))
	}

	rendered, err := renderMarkdown(body)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}

func showTemplate(cmd *cobra.Command, name string) error {
	tmpl, err := files.ReadTemplate(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		return cli.OutputResults(out, format, map[string]interface{}{
			"kind":     string(models.KindTemplate),
			"template": tmpl,
		})
	}

	if showMetadata {
		fmt.Fprintf(out, "Name:      %s\n", tmpl.Name)
		fmt.Fprintf(out, "ID:        %s\n", cli.OrDash(tmpl.ID))
		active, archived, err := files.FindPagesUsingTemplate(name)
		if err == nil {
			fmt.Fprintf(out, "Used by:   %d page(s), %d archived\n", len(active), len(archived))
		}
	}
	fmt.Fprintf(out, "Regions:   %s\n", cli.OrDash(strings.Join(tmpl.Regions, ", ")))
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintln(out, strings.TrimRight(tmpl.Markup, "\n"))
	return nil
}

func showAsset(cmd *cobra.Command, name string) error {
	asset, err := files.ReadAsset(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		return cli.OutputResults(out, format, map[string]interface{}{
			"kind":  string(models.KindAsset),
			"asset": asset,
		})
	}

	fmt.Fprintf(out, "Name:        %s\n", asset.Name)
	if showMetadata {
		fmt.Fprintf(out, "ID:          %s\n", cli.OrDash(asset.ID))
	}
	fmt.Fprintf(out, "Source:      %s\n", cli.OrDash(asset.Source))
	fmt.Fprintf(out, "MIME type:   %s\n", cli.OrDash(asset.MimeType))
	fmt.Fprintf(out, "Description: %s\n", cli.OrDash(asset.Description))
	return nil
}

// renderMarkdown styles Markdown for the terminal, or returns it untouched
// with --raw or --no-color
func renderMarkdown(body string) (string, error) {
	if showRaw || cli.NoColor() {
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		return body, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(showWidth),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(body)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
