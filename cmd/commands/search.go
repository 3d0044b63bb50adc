package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/pkg/search"
)

// SearchResultOutput represents the formatted search results
type SearchResultOutput struct {
	Query   string             `json:"query" yaml:"query"`
	Count   int                `json:"count" yaml:"count"`
	Results []SearchItemOutput `json:"results" yaml:"results"`
}

// SearchItemOutput represents a single search result item
type SearchItemOutput struct {
	Name     string  `json:"name" yaml:"name"`
	Kind     string  `json:"kind" yaml:"kind"`
	Title    string  `json:"title,omitempty" yaml:"title,omitempty"`
	State    string  `json:"state,omitempty" yaml:"state,omitempty"`
	Archived bool    `json:"archived" yaml:"archived"`
	Score    float64 `json:"score" yaml:"score"`
	Excerpt  string  `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
}

var searchArchived bool

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search pages, templates and assets",
		Long: `Search the project using a small query syntax.

Query Syntax:
  kind:page            - Only pages (also template, asset)
  state:pending        - Pages in a workflow state
  template:landing     - Pages built on a template
  name:promo           - Name or title contains text
  content:"free ship"  - Body contains text (bare words do the same)
  modified:<7d         - Changed within 7 days (h, d, w, m, y)

  Conditions are joined with AND unless OR is given. NOT negates the
  next condition.

Examples:
  # Pages waiting for review
  cmsdesk search "kind:page state:pending"

  # Landing pages that mention shipping
  cmsdesk search template:landing shipping

  # Archived pages
  cmsdesk search state:archived`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: requireProject,
		RunE:    runSearch,
	}

	cmd.Flags().BoolVarP(&searchArchived, "archived", "a", false, "Include archived pages")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	engine := search.NewEngine()
	if err := engine.BuildIndex(searchArchived); err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}

	results, err := engine.Search(query)
	if err != nil {
		return err
	}

	output := SearchResultOutput{Query: query, Count: len(results)}
	for _, r := range results {
		output.Results = append(output.Results, SearchItemOutput{
			Name:     r.Item.Name,
			Kind:     string(r.Item.Kind),
			Title:    r.Item.Title,
			State:    string(r.Item.State),
			Archived: r.Item.Archived,
			Score:    r.Score,
			Excerpt:  r.Excerpt,
		})
	}

	out := cmd.OutOrStdout()
	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		return cli.OutputResults(out, format, output)
	}

	if len(results) == 0 {
		fmt.Fprintf(out, "No results for %q\n", query)
		return nil
	}

	table := cli.NewTableFormatter(out)
	table.Header("Kind", "Name", "State", "Excerpt")
	for _, item := range output.Results {
		state := item.State
		if item.Archived {
			state += " (archive)"
		}
		table.Row(item.Kind, item.Name, cli.OrDash(state), cli.TruncateString(item.Excerpt, 60))
	}
	table.Flush()
	fmt.Fprintf(out, "\n%d result(s)\n", len(results))
	return nil
}
