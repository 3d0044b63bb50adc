package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/internal/logging"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// now is replaced in tests
var now = time.Now

// WorkflowResult is the structured output of a workflow change
type WorkflowResult struct {
	Slug      string `json:"slug" yaml:"slug"`
	Action    string `json:"action,omitempty" yaml:"action,omitempty"`
	State     string `json:"state" yaml:"state"`
	PublishAt string `json:"publish_at,omitempty" yaml:"publish_at,omitempty"`
	RemoveAt  string `json:"remove_at,omitempty" yaml:"remove_at,omitempty"`
	Comment   string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

func applyAction(slug string, action models.WorkflowAction) (*models.Page, error) {
	settings := cli.NewCommandContext().LoadSettingsWithDefault()
	page, err := files.ApplyWorkflowAction(slug, action, settings.Workflow)
	if err != nil {
		logging.Get(logging.CategoryWorkflow).Warn("workflow action failed",
			zap.String("slug", slug),
			zap.String("action", string(action)),
			zap.Error(err))
		return nil, err
	}
	logging.Get(logging.CategoryWorkflow).Info("workflow action applied",
		zap.String("slug", slug),
		zap.String("action", string(action)),
		zap.String("state", string(page.State)))
	return page, nil
}

// NewWorkflowCommand creates the workflow command
func NewWorkflowCommand() *cobra.Command {
	actions := make([]string, 0, len(models.AllWorkflowActions))
	for _, a := range models.AllWorkflowActions {
		actions = append(actions, string(a))
	}

	cmd := &cobra.Command{
		Use:   "workflow <page> <action>",
		Short: "Move a page through the publishing workflow",
		Long: fmt.Sprintf(`Apply a workflow action to a page.

Actions: %s

  draft    --submit-->  pending  --approve-->  live
  pending  --reject-->  draft
  live     --unpublish-->  draft
  any      --archive-->  archived  --restore-->  draft

With workflow.require_approval set, drafts must be submitted and approved
instead of published directly.

Examples:
  # Submit a draft for review
  cmsdesk workflow about submit

  # Approve it
  cmsdesk workflow about approve`, strings.Join(actions, ", ")),
		Args:      cobra.ExactArgs(2),
		ValidArgs: actions,
		PreRunE:   requireProject,
		RunE:      runWorkflow,
	}

	return cmd
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	action, err := models.ParseWorkflowAction(args[1])
	if err != nil {
		return err
	}

	page, err := applyAction(args[0], action)
	if err != nil {
		return err
	}

	result := WorkflowResult{Slug: page.Slug, Action: string(action), State: string(page.State)}
	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), format, result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", page.Slug, action, page.State)
	return nil
}

var (
	scheduleRemove  string
	scheduleComment string
)

// NewScheduleCommand creates the schedule command
func NewScheduleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <page> [time|clear]",
		Short: "Schedule when a page goes live and comes down",
		Long: `Record when a page should be published and, optionally, when it should
be taken down again. Times use workflow.schedule_layout from settings.yaml
("2006-01-02 15:04" by default) in local time. Run 'cmsdesk publish-due'
to apply schedules whose time has come.

Draft and pending pages accept both dates; live pages accept only a
removal date. The publish date must come before the removal date. A
workflow comment of up to 500 characters can be recorded with --comment.

Examples:
  # Publish on the first of May at nine
  cmsdesk schedule spring-sale "2026-05-01 09:00"

  # Run the sale for a week
  cmsdesk schedule spring-sale "2026-05-01 09:00" --remove "2026-05-08 09:00"

  # Take a live page down later
  cmsdesk schedule old-promo --remove "2026-06-01 00:00" --comment "campaign ends"

  # Remove both dates
  cmsdesk schedule spring-sale clear --remove clear`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: requireProject,
		RunE:    runSchedule,
	}

	cmd.Flags().StringVar(&scheduleRemove, "remove", "", "Removal time, or 'clear'")
	cmd.Flags().StringVar(&scheduleComment, "comment", "", "Workflow comment stored with the schedule")

	return cmd
}

// parseScheduleTime reads a schedule argument; "clear" yields the zero time
func parseScheduleTime(input, layout string) (time.Time, error) {
	if input == "clear" {
		return time.Time{}, nil
	}
	parsed, err := time.ParseInLocation(layout, input, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected layout %q", input, layout)
	}
	return parsed, nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	slug := args[0]
	publishInput := strings.TrimSpace(strings.Join(args[1:], " "))
	removeChanged := cmd.Flags().Changed("remove")
	commentChanged := cmd.Flags().Changed("comment")
	if publishInput == "" && !removeChanged && !commentChanged {
		return fmt.Errorf("give a publish time, --remove or --comment")
	}

	layout := cli.NewCommandContext().LoadSettingsWithDefault().Workflow.ScheduleLayout
	page, err := files.ReadPage(slug)
	if err != nil {
		return err
	}
	sched := page.Schedule()

	if publishInput != "" {
		if sched.PublishAt, err = parseScheduleTime(publishInput, layout); err != nil {
			return err
		}
	}
	if removeChanged {
		if sched.RemoveAt, err = parseScheduleTime(strings.TrimSpace(scheduleRemove), layout); err != nil {
			return err
		}
	}
	if commentChanged {
		sched.Comment = scheduleComment
	}

	page, err = files.SetSchedule(slug, sched)
	if err != nil {
		return err
	}

	result := WorkflowResult{
		Slug:      page.Slug,
		State:     string(page.State),
		PublishAt: formatOptional(page.PublishAt, layout),
		RemoveAt:  formatOptional(page.RemoveAt, layout),
		Comment:   page.Comment,
	}

	out := cmd.OutOrStdout()
	switch format := outputFormat(cmd); format {
	case "json", "yaml":
		return cli.OutputResults(out, format, result)
	}
	if page.Schedule().Empty() {
		fmt.Fprintf(out, "Cleared schedule for %s\n", page.Slug)
		return nil
	}
	if result.PublishAt != "" {
		fmt.Fprintf(out, "%s publishes %s\n", page.Slug, result.PublishAt)
	}
	if result.RemoveAt != "" {
		fmt.Fprintf(out, "%s comes down %s\n", page.Slug, result.RemoveAt)
	}
	return nil
}

func formatOptional(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

var publishDueDryRun bool

// NewPublishDueCommand creates the publish-due command
func NewPublishDueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish-due",
		Short: "Apply every schedule whose time has passed",
		Long: `Publish draft and pending pages whose publish date is now or earlier,
and unpublish live pages whose removal date has passed. Suitable for a
cron job.

Examples:
  # See what would change
  cmsdesk publish-due --dry-run

  # Apply schedules quietly from cron
  cmsdesk publish-due --quiet`,
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runPublishDue,
	}

	cmd.Flags().BoolVar(&publishDueDryRun, "dry-run", false, "List due pages without changing them")

	return cmd
}

func runPublishDue(cmd *cobra.Command, args []string) error {
	settings := cli.NewCommandContext().LoadSettingsWithDefault()
	layout := settings.Workflow.ScheduleLayout
	current := now()
	out := cmd.OutOrStdout()

	if publishDueDryRun {
		due, err := files.DueForPublish(current)
		if err != nil {
			return err
		}
		expired, err := files.DueForRemoval(current)
		if err != nil {
			return err
		}
		if len(due)+len(expired) == 0 {
			fmt.Fprintln(out, "No pages due")
			return nil
		}
		for _, page := range due {
			fmt.Fprintf(out, "%s (%s, due %s)\n", page.Slug, page.State, page.PublishAt.Format(layout))
		}
		for _, page := range expired {
			fmt.Fprintf(out, "%s (live, removal due %s)\n", page.Slug, page.RemoveAt.Format(layout))
		}
		return nil
	}

	log := logging.Get(logging.CategoryWorkflow)
	published, pubErr := files.PublishDue(current, settings.Workflow)
	for _, slug := range published {
		log.Info("scheduled page published", zap.String("slug", slug))
		fmt.Fprintf(out, "Published %s\n", slug)
	}
	removed, remErr := files.UnpublishDue(current, settings.Workflow)
	for _, slug := range removed {
		log.Info("scheduled page unpublished", zap.String("slug", slug))
		fmt.Fprintf(out, "Unpublished %s\n", slug)
	}
	if err := errors.Join(pubErr, remErr); err != nil {
		return fmt.Errorf("some schedules could not be applied: %w", err)
	}
	if len(published)+len(removed) == 0 {
		fmt.Fprintln(out, "No pages due")
	}
	return nil
}
