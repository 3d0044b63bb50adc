package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cmsdesk/cmsdesk-cli/cmd/commands"
	"github.com/cmsdesk/cmsdesk-cli/internal/cli"
	"github.com/cmsdesk/cmsdesk-cli/internal/logging"
	"github.com/cmsdesk/cmsdesk-cli/pkg/files"
	"github.com/cmsdesk/cmsdesk-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

const watchDebounce = 250 * time.Millisecond

var (
	quiet        bool
	noColor      bool
	skipConfirm  bool
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "cmsdesk",
	Short: "Terminal desk for a file-backed CMS",
	Long: `cmsdesk manages pages, templates and assets stored as YAML files in a
.cmsdesk directory. Run it without arguments for the interactive editor, or
use the subcommands for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cli.SetGlobalFlags(quiet, noColor, skipConfirm)
		if err := cli.ValidateOutputFormat(outputFormat); err != nil {
			return err
		}
		return setupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.RequireProject(); err != nil {
			return err
		}
		return runTUI()
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new cmsdesk project",
	Long:  `Creates the .cmsdesk folder structure in the current directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}

		cli.PrintInfo("Initializing cmsdesk project in %s...", cwd)

		if err := files.InitProjectStructure(); err != nil {
			return fmt.Errorf("failed to initialize project structure: %w", err)
		}

		cli.PrintSuccess("Created .cmsdesk folder structure")
		cli.PrintInfo("Run 'cmsdesk new <title>' to add a page, or 'cmsdesk' to start the editor.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cmsdesk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cmsdesk version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug entries to the log file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json, yaml)")

	rootCmd.AddCommand(
		initCmd,
		versionCmd,
		commands.NewListCommand(),
		commands.NewShowCommand(),
		commands.NewNewCommand(),
		commands.NewEditCommand(),
		commands.NewDeleteCommand(),
		commands.NewArchiveCommand(),
		commands.NewRestoreCommand(),
		commands.NewWorkflowCommand(),
		commands.NewScheduleCommand(),
		commands.NewPublishDueCommand(),
		commands.NewSearchCommand(),
		commands.NewUsageCommand(),
		commands.NewExportCommand(),
		commands.NewClipboardCommand(),
		commands.NewRenameTemplateCommand(),
	)
}

// setupLogging installs the file logger once a project exists; before
// 'cmsdesk init' the no-op logger stays in place.
func setupLogging() error {
	if _, err := os.Stat(files.ProjectDir); err != nil {
		return nil
	}
	settings := files.ReadSettingsOrDefault()
	logger, err := logging.Initialize(files.ProjectDir, settings.Logging.File, settings.Logging.Level, verbose)
	if err != nil {
		return err
	}
	logger.Named(string(logging.CategoryBoot)).Debug("starting", zap.String("version", version))
	return nil
}

func runTUI() error {
	settings := files.ReadSettingsOrDefault()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var watcher *files.Watcher
	if settings.UI.WatchChanges {
		w, err := files.NewWatcher(watchDebounce)
		if err != nil {
			logging.Get(logging.CategoryWatcher).Warn("change watching disabled", zap.Error(err))
		} else if err := w.Start(ctx); err != nil {
			w.Stop()
			logging.Get(logging.CategoryWatcher).Warn("change watching disabled", zap.Error(err))
		} else {
			watcher = w
			defer w.Stop()
		}
	}

	app := tui.NewApp(settings, watcher)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
