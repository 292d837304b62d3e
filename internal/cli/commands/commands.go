package commands

import (
	"tsplit/internal/cli"
	"tsplit/internal/config"
	"tsplit/internal/discovery"
	"tsplit/internal/distribute"
	"tsplit/internal/logging"
	"tsplit/internal/pipeline"
	"tsplit/internal/provider"
	"tsplit/internal/timing"
	"tsplit/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Split   *SplitCommand
	Plan    *PlanCommand
	Timings *TimingsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	formatter := ui.NewFormatter()
	viewer := ui.NewPlanViewer()

	return &Commands{
		Split:   NewSplitCommand(cfg),
		Plan:    NewPlanCommand(cfg, formatter, viewer),
		Timings: NewTimingsCommand(cfg, formatter),
	}
}

// buildPipeline assembles the pipeline collaborators once flags are applied.
// The logger depends on the parsed verbosity, so this runs per execution
// rather than at wiring time.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, logging.Logger) {
	logger := logging.NewWithVerbosity(cfg.Flags.Verbosity)

	var history pipeline.HistorySource
	if !cfg.Flags.NoHistory && cfg.Token != "" {
		history = provider.NewCircleCI(cfg, logger)
	}

	pipe := pipeline.New(
		cfg,
		discovery.NewScanner(cfg.PathsToIgnore),
		discovery.NewFilter(),
		timing.NewConsoleParser(cfg.TestExtensions),
		history,
		distribute.NewDistributor(logger),
		logger,
	)
	return pipe, logger
}

// applyConfig overlays the config file (if any), flags, positional paths and
// environment onto the config. Shared by every command's PreRunE.
func applyConfig(cfg *config.Config, flags *cli.Flags, args []string) error {
	if flags.ConfigFile != "" {
		if err := cfg.LoadFile(flags.ConfigFile); err != nil {
			return err
		}
	}
	cfg.ApplyFlags(flags.ToConfigFlags())
	if len(args) > 0 {
		cfg.InputPath = args[0]
	}
	if len(args) > 1 {
		cfg.OutputPath = args[1]
	}
	cfg.LoadEnv()
	return nil
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Split command
	splitCmd := &cobra.Command{
		Use:   "split <input-path> [output-path]",
		Short: "Split test files into balanced buckets and distribute them",
		Long:  "Weigh test files using historical timings from prior CI runs, partition them into evenly loaded buckets and copy (or prune) them on disk",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  c.Split.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cfg, flags, args); err != nil {
				return err
			}
			return cfg.Validate()
		},
	}
	addSharedFlags(splitCmd, flags)
	splitCmd.Flags().StringVar(&flags.Mode, "mode", "", "Distribution mode: copy buckets to the output path, or delete files outside this node's bucket (copy|delete)")
	splitCmd.Flags().IntVar(&flags.Index, "index", -1, "This node's bucket index for delete mode (defaults to CIRCLE_NODE_INDEX)")
	rootCmd.AddCommand(splitCmd)

	// Plan command
	planCmd := &cobra.Command{
		Use:   "plan <input-path>",
		Short: "Show how test files would be split, without touching any files",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Plan.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return applyConfig(cfg, flags, args)
		},
	}
	addSharedFlags(planCmd, flags)
	planCmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Browse the plan in an interactive viewer")
	planCmd.Flags().BoolVar(&flags.ShowFiles, "files", false, "List every file per bucket")
	rootCmd.AddCommand(planCmd)

	// Timings command
	timingsCmd := &cobra.Command{
		Use:   "timings",
		Short: "Fetch and print historical test timings from prior CI runs",
		Args:  cobra.NoArgs,
		RunE:  c.Timings.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return applyConfig(cfg, flags, args)
		},
	}
	addSharedFlags(timingsCmd, flags)
	rootCmd.AddCommand(timingsCmd)
}

// addSharedFlags registers the flags common to every command.
func addSharedFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVar(&flags.Token, "token", "", "CI access token (defaults to CIRCLE_TOKEN)")
	cmd.Flags().StringVar(&flags.User, "user", "", "Repository owner on the CI provider")
	cmd.Flags().StringVar(&flags.Project, "project", "", "Repository name on the CI provider")
	cmd.Flags().StringVar(&flags.Branch, "branch", "", "Branch whose prior runs supply timings (default master)")
	cmd.Flags().StringVar(&flags.Pattern, "pattern", "", "Wildcard filter for artifact paths, e.g. '*console*'")
	cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g. '*login*')")
	cmd.Flags().IntVarP(&flags.Nodes, "nodes", "n", 0, "Number of buckets to split into (defaults to CIRCLE_NODE_TOTAL or 1)")
	cmd.Flags().BoolVar(&flags.NoHistory, "no-history", false, "Skip fetching historical timings and split on default weights")
	cmd.Flags().StringVar(&flags.ReportFile, "report", "", "Read timings from a structured JSON report instead of fetching console logs")
	cmd.Flags().CountVarP(&flags.Verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	cmd.Flags().StringVar(&flags.ConfigFile, "config", "", "Path to a YAML config file")
}
