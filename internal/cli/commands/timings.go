package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"tsplit/internal/config"
	"tsplit/internal/logging"
	"tsplit/internal/provider"
	"tsplit/internal/timing"
	"tsplit/internal/ui"
)

// TimingsCommand handles the timings command
type TimingsCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewTimingsCommand creates a new TimingsCommand
func NewTimingsCommand(cfg *config.Config, formatter *ui.Formatter) *TimingsCommand {
	return &TimingsCommand{config: cfg, formatter: formatter}
}

// Execute runs the command
func (tc *TimingsCommand) Execute(cmd *cobra.Command, args []string) error {
	if tc.config.Token == "" {
		return fmt.Errorf("an access token is required to fetch historical timings")
	}
	if tc.config.User == "" || tc.config.Project == "" {
		return fmt.Errorf("--user and --project are required to fetch historical timings")
	}

	logger := logging.NewWithVerbosity(tc.config.Flags.Verbosity)
	history := provider.NewCircleCI(tc.config, logger)
	parser := timing.NewConsoleParser(tc.config.TestExtensions)

	text := history.FetchHistory(cmd.Context())
	timings := parser.Parse(text)

	names := make([]string, 0, len(timings))
	for name := range timings {
		names = append(names, name)
	}
	sort.Strings(names)

	return tc.formatter.PrintTimings(names, timings)
}
