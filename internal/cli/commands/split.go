package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tsplit/internal/config"
)

// SplitCommand handles the split command
type SplitCommand struct {
	config *config.Config
}

// NewSplitCommand creates a new SplitCommand
func NewSplitCommand(cfg *config.Config) *SplitCommand {
	return &SplitCommand{config: cfg}
}

// Execute runs the command
func (sc *SplitCommand) Execute(cmd *cobra.Command, args []string) error {
	pipe, _ := buildPipeline(sc.config)

	if err := pipe.Run(cmd.Context()); err != nil {
		return err
	}

	switch sc.config.Mode {
	case config.ModeDelete:
		color.Green("✓ Pruned input to bucket %d", sc.config.Index)
	default:
		color.Green("✓ Copied buckets into %s", sc.config.GetOutputPath())
	}
	return nil
}
