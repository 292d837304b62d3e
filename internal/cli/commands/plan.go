package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tsplit/internal/config"
	"tsplit/internal/ui"
)

// PlanCommand handles the plan command
type PlanCommand struct {
	config    *config.Config
	formatter *ui.Formatter
	viewer    *ui.PlanViewer
}

// NewPlanCommand creates a new PlanCommand
func NewPlanCommand(cfg *config.Config, formatter *ui.Formatter, viewer *ui.PlanViewer) *PlanCommand {
	return &PlanCommand{config: cfg, formatter: formatter, viewer: viewer}
}

// Execute runs the command
func (pc *PlanCommand) Execute(cmd *cobra.Command, args []string) error {
	if pc.config.Nodes <= 0 {
		return fmt.Errorf("node count must be positive, got %d", pc.config.Nodes)
	}

	pipe, _ := buildPipeline(pc.config)
	plan, err := pipe.Plan(cmd.Context())
	if err != nil {
		return err
	}

	if pc.config.Flags.Interactive {
		return pc.viewer.View(plan.Partition)
	}
	return pc.formatter.PrintPartition(plan.Partition, pc.config.Flags.ShowFiles)
}
