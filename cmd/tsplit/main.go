package main

import (
	"fmt"
	"os"

	"tsplit/internal/cli"
	"tsplit/internal/cli/commands"
	"tsplit/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "tsplit",
		Short:   "Split test files into balanced groups for parallel CI workers",
		Long:    `tsplit estimates per-test execution cost from prior CI runs and splits a test directory into evenly loaded groups so parallel workers finish at roughly the same time.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
