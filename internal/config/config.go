package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Input/output paths
	InputPath  string
	OutputPath string

	// Partition settings
	Nodes         int
	Mode          string
	Index         int
	DefaultWeight time.Duration

	// CI provider settings
	Token            string
	User             string
	Project          string
	Branch           string
	ArtifactPattern  string
	APIBaseURL       string
	BuildLimit       int
	FetchConcurrency int

	// Discovery settings
	TestExtensions []string
	PathsToIgnore  []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Token       string
	User        string
	Project     string
	Branch      string
	Pattern     string
	NameFilter  string
	Nodes       int
	Mode        string
	Index       int
	NoHistory   bool
	ReportFile  string
	Verbosity   int
	ConfigFile  string
	Interactive bool
	ShowFiles   bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		Nodes:            DefaultNodes,
		Mode:             ModeCopy,
		Index:            -1,
		DefaultWeight:    DefaultWeight,
		Branch:           DefaultBranch,
		APIBaseURL:       DefaultAPIBaseURL,
		BuildLimit:       DefaultBuildLimit,
		FetchConcurrency: DefaultFetchConcurrency,
	}
	cfg.TestExtensions = make([]string, len(DefaultTestExtensions))
	copy(cfg.TestExtensions, DefaultTestExtensions)
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// ApplyFlags overlays parsed command-line flags onto the config.
// Values not set on the command line fall back to CircleCI's environment
// variables where those exist (token, node count, node index).
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.Token != "" {
		c.Token = flags.Token
	}
	if flags.User != "" {
		c.User = flags.User
	}
	if flags.Project != "" {
		c.Project = flags.Project
	}
	if flags.Branch != "" {
		c.Branch = flags.Branch
	}
	if flags.Pattern != "" {
		c.ArtifactPattern = flags.Pattern
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}

	// A negative count propagates so validation can reject it explicitly.
	if flags.Nodes != 0 {
		c.Nodes = flags.Nodes
	} else if total := os.Getenv("CIRCLE_NODE_TOTAL"); total != "" {
		if n, err := strconv.Atoi(total); err == nil && n > 0 {
			c.Nodes = n
		}
	}

	if flags.Index >= 0 {
		c.Index = flags.Index
	} else if idx := os.Getenv("CIRCLE_NODE_INDEX"); idx != "" {
		if i, err := strconv.Atoi(idx); err == nil && i >= 0 {
			c.Index = i
		}
	}
}

// LoadEnv loads a .env file next to the input path if one exists and picks
// up the access token from the environment when no flag provided it.
func (c *Config) LoadEnv() {
	if c.InputPath != "" {
		envPath := filepath.Join(c.InputPath, ".env")
		// .env file might not exist, that's okay - use environment variables
		_ = godotenv.Load(envPath)
	}
	if c.Token == "" {
		c.Token = os.Getenv("CIRCLE_TOKEN")
	}
}

// Validate checks the configuration before any partitioning is attempted.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if c.Nodes <= 0 {
		return fmt.Errorf("node count must be positive, got %d", c.Nodes)
	}
	if c.Nodes > 1 && c.Token == "" && !c.Flags.NoHistory && c.Flags.ReportFile == "" {
		return fmt.Errorf("an access token is required to fetch historical timings when splitting across %d nodes (pass --no-history to split on defaults only)", c.Nodes)
	}
	switch c.Mode {
	case ModeCopy:
		if c.OutputPath == "" {
			return fmt.Errorf("copy mode requires an output path")
		}
	case ModeDelete:
		if c.Index < 0 {
			return fmt.Errorf("delete mode requires a node index (--index or CIRCLE_NODE_INDEX)")
		}
	default:
		return fmt.Errorf("invalid mode %q: must be %q or %q", c.Mode, ModeCopy, ModeDelete)
	}
	return nil
}

// GetInputPath returns the cleaned input path.
func (c *Config) GetInputPath() string {
	return filepath.Clean(c.InputPath)
}

// GetOutputPath returns the output path, resolved to an absolute path so
// distribution is independent of the working directory.
func (c *Config) GetOutputPath() string {
	if abs, err := filepath.Abs(c.OutputPath); err == nil {
		return abs
	}
	return c.OutputPath
}
