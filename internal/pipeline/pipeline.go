// Package pipeline wires the split pipeline: scan the test directory, fetch
// and parse historical timings, resolve weights, partition, distribute.
// Data flows strictly forward; the pure stages receive plain maps and never
// see an I/O error.
package pipeline

import (
	"context"
	"os"
	"time"

	"tsplit/internal/config"
	"tsplit/internal/discovery"
	"tsplit/internal/distribute"
	"tsplit/internal/domain"
	"tsplit/internal/logging"
	"tsplit/internal/partition"
	"tsplit/internal/timing"
	"tsplit/internal/ui"
)

// HistorySource fetches the historical console text. Implementations are
// best effort and return an empty string on any failure.
type HistorySource interface {
	FetchHistory(ctx context.Context) string
}

// Plan is a computed partition together with the data needed to apply it.
type Plan struct {
	Partition domain.Partition
	Paths     map[string]string        // item name -> source path
	Observed  map[string]time.Duration // historical durations that matched the inventory
}

// Pipeline orchestrates one split run.
type Pipeline struct {
	cfg         *config.Config
	scanner     *discovery.Scanner
	filter      *discovery.Filter
	parser      *timing.ConsoleParser
	history     HistorySource
	distributor *distribute.Distributor
	logger      logging.Logger
}

// New creates a Pipeline. history may be nil to split on default weights only.
func New(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	parser *timing.ConsoleParser,
	history HistorySource,
	distributor *distribute.Distributor,
	logger logging.Logger,
) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:         cfg,
		scanner:     scanner,
		filter:      filter,
		parser:      parser,
		history:     history,
		distributor: distributor,
		logger:      logger,
	}
}

// Plan builds the weighted inventory and partitions it without touching any
// files.
func (p *Pipeline) Plan(ctx context.Context) (*Plan, error) {
	files, err := p.scanner.Scan(p.cfg.GetInputPath())
	if err != nil {
		return nil, err
	}
	files = p.filter.FilterByName(files, p.cfg.Flags.NameFilter)

	inventory := discovery.Inventory(files, p.cfg.DefaultWeight)
	paths := discovery.Paths(files)
	p.logger.Info("scanned test directory", "root", p.cfg.GetInputPath(), "files", len(inventory))

	overrides := p.fetchTimings(ctx)
	resolved := timing.Resolve(inventory, overrides)

	observed := make(map[string]time.Duration)
	for name, weight := range overrides {
		if _, ok := inventory[name]; ok {
			observed[name] = weight
		}
	}
	p.logger.Info("resolved weights", "historical", len(observed), "defaulted", len(inventory)-len(observed))

	part, err := partition.Split(resolved, p.cfg.Nodes)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("partitioned inventory", "buckets", len(part), "makespan", part.Makespan())

	return &Plan{Partition: part, Paths: paths, Observed: observed}, nil
}

// Run plans and then distributes according to the configured mode.
func (p *Pipeline) Run(ctx context.Context) error {
	plan, err := p.Plan(ctx)
	if err != nil {
		return err
	}

	switch p.cfg.Mode {
	case config.ModeDelete:
		// Each worker keeps only its own bucket. An index beyond the number
		// of produced buckets means this worker has no tests to run.
		var bucket domain.Bucket
		if p.cfg.Index >= 0 && p.cfg.Index < len(plan.Partition) {
			bucket = plan.Partition[p.cfg.Index]
		} else {
			p.logger.Warn("node index beyond bucket count, keeping no test files",
				"index", p.cfg.Index, "buckets", len(plan.Partition))
		}
		p.distributor.SetProgress(ui.NewProgressBar(len(plan.Paths)-len(bucket.Items), "Deleting"))
		return p.distributor.Delete(bucket, p.cfg.GetInputPath())
	default:
		total := 0
		for _, b := range plan.Partition {
			total += len(b.Items)
		}
		p.distributor.SetProgress(ui.NewProgressBar(total, "Copying"))
		return p.distributor.Copy(plan.Partition, plan.Paths, p.cfg.GetOutputPath())
	}
}

// fetchTimings obtains historical durations, preferring a local structured
// report over the remote console text. Any failure along the way degrades
// to an empty mapping.
func (p *Pipeline) fetchTimings(ctx context.Context) map[string]time.Duration {
	if p.cfg.Flags.ReportFile != "" {
		data, err := os.ReadFile(p.cfg.Flags.ReportFile)
		if err != nil {
			p.logger.Warn("could not read timing report", "path", p.cfg.Flags.ReportFile, "error", err)
			return nil
		}
		timings, err := timing.NewReportSource(data).Timings()
		if err != nil {
			p.logger.Warn("could not parse timing report", "path", p.cfg.Flags.ReportFile, "error", err)
			return nil
		}
		return timings
	}

	if p.history == nil || p.cfg.Flags.NoHistory {
		return nil
	}

	text := p.history.FetchHistory(ctx)
	if text == "" {
		return nil
	}

	source := timing.NewConsoleSource(p.parser, text)
	timings, err := source.Timings()
	if err != nil {
		p.logger.Warn("could not parse historical timings", "error", err)
		return nil
	}
	p.logger.Debug("parsed historical timings", "records", len(timings))
	return timings
}
