package ui

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"tsplit/internal/domain"
)

// Formatter prints partitions and timing data to the terminal
type Formatter struct{}

// NewFormatter creates a new Formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintPartition prints a per-bucket summary table followed by totals.
func (f *Formatter) PrintPartition(p domain.Partition, verbose bool) error {
	if len(p) == 0 {
		color.Yellow("No test files to split")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, color.CyanString("BUCKET\tFILES\tESTIMATED"))
	for i, bucket := range p {
		fmt.Fprintf(w, "%d\t%d\t%s\n", i, len(bucket.Items), formatDuration(bucket.Total()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if verbose {
		for i, bucket := range p {
			fmt.Println()
			color.Cyan("bucket %d:", i)
			for _, item := range bucket.Items {
				fmt.Printf("  %s  (%s)\n", item.Name, formatDuration(item.Weight))
			}
		}
	}

	fmt.Println()
	color.Green("✓ %d file(s) across %d bucket(s), makespan %s",
		countItems(p), len(p), formatDuration(p.Makespan()))
	return nil
}

// PrintTimings prints observed historical durations in the order of names.
func (f *Formatter) PrintTimings(names []string, timings map[string]time.Duration) error {
	if len(timings) == 0 {
		color.Yellow("No historical timings found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, color.CyanString("FILE\tOBSERVED"))
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, formatDuration(timings[name]))
	}
	return w.Flush()
}

func countItems(p domain.Partition) int {
	total := 0
	for _, bucket := range p {
		total += len(bucket.Items)
	}
	return total
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
