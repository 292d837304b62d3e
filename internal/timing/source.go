package timing

import (
	"encoding/json"
	"fmt"
	"time"

	"tsplit/internal/domain"
)

// Source supplies observed durations from a prior test run. Implementations
// exist for raw console text and for structured runner reports, so future
// test runners can feed structured data without touching the resolver or
// the partitioner.
type Source interface {
	Timings() (map[string]time.Duration, error)
}

// ConsoleSource scrapes durations out of unstructured console output.
type ConsoleSource struct {
	parser *ConsoleParser
	text   string
}

var _ Source = (*ConsoleSource)(nil)

// NewConsoleSource creates a Source over a raw console text blob.
func NewConsoleSource(parser *ConsoleParser, text string) *ConsoleSource {
	return &ConsoleSource{parser: parser, text: text}
}

// Timings parses the console text. It never fails: unparseable text simply
// yields no records.
func (s *ConsoleSource) Timings() (map[string]time.Duration, error) {
	return s.parser.Parse(s.text), nil
}

// ReportSource reads durations from a structured JSON timing report.
type ReportSource struct {
	data []byte
}

var _ Source = (*ReportSource)(nil)

// NewReportSource creates a Source over JSON-encoded report bytes.
func NewReportSource(data []byte) *ReportSource {
	return &ReportSource{data: data}
}

// Timings decodes the report. Entries with negative durations are dropped;
// a duplicate file keeps the last entry.
func (s *ReportSource) Timings() (map[string]time.Duration, error) {
	var report domain.TimingReport
	if err := json.Unmarshal(s.data, &report); err != nil {
		return nil, fmt.Errorf("parse timing report: %w", err)
	}

	timings := make(map[string]time.Duration, len(report.Entries))
	for _, entry := range report.Entries {
		if entry.DurationMS < 0 || entry.File == "" {
			continue
		}
		timings[baseName(entry.File)] = time.Duration(entry.DurationMS) * time.Millisecond
	}
	return timings, nil
}
