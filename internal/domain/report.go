package domain

// TimingReport is a structured timing report produced by a test runner,
// an alternative to scraping durations out of raw console output.
type TimingReport struct {
	Entries []TimingEntry `json:"entries"`
}

// TimingEntry is one observed test file duration in a report.
type TimingEntry struct {
	File       string `json:"file"`
	DurationMS int64  `json:"duration_ms"`
}
