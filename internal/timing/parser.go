package timing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ConsoleParser extracts observed test durations from a prior run's raw
// console output. A record is a parenthesized path ending in a recognized
// test extension, followed anywhere later in the text by a parenthesized
// integer duration like "(9043ms)".
type ConsoleParser struct {
	marker *regexp.Regexp
}

// NewConsoleParser creates a parser recognizing the given test file extensions.
func NewConsoleParser(extensions []string) *ConsoleParser {
	alts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		alts = append(alts, regexp.QuoteMeta(ext))
	}
	// Matches either a path marker (group 1) or a duration marker (group 2).
	pattern := `\(([^()\s]+(?:` + strings.Join(alts, "|") + `))\)|\((\d+)ms\)`
	return &ConsoleParser{marker: regexp.MustCompile(pattern)}
}

// Parse scans text for path/duration record pairs and returns a mapping from
// base file name to observed duration. Text with no matching records yields
// an empty map, never an error. A duplicate identifier keeps the last
// occurrence. A duration token that does not parse as an integer (in
// practice: overflow) drops that record and scanning continues.
func (p *ConsoleParser) Parse(text string) map[string]time.Duration {
	timings := make(map[string]time.Duration)
	if text == "" {
		return timings
	}

	pending := ""
	for _, match := range p.marker.FindAllStringSubmatch(text, -1) {
		if match[1] != "" {
			pending = baseName(match[1])
			continue
		}
		if pending == "" {
			continue
		}
		ms, err := strconv.ParseInt(match[2], 10, 64)
		if err != nil {
			// Malformed duration: skip this record rather than abort.
			pending = ""
			continue
		}
		timings[pending] = time.Duration(ms) * time.Millisecond
		pending = ""
	}
	return timings
}

// baseName returns the final segment of a slash-separated path.
func baseName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
