package discovery

import (
	"path/filepath"
	"strings"

	"tsplit/internal/domain"
)

// Filter filters test files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test files by name pattern using wildcard matching.
// Supports patterns like "*LoginTest.js" or "*payment*".
func (f *Filter) FilterByName(files []domain.TestFile, pattern string) []domain.TestFile {
	if pattern == "" {
		return files
	}

	var filtered []domain.TestFile
	for _, file := range files {
		if MatchName(file.Name, pattern) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

// MatchName reports whether a name matches a wildcard pattern. Patterns
// without wildcards match as substrings.
func MatchName(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// If pattern contains wildcards but filepath.Match didn't match,
	// try a more flexible substring match for patterns like "*payment*"
	if strings.Contains(pattern, "*") {
		parts := strings.Split(pattern, "*")
		hasNonEmptyPart := false
		for _, part := range parts {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// No wildcards: simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
