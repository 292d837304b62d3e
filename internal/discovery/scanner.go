package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tsplit/internal/domain"
)

// Scanner scans for test files in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all regular files reachable from the given root directory.
// Directories contribute no entries themselves.
func (s *Scanner) Scan(root string) ([]domain.TestFile, error) {
	var files []domain.TestFile

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		files = append(files, domain.TestFile{Path: path, Name: d.Name()})
		return nil
	})

	return files, err
}

// Inventory builds the weight map for the discovered files, assigning each
// the default weight. Identity is the base name only: files sharing a base
// name across subdirectories collide and the one enumerated last wins.
func Inventory(files []domain.TestFile, defaultWeight time.Duration) map[string]time.Duration {
	inventory := make(map[string]time.Duration, len(files))
	for _, f := range files {
		inventory[f.Name] = defaultWeight
	}
	return inventory
}

// Paths maps each base name to its full path, with the same last-wins
// collision behavior as Inventory.
func Paths(files []domain.TestFile) map[string]string {
	paths := make(map[string]string, len(files))
	for _, f := range files {
		paths[f.Name] = f.Path
	}
	return paths
}
