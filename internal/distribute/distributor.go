// Package distribute physically applies a partition to the filesystem, in
// one of two modes: copying each bucket into an indexed output directory,
// or deleting everything outside one bucket from a shared input directory.
package distribute

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"tsplit/internal/domain"
	"tsplit/internal/logging"
	"tsplit/internal/ui"
)

// Distributor copies or deletes test files according to a partition.
// Filesystem errors are logged and counted rather than aborting the pass;
// a summarizing error is returned at the end so the process can exit
// nonzero on partial failure.
type Distributor struct {
	logger   logging.Logger
	progress *ui.ProgressBar
}

// NewDistributor creates a new Distributor.
func NewDistributor(logger logging.Logger) *Distributor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Distributor{logger: logger}
}

// SetProgress sets the progress bar for file operations.
func (d *Distributor) SetProgress(progress *ui.ProgressBar) {
	d.progress = progress
}

// Copy copies every file of every bucket into an output directory named
// after the bucket's index, creating intermediate directories as needed.
// paths maps each item name to its source path on disk.
func (d *Distributor) Copy(p domain.Partition, paths map[string]string, outputDir string) error {
	failed := 0
	for i, bucket := range p {
		bucketDir := filepath.Join(outputDir, strconv.Itoa(i))
		if err := os.MkdirAll(bucketDir, 0755); err != nil {
			return fmt.Errorf("create bucket directory %s: %w", bucketDir, err)
		}
		for _, item := range bucket.Items {
			src, ok := paths[item.Name]
			if !ok {
				d.logger.Error("no source path for test file", "file", item.Name)
				failed++
				continue
			}
			if err := copyFile(src, filepath.Join(bucketDir, item.Name)); err != nil {
				d.logger.Error("copy failed", "file", item.Name, "error", err)
				failed++
			}
			d.step()
		}
	}
	d.finish()
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be copied", failed)
	}
	return nil
}

// Delete removes every regular file under root whose base name is not in
// the given bucket. Used when each CI worker shares one input directory
// layout and keeps only its own bucket.
func (d *Distributor) Delete(bucket domain.Bucket, root string) error {
	keep := make(map[string]bool, len(bucket.Items))
	for _, item := range bucket.Items {
		keep[item.Name] = true
	}

	failed := 0
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !entry.Type().IsRegular() || keep[entry.Name()] {
			return nil
		}
		if err := os.Remove(path); err != nil {
			d.logger.Error("delete failed", "file", path, "error", err)
			failed++
		}
		d.step()
		return nil
	})
	d.finish()
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be deleted", failed)
	}
	return nil
}

func (d *Distributor) step() {
	if d.progress != nil {
		d.progress.Step()
	}
}

func (d *Distributor) finish() {
	if d.progress != nil {
		d.progress.Finish()
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
