package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Reports writes benchmark reports to the local filesystem. A report is
// written under a pending directory and only appears in the published
// directory once Publish renames it there.
type Reports struct {
	pendingDir   string
	publishedDir string
}

// NewReports creates both directories if they are missing.
func NewReports(pendingDir, publishedDir string) (*Reports, error) {
	for _, dir := range []string{pendingDir, publishedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return &Reports{
		pendingDir:   pendingDir,
		publishedDir: publishedDir,
	}, nil
}

// Create opens a pending report for writing, truncating any earlier attempt.
func (s *Reports) Create(_ context.Context, name string) (io.WriteCloser, error) {
	path := filepath.Join(s.pendingDir, filepath.Base(name))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", name, err)
	}
	return file, nil
}

// Publish moves a pending report into the published directory.
func (s *Reports) Publish(_ context.Context, name string) error {
	base := filepath.Base(name)
	if err := os.Rename(filepath.Join(s.pendingDir, base), filepath.Join(s.publishedDir, base)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", name, err)
	}
	return nil
}

// List returns the names of published reports, sorted.
func (s *Reports) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.publishedDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
