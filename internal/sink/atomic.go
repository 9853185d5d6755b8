// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic renders an artifact into a temp file next to destPath and
// renames it into place, so readers never see a truncated file. The
// destination directory is created if needed.
func WriteAtomic(destPath string, render func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".partcatalog-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	bw := bufio.NewWriter(tmpFile)
	renderErr := render(bw)
	if renderErr == nil {
		renderErr = bw.Flush()
	}
	closeErr := tmpFile.Close()
	if renderErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing artifact: %w", renderErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
