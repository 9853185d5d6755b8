// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Discover returns the regular files under root matching the doublestar
// pattern (e.g. "**/*.csv"), sorted.
func Discover(root, pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(root, filepath.FromSlash(pattern)))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// Matches reports whether path, relative to root, matches pattern.
func Matches(root, pattern, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

// LoadAll discovers and loads every matching CSV. Files that fail to load
// are logged and skipped.
func LoadAll(ctx context.Context, store *Store, root, pattern string, log *zap.Logger) (int, error) {
	files, err := Discover(root, pattern)
	if err != nil {
		return 0, err
	}
	loaded := 0
	for _, path := range files {
		if _, err := store.Load(ctx, path); err != nil {
			log.Warn("skipping csv", zap.String("path", path), zap.Error(err))
			continue
		}
		loaded++
	}
	TablesLoaded.Set(float64(loaded))
	return loaded, nil
}
