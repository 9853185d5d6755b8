// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher collects changes before it
// reloads. Generators rewrite many files in a burst.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads store tables when their CSVs change.
type Watcher struct {
	store    *Store
	root     string
	pattern  string
	debounce time.Duration
	log      *zap.Logger
	fsw      *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// reloaded receives the paths handled by each flush; nil unless set
	// by tests.
	reloaded chan []string
}

// NewWatcher watches root and every directory below it.
func NewWatcher(store *Store, root, pattern string, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		store:    store,
		root:     root,
		pattern:  pattern,
		debounce: DefaultDebounce,
		log:      log,
		fsw:      fsw,
		pending:  make(map[string]fsnotify.Op),
	}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := d.Name()
		if path != root && strings.HasPrefix(base, ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.log.Warn("cannot watch directory", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
}

// Run processes events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error", zap.Error(err))
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := event.Name
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addRecursive(path); err != nil {
				w.log.Warn("cannot watch new directory", zap.String("path", path), zap.Error(err))
			}
			return
		}
	}
	// Temp files from atomic writes never match the pattern; the rename
	// onto the final name does.
	if !Matches(w.root, w.pattern, path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()
}

func (w *Watcher) flush(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	batch := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	var handled []string
	for path := range batch {
		if ctx.Err() != nil {
			return
		}
		handled = append(handled, path)

		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := w.store.Remove(ctx, path); err != nil {
				TableReloads.WithLabelValues("error").Inc()
				w.log.Error("dropping table", zap.String("path", path), zap.Error(err))
				continue
			}
			TableReloads.WithLabelValues("removed").Inc()
			w.log.Info("table removed", zap.String("path", path))
			continue
		}

		loaded, err := w.store.Load(ctx, path)
		switch {
		case err != nil:
			TableReloads.WithLabelValues("error").Inc()
			w.log.Error("reloading table", zap.String("path", path), zap.Error(err))
		case loaded:
			TableReloads.WithLabelValues("loaded").Inc()
			w.log.Info("table reloaded", zap.String("path", path))
		default:
			TableReloads.WithLabelValues("unchanged").Inc()
		}
	}

	if tables, err := w.store.Tables(ctx); err == nil {
		TablesLoaded.Set(float64(len(tables)))
	}
	if w.reloaded != nil {
		w.reloaded <- handled
	}
}
