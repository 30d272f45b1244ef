// Package watch re-runs the lens report when a lens file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"serieslens/internal/lens"
	"serieslens/internal/report"
)

// Watcher reloads lens files into a lens Manager and reports after every
// debounced change.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	lenses   lens.Manager
	reporter *report.Reporter
	logger   *zap.Logger
	files    map[string][]string // cleaned absolute path -> lens names
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// New creates a Watcher for files, keyed by lens name.
func New(files map[string]string, lenses lens.Manager, reporter *report.Reporter, logger *zap.Logger, debounce time.Duration) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	byPath := make(map[string][]string, len(files))
	for name, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving lens file %s: %w", path, err)
		}
		abs = filepath.Clean(abs)
		byPath[abs] = append(byPath[abs], name)
	}
	for _, names := range byPath {
		sort.Strings(names)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		lenses:   lenses,
		reporter: reporter,
		logger:   logger,
		files:    byPath,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start watches the directories holding the lens files. Directories are
// watched instead of the files so editors that replace files on save are
// still seen. Start does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher is already running")
	}

	dirs := make(map[string]struct{})
	for path := range w.files {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.watcher.Close()
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.logger.Debug("Watching directory", zap.String("dir", dir))
	}

	w.running = true
	go w.run(ctx)

	w.logger.Info("Lens watcher started", zap.Int("files", len(w.files)))
	return nil
}

// Stop ends the event loop and releases the file watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("closing file watcher: %w", err)
	}
	w.logger.Info("Lens watcher stopped")
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			path := filepath.Clean(event.Name)
			if _, watched := w.files[path]; !watched || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Every event restarts the quiet period
			timer.Reset(w.debounce)
			pending[path] = struct{}{}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("File watcher error", zap.Error(err))

		case <-timer.C:
			w.reload(pending)
			clear(pending)
		}
	}
}

// reload refreshes every lens read from a changed file and reports. A file
// that fails to load keeps its previous lenses.
func (w *Watcher) reload(changed map[string]struct{}) {
	paths := make([]string, 0, len(changed))
	for path := range changed {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		for _, name := range w.files[path] {
			l, err := lens.LoadFile(path, name)
			if err != nil {
				w.logger.Warn("Keeping previous lens", zap.String("lens", name), zap.Error(err))
				continue
			}
			w.lenses.Set(l)
			w.logger.Debug("Reloaded lens", zap.String("lens", name), zap.String("path", path))
		}
	}

	if err := w.reporter.ReportFrom(w.lenses); err != nil {
		w.logger.Error("Lens report failed", zap.Error(err))
	}
}
