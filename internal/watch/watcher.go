// Package watch rebuilds the documentation whenever source files change.
// File system events are debounced so editor save bursts trigger one build.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/apiref/internal/config"
	"git.home.luguber.info/inful/apiref/internal/fsio"
)

// DefaultDebounce is the quiet period required before a rebuild fires.
const DefaultDebounce = 500 * time.Millisecond

// BuildFunc runs one documentation build.
type BuildFunc func(ctx context.Context) error

// Watcher monitors the source tree and triggers debounced rebuilds.
type Watcher struct {
	cfg         *config.Config
	build       BuildFunc
	watcher     *fsnotify.Watcher
	mu          sync.Mutex
	stopChan    chan struct{}
	rebuildChan chan struct{}
	debounce    time.Duration
	stopped     bool
}

// NewWatcher creates a watcher over the configured source directory.
// A non-positive debounce falls back to DefaultDebounce.
func NewWatcher(cfg *config.Config, debounce time.Duration, build BuildFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		cfg:         cfg,
		build:       build,
		watcher:     fsw,
		stopChan:    make(chan struct{}),
		rebuildChan: make(chan struct{}, 1),
		debounce:    debounce,
	}, nil
}

// Start registers the source tree and begins watching. It returns after the
// watch goroutines are running; cancellation of ctx stops them.
func (w *Watcher) Start(ctx context.Context) error {
	root := w.cfg.Project.SourceDir
	if err := w.addTree(root); err != nil {
		return fmt.Errorf("watch source tree %s: %w", root, err)
	}

	slog.Info("Watching for source changes",
		"dir", root, "debounce", w.debounce.String())

	go w.watchLoop(ctx)
	go w.rebuildLoop(ctx)
	return nil
}

// Stop shuts the watcher down. Safe to call once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	return w.watcher.Close()
}

// addTree registers a directory and every directory below it. fsnotify does
// not watch recursively on its own.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
}

// relevant reports whether an event path should trigger a rebuild: it must
// match a configured source glob and not be excluded or live under the
// output tree.
func (w *Watcher) relevant(path string) bool {
	p := filepath.ToSlash(strings.TrimPrefix(path, "./"))
	if w.cfg.Output.Dir != "" && strings.HasPrefix(p, w.cfg.Output.Dir+"/") {
		return false
	}
	for _, ex := range w.cfg.Source.Exclude {
		if fsio.MatchPattern(ex, p) {
			return false
		}
	}
	for _, g := range w.cfg.Source.Globs {
		if fsio.MatchPattern(g, p) {
			return true
		}
	}
	return false
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				// New directories need their own watch.
				if err := w.addTree(event.Name); err != nil {
					slog.Debug("Unable to watch new path", "path", event.Name, "error", err)
				}
			}
			if !w.relevant(event.Name) {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
				event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				slog.Debug("Source change detected", "path", event.Name, "op", event.Op.String())
				w.trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}

// rebuildLoop coalesces triggers: each trigger resets the debounce timer and
// the build runs only after the tree has been quiet for the full period.
func (w *Watcher) rebuildLoop(ctx context.Context) {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.rebuildChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if err := w.build(ctx); err != nil {
					slog.Error("Rebuild failed", "error", err)
				}
			})
		}
	}
}

// trigger requests a rebuild; a pending request absorbs further triggers.
func (w *Watcher) trigger() {
	select {
	case w.rebuildChan <- struct{}{}:
	default:
	}
}
