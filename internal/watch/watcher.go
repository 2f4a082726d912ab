// Package watch re-runs the suite when a watched document changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/noogen-projects/md-cli-test/internal/config"
)

// DefaultDebounce groups the bursts of events editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes of markdown documents
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	files    map[string]bool
	dirs     map[string]bool
	debounce time.Duration
}

// New creates a Watcher for the given documents and directories
func New(paths []string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		logger:   logger,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: DefaultDebounce,
	}
	for _, path := range paths {
		if err := w.add(path); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}
	return w, nil
}

// SetDebounce changes how long the watcher waits for more events
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// add watches a document through its directory, or every directory below a
// directory, since editors often replace files instead of writing them.
func (w *Watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	if !info.IsDir() {
		w.files[abs] = true
		return w.watchDir(filepath.Dir(abs))
	}

	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != abs && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		w.dirs[p] = true
		return w.watchDir(p)
	})
}

func (w *Watcher) watchDir(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	return nil
}

// relevant reports whether event touches a watched document
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if w.files[name] {
		return true
	}
	if !w.dirs[filepath.Dir(name)] {
		return false
	}
	matched, _ := filepath.Match(config.DefaultDocumentPattern, filepath.Base(name))
	return matched
}

// Run calls onChange after every burst of changes until ctx is done or
// onChange fails.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context) error) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("document changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				return err
			}
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
