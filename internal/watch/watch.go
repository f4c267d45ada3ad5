// Package watch re-runs a generator when its inputs change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
)

// DefaultDebounce coalesces editor save bursts.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a set of files and calls onChange once changes have been
// quiet for the debounce interval. Calls to onChange never overlap.
type Watcher struct {
	files    []string
	debounce time.Duration
	onChange func(changed []string)
	logger   *slog.Logger
	clock    clockwork.Clock
}

// New creates a Watcher for files. Parent directories are watched rather than
// the files themselves so that replace-on-save editors are still seen.
func New(files []string, debounce time.Duration, logger *slog.Logger, onChange func(changed []string)) *Watcher {
	abs := make([]string, 0, len(files))
	for _, f := range files {
		if f == "" {
			continue
		}
		if a, err := filepath.Abs(f); err == nil {
			f = a
		}
		abs = append(abs, filepath.Clean(f))
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		files:    abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		clock:    clockwork.NewRealClock(),
	}
}

// Files returns the watched files.
func (w *Watcher) Files() []string { return slices.Clone(w.files) }

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	dirs := map[string]bool{}
	for _, f := range w.files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			w.logger.Warn("not watching missing directory", "dir", dir)
			continue
		}
		if err := fsw.Add(dir); err != nil {
			w.logger.Warn("failed to watch", "dir", dir, "error", err)
			continue
		}
		dirs[dir] = true
	}

	var (
		timer   clockwork.Timer
		fire    = make(chan struct{}, 1)
		pending = map[string]bool{}
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stopTimer()

	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(ev.Name)
			if !slices.Contains(w.files, name) {
				continue
			}
			pending[name] = true
			stopTimer()
			timer = w.clock.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			slices.Sort(changed)
			clear(pending)
			w.logger.Info("inputs changed", "files", changed)
			w.onChange(changed)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}
