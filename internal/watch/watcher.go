// Package watch reruns work when schema files change on disk.
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
)

// DefaultDelay is how long changes are collected before the callback runs
const DefaultDelay = 100 * time.Millisecond

// Watcher monitors a set of files. Their directories are watched rather than
// the files themselves, so editors that save by renaming are picked up.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]struct{}
	delay   time.Duration
	logger  *zap.Logger
}

// New creates a watcher for paths
func New(paths []string, delay time.Duration, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		watcher: fsw,
		files:   make(map[string]struct{}, len(paths)),
		delay:   delay,
		logger:  logger,
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		logger.Debug("watching directory", zap.String("dir", dir))
	}

	return w, nil
}

// Run calls onChange with the changed files until ctx is done. Calls never
// overlap, and Run returns only after the last one finished.
func (w *Watcher) Run(ctx context.Context, onChange func(files []string)) error {
	debouncer := NewDebouncer(w.delay, onChange)
	defer func() {
		debouncer.Stop()
		w.watcher.Close()
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := w.files[abs]; ok {
				w.logger.Debug("file changed", zap.String("file", abs), zap.Stringer("op", event.Op))
				debouncer.Add(abs)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-ctx.Done():
			return nil
		}
	}
}

// Debouncer collects file changes and runs its callback once they settle
type Debouncer struct {
	delay    time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
	stopped  bool
}

// NewDebouncer creates a debouncer calling callback delay after the last Add
func NewDebouncer(delay time.Duration, callback func([]string)) *Debouncer {
	return &Debouncer{
		delay:    delay,
		files:    make(map[string]struct{}),
		callback: callback,
	}
}

// Add records a changed file and restarts the delay
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}
	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

// flush runs the callback with the collected files, sorted
func (d *Debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped || len(d.files) == 0 {
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}
	sort.Strings(files)
	d.files = make(map[string]struct{})

	if d.callback != nil {
		d.callback(files)
	}
}

// Stop drops pending changes. It waits for a running callback.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.stopped = true
}
