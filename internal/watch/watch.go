// Package watch reports audio files that appear, change or disappear below
// a set of directories.
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
)

// DefaultDebounce is how long a path must stay quiet before it is reported.
const DefaultDebounce = 250 * time.Millisecond

// Event is a settled change to one file.
type Event struct {
	Path string

	// Removed is set when the file was deleted or renamed away
	Removed bool
}

// Watcher follows directory trees through fsnotify.
//
// Directories created after Add are picked up automatically, along with any
// files already inside them. Hidden directories are skipped. Add must not be
// called while Run is active. Close releases the underlying handle.
type Watcher struct {
	fs       *fsnotify.Watcher
	filter   func(path string) bool
	debounce time.Duration
	logger   *slog.Logger
	dirs     map[string]bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger routes watch errors to l.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// New creates a watcher reporting files for which filter returns true.
func New(filter func(path string) bool, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fs:       fw,
		filter:   filter,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
		dirs:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add watches root and every non-hidden directory below it.
func (w *Watcher) Add(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	return w.addRecursive(abs, nil)
}

// Dirs returns the number of directories being watched.
func (w *Watcher) Dirs() int {
	return len(w.dirs)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// pending is a debounce timer; gen tells a stale firing from the current one.
type pending struct {
	timer *time.Timer
	gen   uint64
}

type settled struct {
	ev  Event
	gen uint64
}

// Run delivers settled events to handle until ctx is done or the watcher is
// closed. handle is called from Run's goroutine, one event at a time.
func (w *Watcher) Run(ctx context.Context, handle func(Event)) error {
	ready := make(chan settled)
	done := make(chan struct{})
	defer close(done)

	timers := make(map[string]pending)
	var gen uint64

	defer func() {
		for _, p := range timers {
			p.timer.Stop()
		}
	}()

	schedule := func(ev Event) {
		if p, ok := timers[ev.Path]; ok {
			p.timer.Stop()
		}
		gen++
		g := gen
		t := time.AfterFunc(w.debounce, func() {
			select {
			case ready <- settled{ev: ev, gen: g}:
			case <-done:
			}
		})
		timers[ev.Path] = pending{timer: t, gen: g}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			for _, ev := range w.observe(event) {
				schedule(ev)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case s := <-ready:
			if p, ok := timers[s.ev.Path]; !ok || p.gen != s.gen {
				continue
			}
			delete(timers, s.ev.Path)
			handle(s.ev)
		}
	}
}

// observe maintains directory watches and maps a raw event to file events.
func (w *Watcher) observe(event fsnotify.Event) []Event {
	path := event.Name

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if w.dirs[path] {
			_ = w.fs.Remove(path)
			delete(w.dirs, path)
			return nil
		}
		if !w.filter(path) {
			return nil
		}
		return []Event{{Path: path, Removed: true}}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	if info.IsDir() {
		if !event.Has(fsnotify.Create) {
			return nil
		}
		var events []Event
		err := w.addRecursive(path, func(file string) {
			events = append(events, Event{Path: file})
		})
		if err != nil {
			w.logger.Warn("failed to watch new directory", "path", path, "error", err)
		}
		return events
	}

	if !w.filter(path) {
		return nil
	}
	return []Event{{Path: path}}
}

// addRecursive watches root and its non-hidden subdirectories. If found is
// non-nil it receives every matching file met on the way.
func (w *Watcher) addRecursive(root string, found func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !d.IsDir() {
			if found != nil && d.Type().IsRegular() && w.filter(path) {
				found(path)
			}
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.dirs[path] {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.dirs[path] = true
		return nil
	})
}
