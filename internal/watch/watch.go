package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"

	"rbsparse/internal/workspace"
)

var log = commonlog.GetLogger("rbsparse.watch")

// DefaultDelay is how long the watcher waits for events to settle before
// reparsing.
const DefaultDelay = 200 * time.Millisecond

// Handler receives each reparsed file.
type Handler func(*workspace.File)

// Watcher reparses signature files under a set of directories whenever they
// are written.
type Watcher struct {
	loader  *workspace.Loader
	delay   time.Duration
	fs      *fsnotify.Watcher
	pending map[string]struct{}
}

// New creates a watcher. A non-positive delay selects DefaultDelay.
func New(loader *workspace.Loader, delay time.Duration) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &Watcher{
		loader:  loader,
		delay:   delay,
		fs:      fw,
		pending: make(map[string]struct{}),
	}, nil
}

// Add watches dir and every directory below it.
func (w *Watcher) Add(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		log.Debugf("watching %s", path)
		return nil
	})
}

// Close releases the underlying watcher. Run returns once it is closed.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run processes events until ctx is cancelled or the watcher is closed.
// Writes are collected until no event has arrived for the configured delay,
// then every collected file is reparsed and passed to handle in path order.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				timer.Reset(w.delay)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher error: %s", err)

		case <-timer.C:
			if err := w.flush(ctx, handle); err != nil {
				return err
			}
		}
	}
}

// handleEvent records a relevant event and reports whether a reparse is due.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	switch {
	case event.Op.Has(fsnotify.Create) && isDir(event.Name):
		if err := w.Add(event.Name); err != nil {
			log.Warningf("%s", err)
		}
		return false
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		delete(w.pending, event.Name)
		log.Debugf("removed %s", event.Name)
		return false
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		if !w.loader.Matches(event.Name) {
			return false
		}
		w.pending[event.Name] = struct{}{}
		return true
	}
	return false
}

// flush reparses every pending file.
func (w *Watcher) flush(ctx context.Context, handle Handler) error {
	if len(w.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	clear(w.pending)

	log.Infof("reparsing %d file(s)", len(paths))
	files, err := w.loader.LoadFiles(ctx, paths)
	if err != nil {
		return err
	}
	for _, f := range files {
		handle(f)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
