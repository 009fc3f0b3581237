// Package watch reports debounced changes to a taxonomy document on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/taxon/internal/logger"
)

// DefaultDelay groups the burst of events an editor produces on save.
const DefaultDelay = 150 * time.Millisecond

// Op describes what happened to the watched document.
type Op int

const (
	OpModified Op = iota
	OpCreated
	OpRemoved
	OpRenamed
)

func (o Op) String() string {
	switch o {
	case OpCreated:
		return "created"
	case OpRemoved:
		return "removed"
	case OpRenamed:
		return "renamed"
	default:
		return "modified"
	}
}

// Change is emitted once per quiet period after the document changed.
type Change struct {
	Path string
	Op   Op
	At   time.Time
	// Events counts the raw filesystem events folded into this change.
	Events int
}

// Watcher watches the directory holding a document, so editors that save
// by writing a temporary file and renaming it are still observed.
type Watcher struct {
	path  string
	delay time.Duration
	fs    *fsnotify.Watcher
	log   *logger.Logger

	changes chan Change

	mu      sync.Mutex
	timer   *time.Timer
	pending *Change
	closed  bool
}

// New starts watching path. Close releases the underlying watcher.
func New(path string, delay time.Duration, log *logger.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:    abs,
		delay:   delay,
		fs:      fsw,
		log:     log.Component("watch"),
		changes: make(chan Change, 1),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Changes delivers debounced changes. At most one change is buffered; a
// newer change replaces an unread one.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Run forwards filesystem events until ctx is cancelled or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Error(err, "filesystem watcher error")
		}
	}
}

// Next blocks until the next change arrives.
func (w *Watcher) Next(ctx context.Context) (Change, error) {
	select {
	case <-ctx.Done():
		return Change{}, ctx.Err()
	case change, ok := <-w.changes:
		if !ok {
			return Change{}, ErrClosed
		}
		return change, nil
	}
}

// ErrClosed is returned by Next once the watcher is closed.
var ErrClosed = errors.New("watcher closed")

// Close stops watching and closes the Changes channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.changes)
	w.mu.Unlock()

	return w.fs.Close()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}

	op := OpModified
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreated
	case event.Has(fsnotify.Remove):
		op = OpRemoved
	case event.Has(fsnotify.Rename):
		op = OpRenamed
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	if w.pending == nil {
		w.pending = &Change{Path: w.path}
	}
	w.pending.Op = op
	w.pending.At = time.Now()
	w.pending.Events++

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.pending == nil {
		return
	}
	change := *w.pending
	w.pending = nil

	// Drop a stale unread change so the reader always sees the latest one.
	select {
	case <-w.changes:
	default:
	}
	w.changes <- change

	w.log.WithFields(map[string]any{"op": change.Op.String(), "events": change.Events}).Debug("document changed")
}
