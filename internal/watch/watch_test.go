package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/taxon/internal/logger"
)

func TestOpString(t *testing.T) {
	cases := map[Op]string{
		OpModified: "modified",
		OpCreated:  "created",
		OpRemoved:  "removed",
		OpRenamed:  "renamed",
	}
	for op, want := range cases {
		assert.Equal(t, want, op.String())
	}
}

func newTestWatcher(t *testing.T, delay time.Duration) (*Watcher, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n"), 0o644))

	w, err := New(path, delay, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, path
}

func TestWatcherDebouncesBurst(t *testing.T) {
	w, path := newTestWatcher(t, 20*time.Millisecond)

	for range 5 {
		w.handle(fsnotify.Event{Name: path, Op: fsnotify.Write})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	change, err := w.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, w.Path(), change.Path)
	assert.Equal(t, OpModified, change.Op)
	assert.Equal(t, 5, change.Events)

	select {
	case extra := <-w.Changes():
		t.Fatalf("unexpected second change: %+v", extra)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblingsAndChmod(t *testing.T) {
	w, path := newTestWatcher(t, 10*time.Millisecond)

	w.handle(fsnotify.Event{Name: filepath.Join(filepath.Dir(path), "other.yaml"), Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Chmod})

	select {
	case change := <-w.Changes():
		t.Fatalf("unexpected change: %+v", change)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatcherKeepsLatestOp(t *testing.T) {
	w, path := newTestWatcher(t, 10*time.Millisecond)

	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Remove})
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Create})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	change, err := w.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, OpCreated, change.Op)
	assert.Equal(t, 2, change.Events)
}

func TestWatcherObservesRealWrites(t *testing.T) {
	w, path := newTestWatcher(t, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// Give the event loop a moment to start before writing.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.1\"\n"), 0o644))

	change, err := w.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, w.Path(), change.Path)
	assert.GreaterOrEqual(t, change.Events, 1)
}

func TestWatcherClose(t *testing.T) {
	w, _ := newTestWatcher(t, 10*time.Millisecond)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err := w.Next(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "taxonomy.yaml"), 0, nil)
	require.Error(t, err)
}
