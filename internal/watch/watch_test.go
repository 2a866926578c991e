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

	"rbsparse/internal/workspace"
)

func newWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(workspace.NewLoader(2, 256, []string{".rbs"}), 50*time.Millisecond)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestHandleEventFiltersExtensions(t *testing.T) {
	w := newWatcher(t)

	assert.True(t, w.handleEvent(fsnotify.Event{Name: "/sig/a.rbs", Op: fsnotify.Write}))
	assert.True(t, w.handleEvent(fsnotify.Event{Name: "/sig/b.rbs", Op: fsnotify.Create}))
	assert.False(t, w.handleEvent(fsnotify.Event{Name: "/sig/c.rb", Op: fsnotify.Write}))
	assert.False(t, w.handleEvent(fsnotify.Event{Name: "/sig/a.rbs", Op: fsnotify.Chmod}))
	assert.Len(t, w.pending, 2)

	assert.False(t, w.handleEvent(fsnotify.Event{Name: "/sig/b.rbs", Op: fsnotify.Remove}))
	assert.Len(t, w.pending, 1)
	assert.Contains(t, w.pending, "/sig/a.rbs")
}

func TestFlushReparsesPendingFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.rbs")
	bad := filepath.Join(dir, "bad.rbs")
	require.NoError(t, os.WriteFile(good, []byte("class Foo\nend\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("class Foo\n"), 0o644))

	w := newWatcher(t)
	w.pending[good] = struct{}{}
	w.pending[bad] = struct{}{}

	var files []*workspace.File
	require.NoError(t, w.flush(context.Background(), func(f *workspace.File) {
		files = append(files, f)
	}))

	require.Len(t, files, 2)
	assert.Equal(t, bad, files[0].Path)
	assert.Error(t, files[0].Err)
	assert.Equal(t, good, files[1].Path)
	require.NoError(t, files[1].Err)
	assert.Len(t, files[1].Decls, 1)
	assert.Empty(t, w.pending)
}

func TestFlushWithNothingPending(t *testing.T) {
	w := newWatcher(t)
	called := false
	require.NoError(t, w.flush(context.Background(), func(*workspace.File) { called = true }))
	assert.False(t, called)
}

func TestRunReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w := newWatcher(t)
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *workspace.File, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(f *workspace.File) { results <- f })
	}()

	path := filepath.Join(dir, "point.rbs")
	require.NoError(t, os.WriteFile(path, []byte("type point = [Integer, Integer]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	select {
	case f := <-results:
		assert.Equal(t, path, f.Path)
		require.NoError(t, f.Err)
		assert.Len(t, f.Decls, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reparse")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for watcher to stop")
	}
}

func TestNewDefaultsDelay(t *testing.T) {
	w, err := New(workspace.NewLoader(1, 256, []string{".rbs"}), 0)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()
	assert.Equal(t, DefaultDelay, w.delay)
}
