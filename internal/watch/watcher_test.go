package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(doc, nil, 0644))
	other := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(other, "nested"), 0755))

	w, err := New([]string{doc, other}, nil)
	require.NoError(t, err)
	defer w.Close()

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{"watched file written", fsnotify.Event{Name: doc, Op: fsnotify.Write}, true},
		{"sibling of watched file", fsnotify.Event{Name: filepath.Join(dir, "GUIDE.md"), Op: fsnotify.Write}, false},
		{"document in watched dir", fsnotify.Event{Name: filepath.Join(other, "nested", "a.md"), Op: fsnotify.Create}, true},
		{"non document in watched dir", fsnotify.Event{Name: filepath.Join(other, "a.txt"), Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: doc, Op: fsnotify.Chmod}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.relevant(tt.event))
		})
	}
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(doc, []byte("# A\n"), 0644))

	w, err := New([]string{dir}, nil)
	require.NoError(t, err)
	defer w.Close()
	w.SetDebounce(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stop := errors.New("stop")
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			return stop
		})
	}()

	require.NoError(t, os.WriteFile(doc, []byte("# B\n"), 0644))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, stop)
	case <-ctx.Done():
		t.Fatal("change was not reported")
	}
}

func TestNew_MissingPath(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing.md")}, nil)
	assert.Error(t, err)
}
