package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/apiroutes/internal/adapters/watcher"
	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/core/ports"
	"go.trai.ch/apiroutes/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func startWatcher(t *testing.T, root string) <-chan ports.WatchEvent {
	t.Helper()

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	w := watcher.NewWatcher(logger)
	require.NoError(t, w.Start(ctx, root))
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})

	events := make(chan ports.WatchEvent, 100)
	go func() {
		defer close(events)
		for ev := range w.Events() {
			events <- ev
		}
	}()
	return events
}

func waitForEvent(t *testing.T, events <-chan ports.WatchEvent, match func(ports.WatchEvent) bool) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed")
			if match(ev) {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for watch event")
		}
	}
}

func TestWatcher_ReportsWrites(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "hello+api.ts")
	require.NoError(t, os.WriteFile(file, []byte("v1"), domain.PrivateFilePerm))

	events := startWatcher(t, root)
	require.NoError(t, os.WriteFile(file, []byte("v2"), domain.PrivateFilePerm))

	waitForEvent(t, events, func(ev ports.WatchEvent) bool {
		return ev.Path == file && ev.Operation == ports.OpWrite
	})
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	events := startWatcher(t, root)

	dir := filepath.Join(root, "users")
	require.NoError(t, os.Mkdir(dir, domain.DirPerm))
	waitForEvent(t, events, func(ev ports.WatchEvent) bool {
		return ev.Path == dir && ev.Operation == ports.OpCreate
	})

	// The new directory is watched asynchronously, so keep writing until it is seen.
	file := filepath.Join(dir, "[id]+api.ts")
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case <-ticker.C:
			require.NoError(t, os.WriteFile(file, []byte("x"), domain.PrivateFilePerm))
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed")
			if ev.Path == file {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for event in new directory")
		}
	}
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "gone+api.ts")
	require.NoError(t, os.WriteFile(file, []byte("x"), domain.PrivateFilePerm))

	events := startWatcher(t, root)
	require.NoError(t, os.Remove(file))

	waitForEvent(t, events, func(ev ports.WatchEvent) bool {
		return ev.Path == file && (ev.Operation == ports.OpRemove || ev.Operation == ports.OpRename)
	})
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	w := watcher.NewWatcher(logger)
	require.NoError(t, w.Start(context.Background(), t.TempDir()))
	require.NoError(t, w.Stop())

	done := make(chan struct{})
	go func() {
		for range w.Events() {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("events did not end after Stop")
	}
}

func TestWatcher_StopBeforeStart(t *testing.T) {
	assert.NoError(t, watcher.NewWatcher(nil).Stop())
}
