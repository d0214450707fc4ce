package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(WithDebounce(50 * time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(w.Stop)
	return w
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("no event arrived")
		return Event{}
	}
}

func TestWatchedDirectoryEmits(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	w.Sync([]string{dir})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, dir, ev.Dir)
}

func TestUnwatchedDirectoryIsSilent(t *testing.T) {
	watched := t.TempDir()
	other := t.TempDir()
	w := newTestWatcher(t)
	w.Sync([]string{watched})
	w.Sync([]string{watched, other})
	w.Sync([]string{watched})

	require.NoError(t, os.WriteFile(filepath.Join(other, "ignored.txt"), []byte("x"), 0o644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for %s", ev.Dir)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestBurstDebouncesToOneEvent(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	w.Sync([]string{dir})

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte{byte(i)}, 0o644))
	}

	ev := waitEvent(t, w)
	assert.Equal(t, dir, ev.Dir)

	select {
	case ev := <-w.Events():
		t.Fatalf("burst produced a second event for %s", ev.Dir)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestStopIsIdempotent(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	w.Stop()
	w.Stop()
	// Sync after Stop must not panic either.
	w.Sync([]string{t.TempDir()})
}

func TestStopClosesEvents(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	w.Sync([]string{dir})
	w.Stop()

	// Receivers blocked on Events must wake up instead of leaking.
	select {
	case _, ok := <-w.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("event channel still open after Stop")
	}
}

func TestPendingTimerAfterStopDoesNotPanic(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	w.Sync([]string{dir})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0o644))
	w.Stop()

	// Give any timer that raced Stop a chance to fire.
	time.Sleep(200 * time.Millisecond)
}
