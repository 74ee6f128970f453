package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// writeGraphFile creates a throwaway graph file and returns its path.
func writeGraphFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func touch(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	var fired atomic.Int32

	for i := 0; i < 10; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if n := fired.Load(); n != 1 {
		t.Errorf("a burst of triggers should fire once, fired %d times", n)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	var fired atomic.Bool

	d.Trigger(func() { fired.Store(true) })
	d.Cancel()
	time.Sleep(100 * time.Millisecond)

	if fired.Load() {
		t.Error("cancelled trigger still fired")
	}
}

func TestDebouncerZeroDurationUsesDefault(t *testing.T) {
	if d := NewDebouncer(0); d.Duration() != DefaultDebounceDuration {
		t.Errorf("Duration() = %v, want %v", d.Duration(), DefaultDebounceDuration)
	}
}

func TestWatcherDetectsWrite(t *testing.T) {
	path := writeGraphFile(t, `{"nodes":[]}`)

	var changed atomic.Bool
	w, err := NewWatcher(path,
		WithDebounceDuration(50*time.Millisecond),
		WithOnChange(func() { changed.Store(true) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	touch(t, path, `{"nodes":[{"id":"a"}]}`)
	time.Sleep(300 * time.Millisecond)

	if !changed.Load() {
		t.Error("write went unnoticed")
	}
}

func TestWatcherPollingFallback(t *testing.T) {
	path := writeGraphFile(t, "v1")

	var changed atomic.Bool
	w, err := NewWatcher(path,
		WithForcePoll(true),
		WithPollInterval(50*time.Millisecond),
		WithDebounceDuration(25*time.Millisecond),
		WithOnChange(func() { changed.Store(true) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("WithForcePoll must select polling mode")
	}

	time.Sleep(60 * time.Millisecond)
	touch(t, path, "v2 with different size")
	time.Sleep(300 * time.Millisecond)

	if !changed.Load() {
		t.Error("polling missed the write")
	}
}

func TestWatcherChangedChannel(t *testing.T) {
	path := writeGraphFile(t, "v1")

	w, err := NewWatcher(path,
		WithForcePoll(true),
		WithPollInterval(50*time.Millisecond),
		WithDebounceDuration(25*time.Millisecond),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	go func() {
		time.Sleep(60 * time.Millisecond)
		os.WriteFile(path, []byte("v2 longer"), 0o644)
	}()

	select {
	case <-w.Changed():
	case <-time.After(time.Second):
		t.Error("no change token within a second of the write")
	}
}

func TestWatcherEnvForcesPolling(t *testing.T) {
	t.Setenv("NLENS_FORCE_POLL", "1")
	path := writeGraphFile(t, "v1")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Error("NLENS_FORCE_POLL=1 must select polling mode")
	}
}

func TestWatcherReportsRemoval(t *testing.T) {
	path := writeGraphFile(t, "v1")

	errCh := make(chan error, 4)
	w, err := NewWatcher(path,
		WithForcePoll(true),
		WithPollInterval(50*time.Millisecond),
		WithOnError(func(err error) {
			select {
			case errCh <- err:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errCh:
		if err != ErrFileRemoved {
			t.Errorf("got %v, want ErrFileRemoved", err)
		}
	case <-time.After(time.Second):
		t.Error("removal never reported")
	}
}

func TestWatcherReportsRemovalOnce(t *testing.T) {
	path := writeGraphFile(t, "v1")

	var removals atomic.Int32
	w, err := NewWatcher(path,
		WithForcePoll(true),
		WithPollInterval(25*time.Millisecond),
		WithOnError(func(err error) {
			if err == ErrFileRemoved {
				removals.Add(1)
			}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	// Let many poll ticks pass; the missing file must not re-report.
	time.Sleep(300 * time.Millisecond)

	if n := removals.Load(); n != 1 {
		t.Errorf("removal reported %d times, want exactly once", n)
	}
}

func TestWatcherDetectsFileReturning(t *testing.T) {
	path := writeGraphFile(t, "v1")

	w, err := NewWatcher(path,
		WithForcePoll(true),
		WithPollInterval(25*time.Millisecond),
		WithDebounceDuration(10*time.Millisecond),
		WithOnError(func(error) {}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(60 * time.Millisecond)
	touch(t, path, "v2")

	select {
	case <-w.Changed():
	case <-time.After(time.Second):
		t.Error("recreated file should register as a change")
	}
}

func TestWatcherStartStopLifecycle(t *testing.T) {
	w, err := NewWatcher(writeGraphFile(t, "v1"))
	if err != nil {
		t.Fatal(err)
	}

	if w.IsStarted() {
		t.Error("fresh watcher claims to be started")
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if !w.IsStarted() {
		t.Error("Start did not mark the watcher started")
	}
	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}

	w.Stop()
	if w.IsStarted() {
		t.Error("Stop did not mark the watcher stopped")
	}
	w.Stop() // repeat Stop must be a no-op
}

func TestWatcherResolvesAbsolutePath(t *testing.T) {
	path := writeGraphFile(t, "v1")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	abs, _ := filepath.Abs(path)
	if w.Path() != abs {
		t.Errorf("Path() = %s, want %s", w.Path(), abs)
	}
}

func TestWatcherPollIntervalOption(t *testing.T) {
	w, err := NewWatcher(writeGraphFile(t, "v1"), WithPollInterval(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if w.PollInterval() != time.Second {
		t.Errorf("PollInterval() = %v", w.PollInterval())
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"off", false},
		{"", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		t.Setenv("NLENS_TEST_BOOL", tt.value)
		if got := envBool("NLENS_TEST_BOOL"); got != tt.want {
			t.Errorf("envBool(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
