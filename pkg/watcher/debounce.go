package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is how long a burst of file events must be quiet
// before the change callback fires. Editors and atomic-write tools produce
// several events per save.
const DefaultDebounceDuration = 300 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback invocation.
type Debouncer struct {
	mu       sync.Mutex
	duration time.Duration
	timer    *time.Timer
}

// NewDebouncer creates a debouncer. Non-positive durations fall back to the
// default.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{duration: d}
}

// Duration returns the configured quiet period.
func (d *Debouncer) Duration() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.duration
}

// Trigger schedules fn to run after the quiet period. A trigger during the
// quiet period restarts the clock; only the last fn runs.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
