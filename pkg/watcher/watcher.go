// Package watcher monitors the session's graph source file so the UI can
// reload it in place. fsnotify drives the fast path; a stat-polling loop
// covers filesystems where inotify events never arrive.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is how often the polling fallback stats the file.
const DefaultPollInterval = 2 * time.Second

var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounceDuration sets how long to wait after the last event before
// reporting a change. Editors often write a file several times in a burst.
func WithDebounceDuration(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounceDuration = d }
}

// WithPollInterval sets the stat interval of the polling fallback.
func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithOnChange sets a callback fired on each debounced change, in addition
// to the Changed channel.
func WithOnChange(fn func()) WatcherOption {
	return func(w *Watcher) { w.onChange = fn }
}

// WithOnError sets the callback for watch errors, including file removal.
func WithOnError(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onError = fn }
}

// WithForcePoll skips fsnotify entirely. NLENS_FORCE_POLL=1 does the same
// from the environment.
func WithForcePoll(force bool) WatcherOption {
	return func(w *Watcher) { w.forcePoll = force }
}

// fileState is the stat snapshot the polling loop compares against. A zero
// mtime means the file did not exist at the last check.
type fileState struct {
	mtime time.Time
	size  int64
}

// Watcher reports changes to a single file. One Watcher watches one path for
// the lifetime of the session.
type Watcher struct {
	path             string
	debounceDuration time.Duration
	pollInterval     time.Duration
	onChange         func()
	onError          func(error)
	forcePoll        bool

	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	polling   bool
	last      fileState

	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	mu       sync.RWMutex
	changeCh chan struct{}
}

// NewWatcher creates a watcher for the given path. The path is resolved to
// an absolute one immediately so later chdirs cannot retarget the watch.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:             abs,
		debounceDuration: DefaultDebounceDuration,
		pollInterval:     DefaultPollInterval,
		onChange:         func() {},
		onError:          func(error) {},
		changeCh:         make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = NewDebouncer(w.debounceDuration)
	return w, nil
}

// Start begins watching. A missing file is not an error; the watch fires
// once the file appears.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())

	if info, err := os.Stat(w.path); err != nil {
		if os.IsPermission(err) {
			return ErrPermission
		}
		w.last = fileState{}
	} else {
		w.last = fileState{mtime: info.ModTime(), size: info.Size()}
	}

	w.polling = true
	if !w.forcePoll && !envBool("NLENS_FORCE_POLL") {
		if fsw, err := fsnotify.NewWatcher(); err == nil {
			// Watch the parent directory, not the file: atomic saves
			// (write-temp-then-rename) replace the inode and would orphan a
			// direct file watch.
			if err := fsw.Add(filepath.Dir(w.path)); err != nil {
				fsw.Close()
			} else {
				w.fsWatcher = fsw
				w.polling = false
				go w.runFsnotify()
			}
		}
	}
	if w.polling {
		go w.runPolling()
	}

	w.started = true
	return nil
}

// Stop ends the watch. The Changed channel is left open: closing it would
// race the notify path, and Stop only runs at session teardown anyway.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
		w.fsWatcher = nil
	}
	w.debouncer.Cancel()
	w.started = false
}

// IsPolling reports whether the stat-polling fallback is active.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.polling
}

// IsStarted reports whether the watch is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// Changed returns the channel that receives one token per debounced change.
// The channel has capacity one; coalesced changes are the point.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string {
	return w.path
}

// PollInterval returns the configured fallback stat interval.
func (w *Watcher) PollInterval() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pollInterval
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

func (w *Watcher) runFsnotify() {
	base := filepath.Base(w.path)

	// Snapshot the channels under the lock; Stop nils fsWatcher.
	w.mu.RLock()
	if w.fsWatcher == nil {
		w.mu.RUnlock()
		return
	}
	events, errs := w.fsWatcher.Events, w.fsWatcher.Errors
	w.mu.RUnlock()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			// The directory watch sees every sibling; drop the rest.
			if filepath.Base(event.Name) != base {
				continue
			}
			switch {
			case event.Op&fsnotify.Remove != 0:
				w.onError(ErrFileRemoved)
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				w.debouncer.Trigger(w.notifyChange)
			}

		case err, ok := <-errs:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) runPolling() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.pollOnce()
		}
	}
}

func (w *Watcher) pollOnce() {
	info, err := os.Stat(w.path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			// Removal is only news if the file was there last time. Zeroing
			// the snapshot keeps the report to one per disappearance and
			// makes the file's return register as a change.
			w.mu.Lock()
			existed := !w.last.mtime.IsZero()
			w.last = fileState{}
			w.mu.Unlock()
			if existed {
				w.onError(ErrFileRemoved)
			}
		case os.IsPermission(err):
			w.onError(ErrPermission)
		default:
			w.onError(err)
		}
		return
	}

	current := fileState{mtime: info.ModTime(), size: info.Size()}
	w.mu.Lock()
	changed := current.mtime.After(w.last.mtime) || current.size != w.last.size
	if changed {
		w.last = current
	}
	w.mu.Unlock()

	if changed {
		w.debouncer.Trigger(w.notifyChange)
	}
}

// notifyChange fires the callback and signals the channel without blocking:
// an unconsumed token already means "reload pending".
func (w *Watcher) notifyChange() {
	w.mu.RLock()
	started := w.started
	w.mu.RUnlock()
	if !started {
		// Debounce timers can outlive Stop by a tick; the callback is
		// idempotent so this check is only a courtesy.
		return
	}

	w.onChange()

	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}
