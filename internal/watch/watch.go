// Package watch polls a file for changes and reruns an action once the
// file has been quiet for a debounce window. The serve command uses it to
// reconvert a snapshot whenever the CAD side exports a new one.
//
//	w := watch.New(watch.FileVersion("drawing.yaml"), watch.Options{Debounce: 300 * time.Millisecond})
//	go w.OnChange(ctx, reconvert)
package watch

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/scenesync"
)

// Detector returns a version token. Two calls returning different values
// mean the watched resource changed.
type Detector func(ctx context.Context) (int64, error)

// FileVersion returns a Detector keyed on the modification time and size
// of the file at path.
func FileVersion(path string) Detector {
	return func(context.Context) (int64, error) {
		info, err := os.Stat(path)
		if err != nil {
			return 0, err
		}
		return info.ModTime().UnixNano() ^ info.Size()<<1, nil
	}
}

// Options tunes the watcher.
type Options struct {
	// Interval is the polling frequency. Default: 500ms.
	Interval time.Duration
	// Debounce is the quiet period after a change before the action
	// fires. Further changes restart it. 0 fires immediately.
	Debounce time.Duration
	// Logger defaults to scenesync.Logger().
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Interval <= 0 {
		o.Interval = 500 * time.Millisecond
	}
	if o.Logger == nil {
		o.Logger = scenesync.Logger()
	}
}

// Stats are point-in-time counters.
type Stats struct {
	Checks          int64         `json:"checks"`
	ChangesDetected int64         `json:"changes_detected"`
	Errors          int64         `json:"errors"`
	Reloads         int64         `json:"reloads"`
	AvgReloadTime   time.Duration `json:"avg_reload_time"`
}

// Watcher runs an action when its detector reports a new version.
// It is safe for concurrent use.
type Watcher struct {
	detect Detector
	opts   Options

	// processed counts successful actions; WaitForReloads blocks on it.
	processed atomic.Int64
	version   atomic.Int64
	mu        sync.Mutex
	cond      *sync.Cond

	checks   atomic.Int64
	changes  atomic.Int64
	errors   atomic.Int64
	reloadNs atomic.Int64
}

// New creates a Watcher. Call OnChange to start the loop.
func New(detect Detector, opts Options) *Watcher {
	opts.defaults()
	w := &Watcher{detect: detect, opts: opts}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Stats returns the current counters.
func (w *Watcher) Stats() Stats {
	s := Stats{
		Checks:          w.checks.Load(),
		ChangesDetected: w.changes.Load(),
		Errors:          w.errors.Load(),
		Reloads:         w.processed.Load(),
	}
	if s.Reloads > 0 {
		s.AvgReloadTime = time.Duration(w.reloadNs.Load() / s.Reloads)
	}
	return s
}

// OnChange blocks until ctx is cancelled, polling at opts.Interval. The
// version seen at start is the baseline and does not trigger action.
//
// If action returns an error the version is not advanced, so the action
// is retried on the next poll.
func (w *Watcher) OnChange(ctx context.Context, action func(ctx context.Context) error) {
	log := w.opts.Logger

	if v, err := w.detect(ctx); err != nil {
		log.Warn("watch: initial version check failed", "err", err)
	} else {
		w.version.Store(v)
	}

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	var (
		debounce *time.Timer
		fireCh   <-chan time.Time
		pending  int64
		waiting  bool
	)

	log.Info("watch: started", "interval", w.opts.Interval, "debounce", w.opts.Debounce)
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			log.Info("watch: stopped")
			return

		case <-ticker.C:
			w.checks.Add(1)
			cur, err := w.detect(ctx)
			if err != nil {
				w.errors.Add(1)
				log.Warn("watch: version check failed", "err", err)
				continue
			}
			if cur == w.version.Load() || (waiting && cur == pending) {
				continue
			}
			w.changes.Add(1)
			pending, waiting = cur, true

			if w.opts.Debounce <= 0 {
				w.fire(ctx, action, pending)
				waiting = false
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.NewTimer(w.opts.Debounce)
			fireCh = debounce.C
			log.Debug("watch: change detected, debouncing", "version", cur)

		case <-fireCh:
			fireCh = nil
			if waiting {
				w.fire(ctx, action, pending)
				waiting = false
			}
		}
	}
}

// WaitForReloads blocks until at least n actions have completed
// successfully, or ctx is done.
func (w *Watcher) WaitForReloads(ctx context.Context, n int64) error {
	if w.processed.Load() >= n {
		return nil
	}

	stop := context.AfterFunc(ctx, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.cond.Broadcast()
	})
	defer stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	for w.processed.Load() < n {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.cond.Wait()
	}
	return nil
}

func (w *Watcher) fire(ctx context.Context, action func(ctx context.Context) error, ver int64) {
	log := w.opts.Logger
	start := time.Now()
	if err := action(ctx); err != nil {
		w.errors.Add(1)
		log.Error("watch: action failed", "err", err)
		return
	}
	elapsed := time.Since(start)
	w.reloadNs.Add(int64(elapsed))
	w.version.Store(ver)

	w.mu.Lock()
	w.processed.Add(1)
	w.cond.Broadcast()
	w.mu.Unlock()
	log.Info("watch: action complete", "duration", elapsed)
}
