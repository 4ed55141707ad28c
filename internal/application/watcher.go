package application

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const (
	DefaultStatusInterval = 5 * time.Second
	defaultWatchDebounce  = 250 * time.Millisecond
)

type StatusSource interface {
	Status(ctx context.Context) (Status, error)
}

// StatusWatcher polls a StatusSource on a fixed interval. Changes under the
// live directory trigger an early refresh.
type StatusWatcher struct {
	source   StatusSource
	interval time.Duration
	liveDir  string
	debounce time.Duration
	logger   *logrus.Entry
}

func NewStatusWatcher(source StatusSource, interval time.Duration, liveDir string, logger logrus.FieldLogger) *StatusWatcher {
	if interval <= 0 {
		interval = DefaultStatusInterval
	}

	return &StatusWatcher{
		source:   source,
		interval: interval,
		liveDir:  liveDir,
		debounce: defaultWatchDebounce,
		logger:   logging.Component(logger, "status-watch"),
	}
}

// Run calls onUpdate once immediately and then on every refresh until ctx is done.
func (w *StatusWatcher) Run(ctx context.Context, onUpdate func(Status, error)) error {
	events, errs, closeWatch := w.watch()
	defer closeWatch()

	refresh := func() {
		status, err := w.source.Status(ctx)
		if ctx.Err() != nil {
			return
		}
		onUpdate(status, err)
	}
	refresh()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pending = nil
			refresh()
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			w.logger.WithField("path", event.Name).Debug("live directory changed")
			if pending == nil {
				pending = time.After(w.debounce)
			}
		case <-pending:
			pending = nil
			refresh()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.logger.WithError(err).Debug("watch error")
		}
	}
}

// watch subscribes to the live directory and its parent, so deleting and
// recreating the live directory is noticed. Failures degrade to polling.
func (w *StatusWatcher) watch() (<-chan fsnotify.Event, <-chan error, func()) {
	noop := func() {}
	if w.liveDir == "" {
		return nil, nil, noop
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.WithError(err).Debug("file watching unavailable")
		return nil, nil, noop
	}

	added := 0
	for _, dir := range []string{w.liveDir, filepath.Dir(w.liveDir)} {
		if err := watcher.Add(dir); err != nil {
			w.logger.WithError(err).WithField("path", dir).Debug("cannot watch directory")
			continue
		}
		added++
	}
	if added == 0 {
		_ = watcher.Close()
		return nil, nil, noop
	}

	return watcher.Events, watcher.Errors, func() { _ = watcher.Close() }
}
