package preferences

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/couchcryptid/fix-display-service/internal/observability"
)

// settleDelay gives writers time to finish before the profile is re-read.
const settleDelay = 10 * time.Millisecond

// Watcher reloads a profile into a Store whenever the file changes.
type Watcher struct {
	path    string
	store   *Store
	logger  *slog.Logger
	metrics *observability.Metrics

	inner    *fsnotify.Watcher
	reloaded chan struct{}
	done     chan struct{}
}

// NewWatcher starts watching path. The parent directory is watched so
// editors that replace the file by rename are still picked up.
func NewWatcher(path string, store *Store, logger *slog.Logger, metrics *observability.Metrics) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := inner.Add(filepath.Dir(abs)); err != nil {
		inner.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		store:    store,
		logger:   logger,
		metrics:  metrics,
		inner:    inner,
		reloaded: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	go w.run()
	return w, nil
}

// Close stops the watcher and waits for it to exit.
func (w *Watcher) Close() error {
	err := w.inner.Close()
	<-w.done
	return err
}

// Reloaded receives a value after every reload attempt.
func (w *Watcher) Reloaded() <-chan struct{} {
	return w.reloaded
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.inner.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			time.Sleep(settleDelay)
			w.reload()

		case err, ok := <-w.inner.Errors:
			if !ok {
				return
			}
			w.logger.Error("preferences watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	if err := w.store.Reload(w.path); err != nil {
		w.logger.Warn("preferences reload rejected, keeping previous profile", "error", err, "path", w.path)
		w.metrics.PreferenceReloads.WithLabelValues("rejected").Inc()
	} else {
		p := w.store.Preferences()
		w.logger.Info("preferences reloaded",
			"path", w.path,
			"units", p.UnitSystem.String(),
			"bearing", p.BearingMode.String(),
		)
		w.metrics.PreferenceReloads.WithLabelValues("applied").Inc()
	}

	select {
	case w.reloaded <- struct{}{}:
	default:
	}
}
