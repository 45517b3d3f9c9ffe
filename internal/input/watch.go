package input

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// RemovalWatcher reports when a device node disappears, e.g. when a USB
// keyboard is unplugged while a read is still blocked on it.
type RemovalWatcher struct {
	w      *fsnotify.Watcher
	path   string
	logger *slog.Logger
	once   sync.Once
	done   chan struct{}
}

// WatchRemoval watches the directory containing path and calls onRemove
// once when path is removed or renamed away.
func WatchRemoval(path string, logger *slog.Logger, onRemove func()) (*RemovalWatcher, error) {
	w0, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	clean := filepath.Clean(path)
	if err := w0.Add(filepath.Dir(clean)); err != nil {
		_ = w0.Close()
		return nil, err
	}
	w := &RemovalWatcher{
		w:      w0,
		path:   clean,
		logger: logger,
		done:   make(chan struct{}),
	}
	go w.eventLoop(onRemove)
	return w, nil
}

// Close stops the watcher and waits for its goroutine.
func (w *RemovalWatcher) Close() error {
	err := w.w.Close()
	<-w.done
	return err
}

func (w *RemovalWatcher) eventLoop(onRemove func()) {
	defer close(w.done)
	for {
		select {
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.logger.Warn("device watcher error", "path", w.path, "error", err)

		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.once.Do(func() {
				w.logger.Warn("input device removed", "path", w.path)
				onRemove()
			})
		}
	}
}
