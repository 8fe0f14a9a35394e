package filestore

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for further events before
// reporting a change.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to the data file made by any process.
//
// The parent directory is watched rather than the file itself: the item store
// replaces the file by rename, which would drop a watch held on the old inode.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	onChange  func()
	debounce  time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	stop    chan struct{}
	done    chan struct{}
	stopped bool
}

// NewWatcher starts watching the data file at path. onChange is invoked from
// a background goroutine, at most once per debounce window.
func NewWatcher(path string, debounce time.Duration, onChange func(), logger *slog.Logger) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback cannot be nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	clean := filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(clean)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch data directory: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		path:      clean,
		onChange:  onChange,
		debounce:  debounce,
		logger:    logger.With(slog.String("component", "data_file_watcher")),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	go w.run()
	return w, nil
}

// run processes file system events until Stop is called.
func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			w.logger.Debug("data file event", slog.String("op", event.Op.String()))
			w.schedule()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("data file watcher error", slog.String("error", err.Error()))
		}
	}
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stopped := w.stopped
		w.mu.Unlock()
		if !stopped {
			w.onChange()
		}
	})
}

// Stop shuts down the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.stop)
	err := w.fsWatcher.Close()
	<-w.done
	return err
}
