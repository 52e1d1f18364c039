package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/billie-coop/fr0st/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// FileWatcher monitors one file with debouncing.
type FileWatcher struct {
	path          string
	debounceDelay time.Duration

	// Debouncing state
	timer   *time.Timer
	timerMu sync.Mutex

	// Callback when changes have settled
	onChange func(path string)

	fs *fsnotify.Watcher

	// Lifecycle
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for path. onChange is called with the path
// once no event has arrived for debounceDelay.
func NewWatcher(path string, debounceDelay time.Duration, onChange func(path string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &FileWatcher{
		path:          abs,
		debounceDelay: debounceDelay,
		onChange:      onChange,
		fs:            fs,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched
func (w *FileWatcher) Path() string {
	return w.path
}

// Start begins forwarding file system events. Call it once.
func (w *FileWatcher) Start() {
	go w.watch()
}

func (w *FileWatcher) watch() {
	defer close(w.done)

	log := logging.Logger().With("path", w.path)
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				log.Debug("flame file changed", "op", event.Op.String())
				w.FileChanged()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn("watcher error", "error", err)
		}
	}
}

// relevant keeps writes and creates of the watched file. A Remove is
// followed by a Create when an editor replaces the file.
func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// FileChanged notifies the watcher of a change. Multiple rapid calls are
// debounced into a single onChange callback.
func (w *FileWatcher) FileChanged() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.ctx.Err() != nil {
		return
	}

	// Reset timer
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.processPending)
}

// processPending is called after the debounce delay
func (w *FileWatcher) processPending() {
	w.timerMu.Lock()
	w.timer = nil
	w.timerMu.Unlock()

	if w.ctx.Err() == nil && w.onChange != nil {
		w.onChange(w.path)
	}
}

// Stop shuts down the watcher and waits for the event goroutine. A pending
// callback is dropped.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() {
		w.cancel()

		w.timerMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.timerMu.Unlock()

		w.fs.Close()
	})
}

// Wait blocks until the event goroutine started by Start has exited.
func (w *FileWatcher) Wait() {
	<-w.done
}
