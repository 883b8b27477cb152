package snapshot

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors a snapshot file and invokes a callback when it is
// rewritten. Events are debounced because exporters and editors often
// produce several writes per save, and the parent directory is watched
// rather than the file itself so atomic rename-over-replace still fires.
type Watcher struct {
	fw      *fsnotify.Watcher
	logger  *zap.Logger
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a snapshot file watcher.
func NewWatcher(logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:     fw,
		logger: logger.Named("watcher"),
		done:   make(chan struct{}),
	}, nil
}

// Watch starts monitoring the snapshot file at path. onChange runs on the
// watcher goroutine; callers that rebuild indexes should keep it fast or
// dispatch to their own goroutine.
func (w *Watcher) Watch(path string, onChange func()) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.fw.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	var dmu sync.Mutex
	var last time.Time
	const debounceInterval = 200 * time.Millisecond

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				dmu.Lock()
				now := time.Now()
				if now.Sub(last) < debounceInterval {
					dmu.Unlock()
					continue
				}
				last = now
				dmu.Unlock()

				w.logger.Info("Snapshot file changed", zap.String("path", absPath))
				onChange()

			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("Watcher error", zap.Error(err))

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases resources. Safe to call multiple
// times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
