package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"datahunt/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Handler is called once per settled file dropped into the watched folder.
type Handler func(ctx context.Context, path string)

// Watcher uploads files dropped into a folder. Create and Write events are
// debounced per path so a file still being copied is handled once, after it
// stops changing.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	dir         string
	handle      Handler
	debounceMap map[string]time.Time
	debounceDur time.Duration
	tick        time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	wg          sync.WaitGroup
}

// NewWatcher creates a watcher for dir. handle runs on its own goroutine per
// file; Stop waits for in-flight handlers.
func NewWatcher(dir string, debounce time.Duration, handle Handler) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		watcher:     fw,
		dir:         dir,
		handle:      handle,
		debounceMap: make(map[string]time.Time),
		debounceDur: debounce,
		tick:        debounce / 5,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	err := os.MkdirAll(w.dir, 0755)
	if err == nil {
		err = w.watcher.Add(w.dir)
	}
	if err != nil {
		// Stop is a no-op until Start succeeds.
		if cerr := w.watcher.Close(); cerr != nil {
			logging.WatchError("error closing watcher: %v", cerr)
		}
		return err
	}
	w.running = true
	logging.Watch("watching drop folder: %s", w.dir)

	go w.run(ctx)
	return nil
}

// Stop ends the watch loop, waits for running handlers and closes the
// underlying watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.wg.Wait()

	if err := w.watcher.Close(); err != nil {
		logging.WatchError("error closing watcher: %v", err)
	}
	logging.Watch("watcher stopped")
}

// Done is closed when the watch loop exits.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.WatchError("watcher error: %v", err)
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || !Accepted(name, "") {
		return
	}
	logging.WatchDebug("%s %s", event.Op, event.Name)

	w.mu.Lock()
	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

// flush hands every path that has been quiet for debounceDur to the handler.
func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()
	var ready []string

	w.mu.Lock()
	for path, last := range w.debounceMap {
		if now.Sub(last) >= w.debounceDur {
			ready = append(ready, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		w.wg.Add(1)
		go func(p string) {
			defer w.wg.Done()
			w.handle(ctx, p)
		}(path)
	}
}
