package media

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 750 * time.Millisecond

// Watcher reports, debounced, when the set of files in a directory changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan struct{}
	errs     chan error
	done     chan struct{}
	once     sync.Once
}

// Watch starts watching h. The watcher stops when ctx is cancelled or Close
// is called.
func Watch(ctx context.Context, h Handle, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(h.Path); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", h.Path, err)
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		watcher:  fw,
		path:     h.Path,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	go w.loop(ctx)
	return w, nil
}

// Path is the watched directory.
func (w *Watcher) Path() string {
	return w.path
}

// Changes delivers one value per settled burst of directory changes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Errors delivers watcher errors without blocking the loop.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Done is closed once the watcher goroutine has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.watcher.Close()
	})
	<-w.done
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.once.Do(func() { _ = w.watcher.Close() })
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
