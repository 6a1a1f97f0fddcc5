package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports external modifications to the store file so the editor can
// mark its in-memory value as no longer confirmed.
type Watcher struct {
	watcher *fsnotify.Watcher
	target  string
	events  chan struct{}
}

// Watch starts watching the store's backing file. The parent directory is
// watched rather than the file itself so atomic save renames and external
// recreations are still observed.
func Watch(ctx context.Context, s *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	dir := filepath.Dir(s.Path())
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}
	w := &Watcher{
		watcher: fsw,
		target:  filepath.Base(s.Path()),
		events:  make(chan struct{}, 1),
	}
	go w.run(ctx)
	return w, nil
}

// Events delivers one signal per (debounced) burst of external changes.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Close stops watching.
func (w *Watcher) Close() error { return w.watcher.Close() }

func (w *Watcher) run(ctx context.Context) {
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case w.events <- struct{}{}:
				default:
				}
			})
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
