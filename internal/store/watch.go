package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports keys whose files change on disk, including writes made
// by other processes.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]string // file name -> key
	events  chan string
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the given keys of ds.
func Watch(ds *DiskStore, keys ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(ds.Dir()); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", ds.Dir(), err)
	}

	w := &Watcher{
		watcher: fw,
		files:   make(map[string]string, len(keys)),
		events:  make(chan string, 8),
		done:    make(chan struct{}),
	}
	for _, k := range keys {
		w.files[fileName(k)] = k
	}

	go w.loop()
	return w, nil
}

// Events delivers the key of every changed file. It is closed by Close.
func (w *Watcher) Events() <-chan string {
	return w.events
}

func (w *Watcher) loop() {
	defer close(w.events)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			key, ok := w.files[filepath.Base(event.Name)]
			if !ok {
				continue
			}
			log.Debug("Store key changed", "key", key, "op", event.Op.String())
			select {
			case w.events <- key:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("Store watcher error", "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
