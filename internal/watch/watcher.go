// Package watch reloads an open stack when its backing file or directory
// changes on disk, built on fsnotify.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"stackview/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Debounce window: editors and capture tools often emit bursts of write
// events for a single save.
const settle = 200 * time.Millisecond

// Watcher monitors one stack path (file or sequence directory) and invokes a
// reload callback after changes settle.
type Watcher struct {
	path     string
	onChange func(path string)

	fsWatcher *fsnotify.Watcher
	stopChan  chan struct{}

	mutex   sync.Mutex
	running bool
}

// New creates a watcher that calls onChange with the watched path after the
// file at path (or any file in the directory at path) changes.
func New(path string, onChange func(path string)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// fsnotify watches directories more reliably than single files across
	// platforms; watch the parent and filter for the file itself.
	watchTarget := path
	abs, err := filepath.Abs(path)
	if err == nil {
		watchTarget = abs
	}

	w := &Watcher{
		path:      watchTarget,
		onChange:  onChange,
		fsWatcher: fsWatcher,
		stopChan:  make(chan struct{}),
	}
	if err := fsWatcher.Add(filepath.Dir(watchTarget)); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	if err := fsWatcher.Add(watchTarget); err != nil {
		// Adding the path itself fails for plain files on some platforms;
		// the parent-directory watch still covers it.
		log.Debugf("watching %s directly: %v", watchTarget, err)
	}
	return w, nil
}

// Start begins dispatching change events until Stop is called.
func (w *Watcher) Start() {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
}

func (w *Watcher) loop() {
	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			log.Debugf("change detected: %s (%s)", event.Name, event.Op)
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(settle, func() {
				w.onChange(w.path)
			})
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watcher error: %v", err)
		}
	}
}

// relevant filters events to writes/creates/renames touching the watched
// path, or anything inside it when the path is a directory.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		name = event.Name
	}
	if name == w.path {
		return true
	}
	return filepath.Dir(name) == w.path
}

// Stop halts event dispatch and releases the underlying watcher.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		w.fsWatcher.Close()
		return
	}
	w.running = false
	close(w.stopChan)
	w.fsWatcher.Close()
}
