package editor

import (
	"path/filepath"
	"sync"

	"github.com/rjeczalik/notify"

	"github.com/justy989/ce/celog"
)

// Watcher maps watched filesystem paths to the callbacks fired when
// they change, the same shape as the teacher's backend/watch.Watcher,
// reimplemented against the dependency actually pinned in go.mod
// instead of the stale import the teacher's checked-in file carries.
type Watcher struct {
	events chan notify.EventInfo

	lock    sync.Mutex
	watched map[string][]func()
	paths   []string // paths notify.Watch has been called on directly
}

// NewWatcher returns a Watcher with an empty event channel and watch
// table. It never returns nil and sets up no filesystem watch itself.
func NewWatcher() *Watcher {
	w := &Watcher{
		events:  make(chan notify.EventInfo, 32),
		watched: make(map[string][]func()),
	}
	return w
}

// Watch registers action to run whenever path changes. A path that is
// a file is watched by watching its parent directory and filtering
// events down to that one name, since most filesystem notifiers (and
// editors that replace-via-rename on save) only reliably fire
// directory-level events.
func (w *Watcher) Watch(path string, action func()) {
	if action == nil {
		celog.Error("no action for watching %s", path)
		return
	}
	w.lock.Lock()
	defer w.lock.Unlock()

	w.watched[path] = append(w.watched[path], action)

	dir := filepath.Dir(path)
	if exist(w.paths, dir) {
		return
	}
	if err := notify.Watch(dir, w.events, notify.All); err != nil {
		celog.Error("could not watch %s: %s", dir, err)
		return
	}
	w.paths = append(w.paths, dir)
}

// UnWatch removes path's registered actions. The underlying directory
// watch is left in place; Stop tears down everything at once.
func (w *Watcher) UnWatch(path string) {
	w.lock.Lock()
	defer w.lock.Unlock()
	delete(w.watched, path)
}

// Observe blocks, dispatching filesystem events to registered
// callbacks until Stop is called.
func (w *Watcher) Observe() {
	for ev := range w.events {
		w.lock.Lock()
		actions, ok := w.watched[ev.Path()]
		if !ok {
			w.lock.Unlock()
			continue
		}
		fired := append([]func(){}, actions...)
		w.lock.Unlock()
		for _, action := range fired {
			action()
		}
	}
}

// Stop unwatches every directory and closes the event channel,
// ending a goroutine blocked in Observe.
func (w *Watcher) Stop() {
	notify.Stop(w.events)
	close(w.events)
}

func exist(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}
