package imagelist

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/swayview/swayview/internal/imageio"
)

// watcher wraps an fsnotify.Watcher monitoring each parent directory of
// the list's loaded entries, per section 4.4's FS-monitor.
type watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the parent directory of every currently loaded
// entry and returns a stop function. On create of a matching file, the
// entry is added and the list re-ordered; on remove, the entry is
// removed and renumbered; on write, the bound handler is notified so
// the viewer can reload. The handler runs under the exclusive lock.
func (l *List) Watch() (stop func(), err error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	l.mu.RLock()
	dirs := make(map[string]struct{})
	for _, img := range l.entries {
		dirs[img.ParentDir] = struct{}{}
	}
	l.mu.RUnlock()
	for dir := range dirs {
		fsw.Add(dir) //nolint:errcheck // a missing directory just isn't watched
	}

	w := &watcher{fs: fsw, done: make(chan struct{})}
	l.mu.Lock()
	l.watcher = w
	l.mu.Unlock()

	go l.watchLoop(w)

	return func() {
		close(w.done)
		fsw.Close()
	}, nil
}

func (l *List) watchLoop(w *watcher) {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			l.handleFSEvent(ev)
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

func (l *List) handleFSEvent(ev fsnotify.Event) {
	path := filepath.Clean(ev.Name)

	switch {
	case ev.Op&fsnotify.Create != 0:
		img, added := l.Add(path, true)
		if added && l.handler != nil {
			l.mu.Lock()
			l.handler(Event{Kind: EventCreate, Image: img})
			l.mu.Unlock()
		}
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		l.mu.Lock()
		i, ok := l.index[path]
		l.mu.Unlock()
		if !ok {
			return
		}
		l.mu.RLock()
		entry := l.entries[i]
		l.mu.RUnlock()
		l.Remove(entry, true)
		if l.handler != nil {
			l.mu.Lock()
			l.handler(Event{Kind: EventRemove, Image: entry})
			l.mu.Unlock()
		}
	case ev.Op&fsnotify.Write != 0:
		l.mu.RLock()
		i, ok := l.index[path]
		var entry *imageio.Image
		if ok {
			entry = l.entries[i]
		}
		l.mu.RUnlock()
		if ok && l.handler != nil {
			l.mu.Lock()
			l.handler(Event{Kind: EventModify, Image: entry})
			l.mu.Unlock()
		}
	}
}
