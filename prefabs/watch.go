package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// ChangeKind tells a spec edit from a script edit.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

// Change is one debounced edit to a prefab file.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports edits to prefab specs and scenario scripts.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	filter := newReloadFilter(modTime)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok {
				continue
			}
			if !filter.accept(event.Name, time.Now()) {
				continue
			}
			select {
			case w.Events <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// reloadFilter drops bursts of events for one file, and events that leave
// the file's modification time where the last reported change saw it.
type reloadFilter struct {
	stat   func(path string) (time.Time, bool)
	last   map[string]time.Time
	stamps map[string]time.Time
}

func newReloadFilter(stat func(string) (time.Time, bool)) *reloadFilter {
	return &reloadFilter{
		stat:   stat,
		last:   make(map[string]time.Time),
		stamps: make(map[string]time.Time),
	}
}

func (f *reloadFilter) accept(path string, now time.Time) bool {
	if t, ok := f.last[path]; ok && now.Sub(t) < reloadDebounce {
		return false
	}
	mt, exists := f.stat(path)
	if prev, seen := f.stamps[path]; exists && seen && mt.Equal(prev) {
		return false
	}
	if exists {
		f.stamps[path] = mt
	} else {
		delete(f.stamps, path)
	}
	f.last[path] = now
	return true
}

func modTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangeSpec, true
	case ".tengo":
		return ChangeScript, true
	}
	return 0, false
}
