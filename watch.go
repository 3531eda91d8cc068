package modelimport

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchFunc receives the reload outcome for a watched model file.
type WatchFunc func(path string, model *Model, err error)

// Watcher reloads watched model files when they or their companion
// files (material libraries, textures in the same directory) change.
// Event bursts are coalesced by a debounce window; the session cache
// entry is invalidated before each reload.
type Watcher struct {
	im *Importer
	fw *fsnotify.Watcher
	fn WatchFunc

	mu       sync.Mutex
	files    map[string]bool
	dirs     map[string]bool
	timers   map[string]*time.Timer
	debounce time.Duration
	closed   bool

	events   atomic.Int64
	reloads  atomic.Int64
	failures atomic.Int64
}

// Watch starts a watcher delivering reload results to fn. The caller
// owns the watcher and must Close it.
func (im *Importer) Watch(fn WatchFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("modelimport: watch: %w", err)
	}
	w := &Watcher{
		im:       im,
		fw:       fw,
		fn:       fn,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		debounce: 250 * time.Millisecond,
	}
	go w.loop()
	return w, nil
}

// SetDebounce adjusts the quiet window that coalesces event bursts.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounce = d
	w.mu.Unlock()
}

// Add registers a model file for reload on change. Its directory is
// watched so edits to companion files trigger a reload too.
func (w *Watcher) Add(path string) error {
	abs := absPath(path)
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[abs] = true
	if !w.dirs[dir] {
		if err := w.fw.Add(dir); err != nil {
			return fmt.Errorf("modelimport: watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	return nil
}

// Remove stops watching a model file. The directory watch stays for
// other registered files.
func (w *Watcher) Remove(path string) {
	abs := absPath(path)
	w.mu.Lock()
	delete(w.files, abs)
	if t, ok := w.timers[abs]; ok {
		t.Stop()
		delete(w.timers, abs)
	}
	w.mu.Unlock()
}

// Close stops the watcher and drops all pending reloads.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.mu.Unlock()
	return w.fw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Warningf("watch: %v", err)
		}
	}
}

// handle maps one filesystem event onto the model files it affects.
// Chmod-only events are ignored.
func (w *Watcher) handle(ev fsnotify.Event) {
	relevant := fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename
	if ev.Op&relevant == 0 {
		return
	}
	w.events.Add(1)

	abs := absPath(ev.Name)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	switch {
	case w.files[abs]:
		w.schedule(abs)
	case companionExt(filepath.Ext(abs)):
		dir := filepath.Dir(abs)
		for f := range w.files {
			if filepath.Dir(f) == dir {
				w.schedule(f)
			}
		}
	}
}

// schedule arms the debounce timer for path. Caller holds mu.
func (w *Watcher) schedule(path string) {
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() { w.reload(path) })
}

func (w *Watcher) reload(path string) {
	w.mu.Lock()
	delete(w.timers, path)
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	w.im.Invalidate(path)
	model, err := w.im.Load(path)
	if err != nil {
		w.failures.Add(1)
		log.Warningf("reload %s: %v", path, err)
	} else {
		w.reloads.Add(1)
		log.Infof("reloaded %s", filepath.Base(path))
	}
	if w.fn != nil {
		w.fn(path, model, err)
	}
}

// companionExt reports whether files with this extension feed into a
// model import.
func companionExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mtl", ".png", ".jpg", ".jpeg", ".bmp", ".tga", ".dds":
		return true
	}
	return false
}

// WatchStats count watcher activity since start.
type WatchStats struct {
	Events   int64
	Reloads  int64
	Failures int64
}

// Stats returns a snapshot of the watcher counters.
func (w *Watcher) Stats() WatchStats {
	return WatchStats{
		Events:   w.events.Load(),
		Reloads:  w.reloads.Load(),
		Failures: w.failures.Load(),
	}
}
