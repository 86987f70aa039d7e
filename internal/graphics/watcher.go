package graphics

import (
	"path/filepath"
	"sort"
	"sync"

	"forgelight/internal/logging"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watcher reports shader source files that changed on disk. Events are
// collected in the background and drained by the render thread.
type Watcher struct {
	fs *fsnotify.Watcher

	mu      sync.Mutex
	files   map[string]bool
	dirs    map[string]bool
	pending map[string]bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher starts an empty watcher
func NewWatcher() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}
	w := &Watcher{
		fs:      fs,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		pending: make(map[string]bool),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Watch adds files to the watch list. The containing directories are
// watched so that editors which replace files on save are still seen.
func (w *Watcher) Watch(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.Wrapf(err, "watch %q", p)
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			return errors.Wrapf(err, "watch %q", dir)
		}
		w.dirs[dir] = true
	}
	return nil
}

// Pending returns the watched files changed since the last call, sorted.
// It never blocks.
func (w *Watcher) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.pending))
	for p := range w.pending {
		out = append(out, p)
	}
	clear(w.pending)
	sort.Strings(out)
	return out
}

// Close stops the watcher
func (w *Watcher) Close() error {
	close(w.done)
	w.wg.Wait()
	return w.fs.Close()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil {
				continue
			}
			w.mu.Lock()
			if w.files[abs] {
				w.pending[abs] = true
			}
			w.mu.Unlock()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Warn("file watcher", "err", err)

		case <-w.done:
			return
		}
	}
}

// ReloadChanged rebuilds every program that uses one of the changed files.
// Failed programs keep running their previous build.
func ReloadChanged(changed []string, programs ...*Program) {
	if len(changed) == 0 {
		return
	}
	set := make(map[string]bool, len(changed))
	for _, c := range changed {
		set[c] = true
	}
	for _, p := range programs {
		if !usesAny(p, set) {
			continue
		}
		if err := p.Reload(); err != nil {
			logging.Error("shader reload failed", "sources", p.Sources(), "err", err)
			continue
		}
		logging.Info("shader reloaded", "sources", p.Sources())
	}
}

func usesAny(p *Program, set map[string]bool) bool {
	for _, s := range p.Sources() {
		abs, err := filepath.Abs(s)
		if err == nil && set[abs] {
			return true
		}
	}
	return false
}
