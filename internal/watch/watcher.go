// Package watch reports JavaScript family files that change under a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/phyten/jscomments/internal/detect"
	"github.com/phyten/jscomments/internal/engine"
)

type Options struct {
	Debounce time.Duration
	// ExcludeTypical skips vendor, node_modules and build output directories.
	ExcludeTypical bool
	// OnChange receives slash separated paths relative to the root, sorted.
	// Removed files are included; callers find out by stat.
	OnChange func(paths []string)
	Logger   *slog.Logger
}

type Watcher struct {
	rootAbs   string
	opts      Options
	log       *slog.Logger
	debouncer *Debouncer

	fsw       *fsnotify.Watcher
	closeOnce sync.Once
	closed    chan struct{}
}

// New starts watching every directory under root. Run must be called to
// deliver events.
func New(root string, opts Options) (*Watcher, error) {
	if opts.OnChange == nil {
		return nil, errors.New("watch: OnChange is required")
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(rootAbs)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	w := &Watcher{
		rootAbs:   filepath.Clean(rootAbs),
		opts:      opts,
		log:       log,
		debouncer: NewDebouncer(opts.Debounce, opts.OnChange),
		fsw:       fsw,
		closed:    make(chan struct{}),
	}
	if err := w.addDirRecursive(w.rootAbs, false); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closed)
		w.debouncer.Stop()
		err = w.fsw.Close()
	})
	return err
}

// Run delivers change batches until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.closed:
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.log.Warn("watch event queue overflowed; some changes were missed")
				continue
			}
			return err
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	rel, ok := w.toRel(ev.Name)
	if !ok {
		return
	}
	if ev.Has(fsnotify.Create) {
		if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
			if err := w.addDirRecursive(ev.Name, true); err != nil {
				w.log.Debug("cannot watch new directory", "dir", rel, "err", err)
			}
			return
		}
	}
	if !w.wanted(rel) {
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
		w.debouncer.Push(rel)
	}
}

func (w *Watcher) wanted(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if engine.SkipDir(part, w.opts.ExcludeTypical) {
			return false
		}
	}
	if w.opts.ExcludeTypical && strings.Contains(filepath.Base(rel), ".min.") {
		return false
	}
	return detect.IsSourcePath(rel)
}

// addDirRecursive watches absDir and its subdirectories. With pushFiles, the
// sources already inside are reported, since they may have been written
// before the watch was in place.
func (w *Watcher) addDirRecursive(absDir string, pushFiles bool) error {
	return filepath.WalkDir(filepath.Clean(absDir), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if rel, ok := w.toRel(p); ok && pushFiles && w.wanted(rel) {
				w.debouncer.Push(rel)
			}
			return nil
		}
		if p != w.rootAbs && engine.SkipDir(d.Name(), w.opts.ExcludeTypical) {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
}

func (w *Watcher) toRel(abs string) (string, bool) {
	if strings.TrimSpace(abs) == "" {
		return "", false
	}
	rel, err := filepath.Rel(w.rootAbs, filepath.Clean(abs))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
