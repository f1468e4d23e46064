// Package reload keeps a Snapshot in step with a results table on disk.
package reload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cacheplot/sweep"
)

// Watcher reloads a results table file whenever it is written.
type Watcher struct {
	path  string
	opts  sweep.ParseOptions
	cache *sweep.Cache

	current *sweep.Snapshot
}

// New creates a Watcher for path. A nil cache gets a private one.
func New(path string, opts sweep.ParseOptions, cache *sweep.Cache) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("table path must not be empty")
	}
	if cache == nil {
		c, err := sweep.NewCache(sweep.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		cache = c
	}
	return &Watcher{path: filepath.Clean(path), opts: opts, cache: cache}, nil
}

// Current returns the last snapshot handed to onLoad, or nil before the
// first successful load. Only meaningful from within onLoad or after Run
// returns.
func (w *Watcher) Current() *sweep.Snapshot {
	return w.current
}

// Run loads the table, starts watching it, and calls onLoad with the initial
// snapshot and again after every change that yields a new, well-formed
// table. A change that fails to parse is logged and the previous snapshot
// stays current. Run returns nil when ctx is done.
//
// The initial load must succeed; its error is returned as is.
func (w *Watcher) Run(ctx context.Context, onLoad func(*sweep.Snapshot)) error {
	snap, err := w.load()
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed creating file watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	// Watch the directory: editors often replace the file instead of
	// writing it in place, which drops a watch on the file itself.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}

	w.current = snap
	onLoad(snap)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload(onLoad)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", w.path, err)
		}
	}
}

func (w *Watcher) reload(onLoad func(*sweep.Snapshot)) {
	snap, err := w.load()
	if err != nil {
		var perr *sweep.ParseError
		if errors.As(err, &perr) {
			logrus.Warnf("reload of %s rejected, keeping snapshot %s: %v", w.path, w.current.ID(), err)
		} else {
			logrus.Warnf("reload of %s failed, keeping snapshot %s: %v", w.path, w.current.ID(), err)
		}
		return
	}
	if snap == w.current {
		logrus.Debugf("%s unchanged, skipping reload", w.path)
		return
	}
	logrus.Infof("reloaded %s: snapshot %s, %d records", w.path, snap.ID(), snap.Len())
	w.current = snap
	onLoad(snap)
}

func (w *Watcher) load() (*sweep.Snapshot, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("reading results table: %w", err)
	}
	return w.cache.Load(string(data), w.opts)
}
