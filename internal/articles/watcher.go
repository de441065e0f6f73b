package articles

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nodescape/internal/logging"
)

// Watcher reindexes articles when pages under the indexer root change.
// Bursts of events are collapsed into one reindex after a quiet period.
type Watcher struct {
	ix       *Indexer
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger

	onIndex   func(n int) // test hook
	closeOnce sync.Once
}

// NewWatcher watches the indexer root and every directory below it. The
// root is created if missing.
func NewWatcher(ix *Indexer, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	logger = logging.OrNop(logger)
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{ix: ix, watcher: fw, debounce: debounce, log: logger}

	if err := os.MkdirAll(ix.Root(), 0o755); err != nil {
		fw.Close()
		return nil, fmt.Errorf("creating %s: %w", ix.Root(), err)
	}
	if err := w.addTree(ix.Root()); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var pending bool
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				pending = true
				last = time.Now()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("article watcher error", zap.Error(err))

		case <-ticker.C:
			if !pending || time.Since(last) < w.debounce {
				continue
			}
			pending = false
			n, err := w.ix.Index(ctx)
			if err != nil {
				w.log.Error("reindexing articles", zap.Error(err))
				continue
			}
			if w.onIndex != nil {
				w.onIndex(n)
			}
		}
	}
}

// relevant reports whether ev can change the index. New directories are
// added to the watch set.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.log.Warn("watching new directory", zap.String("path", ev.Name), zap.Error(err))
			}
			return true
		}
	}
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		return true
	}
	rel, err := filepath.Rel(w.ix.Root(), ev.Name)
	if err != nil {
		return false
	}
	return w.ix.Matches(filepath.ToSlash(rel))
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() { err = w.watcher.Close() })
	return err
}
