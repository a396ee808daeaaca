package supplier

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/codescope/internal/config"
)

// Watcher monitors a project directory and invokes a callback after file
// changes settle. Events are debounced so bulk operations (branch switches,
// formatter runs) trigger a single re-analysis.
type Watcher struct {
	root     string
	cfg      *config.Config
	debounce time.Duration
	onChange func()
}

// NewWatcher creates a watcher that calls onChange after changes settle.
func NewWatcher(root string, cfg *config.Config, onChange func()) *Watcher {
	debounce := time.Duration(cfg.Analysis.WatchDebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = time.Duration(config.DefaultWatchDebounceMs) * time.Millisecond
	}
	return &Watcher{root: root, cfg: cfg, debounce: debounce, onChange: onChange}
}

// Run watches until the context is cancelled. Directories created while
// watching are added on the fly; excluded directories are never watched.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := w.addRecursive(fsw, w.root); err != nil {
		return err
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-fire:
			w.onChange()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = w.addRecursive(fsw, event.Name)
				}
			}
			if w.relevant(event.Name) {
				schedule()
			}

		case _, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			// Watch errors are transient; keep going.
		}
	}
}

// addRecursive registers root and all non-excluded subdirectories.
func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && excludedDir(rel) {
			return fs.SkipDir
		}
		_ = fsw.Add(p)
		return nil
	})
}

// relevant reports whether a change to the path should trigger re-analysis.
func (w *Watcher) relevant(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, supported := range w.cfg.Analysis.Extensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// excludedDir prunes directory names that are never worth watching.
func excludedDir(rel string) bool {
	base := filepath.Base(rel)
	switch base {
	case "node_modules", ".git", "dist", "build", "coverage":
		return true
	}
	return false
}
