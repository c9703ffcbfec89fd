// Package watch reloads the content store when files under the content
// directory change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ziadkadry99/bookshell/internal/content"
	"github.com/ziadkadry99/bookshell/internal/state"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before reloading.
const DefaultDebounce = 300 * time.Millisecond

// Loader loads content into the store.
type Loader interface {
	Fingerprint() (string, error)
	Load(ctx context.Context) (content.Result, error)
}

// Watcher reloads content on file changes and raises the site loading flag
// while a reload runs.
type Watcher struct {
	dir      string
	loader   Loader
	global   *state.Global
	debounce time.Duration

	// OnReload, if set, is called after every reload that ran.
	OnReload func(content.Result, error)

	mu          sync.Mutex
	fingerprint string
}

// New creates a watcher for dir.
func New(dir string, loader Loader, global *state.Global) *Watcher {
	return &Watcher{dir: dir, loader: loader, global: global, debounce: DefaultDebounce}
}

// SetDebounce changes the settle delay.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Prime records the fingerprint of content loaded elsewhere so an
// unchanged tree is not reloaded.
func (w *Watcher) Prime(fingerprint string) {
	w.mu.Lock()
	w.fingerprint = fingerprint
	w.mu.Unlock()
}

// Reload loads the content again unless the files are unchanged since the
// last load. It reports whether a load ran.
func (w *Watcher) Reload(ctx context.Context) (bool, error) {
	fp, err := w.loader.Fingerprint()
	if err != nil {
		return false, err
	}
	w.mu.Lock()
	same := fp == w.fingerprint
	w.mu.Unlock()
	if same {
		return false, nil
	}

	if w.global != nil {
		w.global.SetLoading(true)
		defer w.global.SetLoading(false)
	}
	res, err := w.loader.Load(ctx)
	if err == nil {
		w.Prime(res.Fingerprint)
		log.Printf("watch: reloaded %d posts (%d skipped)", res.Posts, res.Skipped)
	}
	if w.OnReload != nil {
		w.OnReload(res, err)
	}
	return true, err
}

// Run watches the content directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, w.dir); err != nil {
		return err
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(fw, ev.Name); err != nil {
						log.Printf("watch: %v", err)
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)

		case <-fire:
			fire = nil
			if _, err := w.Reload(ctx); err != nil {
				log.Printf("watch: reload failed: %v", err)
			}
		}
	}
}

// addTree watches root and every directory below it, skipping hidden ones.
func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
