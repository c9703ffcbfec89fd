package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ziadkadry99/bookshell/internal/content"
	"github.com/ziadkadry99/bookshell/internal/db"
	"github.com/ziadkadry99/bookshell/internal/state"
)

type fakeLoader struct {
	mu    sync.Mutex
	fp    string
	loads int
	err   error
	seen  []bool // loading flag observed during Load
	flag  *state.Global
}

func (f *fakeLoader) Fingerprint() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fp, nil
}

func (f *fakeLoader) Load(context.Context) (content.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.flag != nil {
		f.seen = append(f.seen, f.flag.Loading())
	}
	return content.Result{Posts: 1, Fingerprint: f.fp}, f.err
}

func TestReloadSkipsUnchanged(t *testing.T) {
	global := state.New()
	l := &fakeLoader{fp: "one", flag: global}
	w := New(t.TempDir(), l, global)

	ran, err := w.Reload(context.Background())
	if err != nil || !ran {
		t.Fatalf("first Reload() = %v, %v; want true, nil", ran, err)
	}
	ran, _ = w.Reload(context.Background())
	if ran {
		t.Error("unchanged fingerprint should not reload")
	}

	l.mu.Lock()
	l.fp = "two"
	l.mu.Unlock()
	ran, _ = w.Reload(context.Background())
	if !ran {
		t.Error("changed fingerprint should reload")
	}

	if l.loads != 2 {
		t.Errorf("loads = %d, want 2", l.loads)
	}
	for i, on := range l.seen {
		if !on {
			t.Errorf("load %d ran without the loading flag", i)
		}
	}
	if global.Loading() {
		t.Error("loading flag should be cleared after reload")
	}
}

func TestReloadErrorClearsLoading(t *testing.T) {
	global := state.New()
	l := &fakeLoader{fp: "x", err: errors.New("boom")}
	w := New(t.TempDir(), l, global)

	var gotErr error
	w.OnReload = func(_ content.Result, err error) { gotErr = err }

	if _, err := w.Reload(context.Background()); err == nil {
		t.Error("expected error")
	}
	if gotErr == nil {
		t.Error("OnReload should receive the error")
	}
	if global.Loading() {
		t.Error("loading flag should be cleared after a failed reload")
	}
	// A failed load is retried on the next event.
	if ran, _ := w.Reload(context.Background()); !ran {
		t.Error("failed load should not prime the fingerprint")
	}
}

func TestPrime(t *testing.T) {
	l := &fakeLoader{fp: "same"}
	w := New(t.TempDir(), l, nil)
	w.Prime("same")
	if ran, _ := w.Reload(context.Background()); ran {
		t.Error("primed fingerprint should skip the load")
	}
}

func TestRunReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "welcome.md"), []byte("# Welcome\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()
	store := content.NewStore(database)
	loader := content.NewLoader(store, dir, []string{"**/*.md"}, nil)

	res, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	w := New(dir, loader, state.New())
	w.SetDebounce(20 * time.Millisecond)
	w.Prime(res.Fingerprint)

	reloaded := make(chan content.Result, 4)
	w.OnReload = func(r content.Result, err error) {
		if err == nil {
			reloaded <- r
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "install.md"), []byte("# Install\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloaded:
		if r.Posts != 2 {
			t.Errorf("Posts = %d, want 2", r.Posts)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after file change")
	}
	if !store.Has(context.Background(), "install") {
		t.Error("new post not in store")
	}

	cancel()
	if err := <-errc; err != nil {
		t.Errorf("Run: %v", err)
	}
}

func TestRunMissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), &fakeLoader{}, nil)
	if err := w.Run(context.Background()); err == nil {
		t.Error("expected error for a missing directory")
	}
}
