// Package state holds site-wide UI state shared by every mounted layout.
package state

import "sync"

// Global carries the site-wide loading flag. The zero value is ready to use.
type Global struct {
	mu      sync.RWMutex
	loading bool
	nextID  int
	subs    map[int]func(loading bool)
}

// New returns a Global with the loading flag cleared.
func New() *Global {
	return &Global{}
}

// Loading reports whether a content transition is in progress.
func (g *Global) Loading() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loading
}

// SetLoading updates the flag and notifies subscribers when it changes.
func (g *Global) SetLoading(loading bool) {
	g.mu.Lock()
	if g.loading == loading {
		g.mu.Unlock()
		return
	}
	g.loading = loading
	subs := make([]func(bool), 0, len(g.subs))
	for _, fn := range g.subs {
		subs = append(subs, fn)
	}
	g.mu.Unlock()

	for _, fn := range subs {
		fn(loading)
	}
}

// Subscribe registers fn to be called on every change of the loading flag.
// Callbacks run on the goroutine that called SetLoading. The returned
// function removes the subscription.
func (g *Global) Subscribe(fn func(loading bool)) (unsubscribe func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.subs == nil {
		g.subs = make(map[int]func(bool))
	}
	id := g.nextID
	g.nextID++
	g.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.subs, id)
			g.mu.Unlock()
		})
	}
}
