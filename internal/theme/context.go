package theme

import (
	"fmt"
	"sync"

	"github.com/ziadkadry99/bookshell/internal/nav"
)

// Drawer identifies one of the two overlay drawers of the layout.
type Drawer int

const (
	DrawerTOC Drawer = iota
	DrawerNav
)

func (d Drawer) String() string {
	switch d {
	case DrawerTOC:
		return "toc"
	case DrawerNav:
		return "nav"
	default:
		return fmt.Sprintf("drawer(%d)", int(d))
	}
}

// LayoutContext is the page-scoped state shared by every component of one
// mounted layout: drawer visibility and the filtered navigation groups.
// It is created per mount and passed explicitly to whoever needs it.
type LayoutContext struct {
	mu       sync.Mutex
	full     nav.GroupSet
	filtered nav.GroupSet
	visible  [2]bool
	active   string
	debug    bool

	nextSub int
	subs    map[int]func()
}

// ContextOption configures a LayoutContext.
type ContextOption func(*LayoutContext)

// WithDebug enables the subset assertion in SetFilteredGroups.
func WithDebug(on bool) ContextOption {
	return func(c *LayoutContext) { c.debug = on }
}

// NewLayoutContext creates a context over the full navigation groups.
// The filtered set starts equal to the full set and both drawers are closed.
func NewLayoutContext(full nav.GroupSet, opts ...ContextOption) *LayoutContext {
	c := &LayoutContext{
		full:     full,
		filtered: full,
		subs:     make(map[int]func()),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Visible reports whether drawer d is open.
func (c *LayoutContext) Visible(d Drawer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !validDrawer(d) {
		return false
	}
	return c.visible[d]
}

// SetVisible opens or closes drawer d. The other drawer is left untouched.
func (c *LayoutContext) SetVisible(d Drawer, on bool) {
	if !validDrawer(d) {
		return
	}
	c.mu.Lock()
	changed := c.visible[d] != on
	c.visible[d] = on
	c.mu.Unlock()
	if changed {
		c.notify()
	}
}

// FullGroups returns the navigation groups the context was created with.
func (c *LayoutContext) FullGroups() nav.GroupSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.full
}

// FilteredGroups returns the groups currently shown in the navigation.
func (c *LayoutContext) FilteredGroups() nav.GroupSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filtered
}

// SetFilteredGroups replaces the filtered set. The set must be derived from
// FullGroups; in debug mode anything else panics.
func (c *LayoutContext) SetFilteredGroups(subset nav.GroupSet) {
	c.mu.Lock()
	if c.debug && !subset.SubsetOf(c.full) {
		c.mu.Unlock()
		panic("theme: filtered navigation groups are not a subset of the full set")
	}
	c.filtered = subset
	c.mu.Unlock()
	c.notify()
}

// Filter narrows the filtered set to the full-set entries matching pred.
func (c *LayoutContext) Filter(pred nav.Predicate) {
	c.SetFilteredGroups(c.FullGroups().Filter(pred))
}

// Narrow applies pred on top of the current filtered set.
func (c *LayoutContext) Narrow(pred nav.Predicate) {
	c.SetFilteredGroups(c.FilteredGroups().Filter(pred))
}

// Active returns the identity of the content entity the layout shows.
func (c *LayoutContext) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SetActive records the identity of the active content entity. When the
// identity changes, the filtered set is reset to the full set and any
// filter applied for the previous entity is discarded. It reports whether
// a reset happened.
func (c *LayoutContext) SetActive(id string) bool {
	c.mu.Lock()
	if c.active == id {
		c.mu.Unlock()
		return false
	}
	c.active = id
	c.filtered = c.full
	c.mu.Unlock()
	c.notify()
	return true
}

// Subscribe registers fn to run after every visibility or filter change.
// The returned function removes the subscription.
func (c *LayoutContext) Subscribe(fn func()) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

func (c *LayoutContext) notify() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func validDrawer(d Drawer) bool {
	return d == DrawerTOC || d == DrawerNav
}
