package theme

import (
	"context"
	"sync"
	"time"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/ziadkadry99/bookshell/internal/config"
)

// Navigator moves the visitor to the page with the given slug.
type Navigator interface {
	Navigate(ctx context.Context, slug string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, slug string) error

func (f NavigatorFunc) Navigate(ctx context.Context, slug string) error { return f(ctx, slug) }

// Probe reports whether the page for slug rendered.
type Probe interface {
	Rendered(slug string) bool
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(slug string) bool

func (f ProbeFunc) Rendered(slug string) bool { return f(slug) }

// IndexRedirect sends the index route to the configured landing page and,
// after a grace period, checks once whether that page exists. A miss turns
// the index into a configuration diagnostic.
type IndexRedirect struct {
	slug     string
	nav      Navigator
	probe    Probe
	grace    time.Duration
	onChange func()

	mu        sync.Mutex
	mounted   bool
	unmounted bool
	timer     *time.Timer
	failed    bool
	done      chan struct{}
	doneOnce  sync.Once
}

// RedirectOption configures an IndexRedirect.
type RedirectOption func(*IndexRedirect)

// WithGrace sets how long to wait before checking the landing page.
func WithGrace(d time.Duration) RedirectOption {
	return func(r *IndexRedirect) { r.grace = d }
}

// OnChange registers a callback run when the check fails.
func OnChange(fn func()) RedirectOption {
	return func(r *IndexRedirect) { r.onChange = fn }
}

// NewIndexRedirect creates a redirect to slug.
func NewIndexRedirect(slug string, navigator Navigator, probe Probe, opts ...RedirectOption) *IndexRedirect {
	r := &IndexRedirect{
		slug:  slug,
		nav:   navigator,
		probe: probe,
		grace: config.DefaultIndexGrace,
		done:  make(chan struct{}),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Slug returns the landing page slug.
func (r *IndexRedirect) Slug() string { return r.slug }

// Mount navigates to the landing page and schedules the presence check.
// Only the first call has any effect.
func (r *IndexRedirect) Mount(ctx context.Context) error {
	r.mu.Lock()
	if r.mounted {
		r.mu.Unlock()
		return nil
	}
	r.mounted = true
	r.mu.Unlock()

	if err := r.nav.Navigate(ctx, r.slug); err != nil {
		r.finish()
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unmounted {
		return nil
	}
	r.timer = time.AfterFunc(r.grace, r.check)
	return nil
}

// Unmount cancels a pending check. A cancelled check never reports failure.
func (r *IndexRedirect) Unmount() {
	r.mu.Lock()
	r.unmounted = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()
	r.finish()
}

// Failed reports whether the check found no landing page.
func (r *IndexRedirect) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Done is closed once the check ran or the redirect was unmounted.
func (r *IndexRedirect) Done() <-chan struct{} { return r.done }

func (r *IndexRedirect) check() {
	rendered := r.probe.Rendered(r.slug)

	r.mu.Lock()
	if r.unmounted {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	r.failed = !rendered
	failed := r.failed
	r.mu.Unlock()

	r.finish()
	if failed && r.onChange != nil {
		r.onChange()
	}
}

func (r *IndexRedirect) finish() {
	r.doneOnce.Do(func() { close(r.done) })
}

// Render renders the page with the diagnostic in its top slot once the
// check failed, and as the plain base layout before that.
func (r *IndexRedirect) Render(p *Page) g.Node {
	top := p.props.SlotTop
	if r.Failed() {
		top = Diagnostic(r.slug)
	}
	return p.render(top)
}

// Diagnostic explains that no page exists for the landing slug.
func Diagnostic(slug string) g.Node {
	return html.Div(html.ID("config-error"),
		html.H1(html.Class("text-3xl pt-12"), g.Text("Configuration error")),
		html.BlockQuote(html.Class("notion-quote"),
			html.Div(g.Textf("Add a page with the slug %q to your content, or change theme.index_page.", slug)),
		),
	)
}
