// Package theme renders the gitbook layout: a top bar, a navigation panel on
// one side, article metadata on the other, and the page content in between.
package theme

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/ziadkadry99/bookshell/internal/config"
	"github.com/ziadkadry99/bookshell/internal/nav"
)

// Transition classes of the content region. The node itself never leaves
// the tree; only these classes and data-state change.
const (
	transitionEnter = "transition ease-in-out duration-700 transform opacity-100 translate-y-0"
	transitionLeave = "transition ease-in-out duration-300 transform opacity-0 -translate-y-16"
)

// LoadingSource reports whether a content transition is in progress.
type LoadingSource interface {
	Loading() bool
}

// Theme holds the site-wide settings every page is rendered with.
type Theme struct {
	site    config.SiteConfig
	cfg     config.ThemeConfig
	loading LoadingSource
}

// New creates a Theme. loading may be nil, in which case content is never
// shown as loading and pages do not subscribe to live updates.
func New(cfg *config.Config, loading LoadingSource) *Theme {
	return &Theme{site: cfg.Site, cfg: cfg.Theme, loading: loading}
}

// Config returns the theme switches.
func (t *Theme) Config() config.ThemeConfig { return t.cfg }

func (t *Theme) isLoading() bool {
	return t.loading != nil && t.loading.Loading()
}

// Page is one mounted layout. It owns the LayoutContext for its lifetime.
type Page struct {
	theme *Theme
	ctx   *LayoutContext
	props Props
}

// Mount creates a page for props with a fresh LayoutContext.
func (t *Theme) Mount(props Props) *Page {
	full := nav.Build(props.AllNavPages)
	ctx := NewLayoutContext(full, WithDebug(t.cfg.Debug))
	ctx.SetActive(props.activeID())
	return &Page{theme: t, ctx: ctx, props: props}
}

// Context returns the page's layout context.
func (p *Page) Context() *LayoutContext { return p.ctx }

// Props returns the props the page currently renders.
func (p *Page) Props() Props { return p.props }

// Update swaps the page data without remounting, as client-side navigation
// does. Moving to another entity resets the navigation filter.
func (p *Page) Update(props Props) {
	p.props = props
	p.ctx.SetActive(props.activeID())
}

// Render renders the base layout around children.
func (p *Page) Render(children ...g.Node) g.Node {
	return p.render(p.props.SlotTop, children...)
}

func (p *Page) render(slotTop g.Node, children ...g.Node) g.Node {
	t := p.theme
	pr := p.props
	loading := t.isLoading()

	wrapperClass := "relative flex justify-between w-full h-full mx-auto"
	if t.cfg.LayoutSidebarReverse {
		wrapperClass = "flex-row-reverse " + wrapperClass
	}

	state, transition := "enter", transitionEnter
	if loading {
		state, transition = "leave", transitionLeave
	}

	return html.Doctype(
		html.HTML(html.Lang(t.site.Lang),
			head(t.site, pr.HeadMeta()),
			html.Body(
				html.Div(html.ID("theme-gitbook"), html.Class("w-full h-full min-h-screen"),
					g.If(t.loading != nil, g.Attr("data-live", "true")),
					TopNavBar(t.site, pr.Route),

					html.Main(html.ID("wrapper"), html.Class(wrapperClass),
						html.Div(html.ID("left-panel"), html.Class("hidden md:block"),
							html.Div(html.Class("w-72 sticky top-0"),
								pr.SlotLeft,
								SearchInput(""),
								NavPostList(p.ctx.FilteredGroups(), pr.Route),
							),
							html.Div(html.Class("w-72 fixed left-0 bottom-0"), Footer(t.site)),
						),

						html.Div(html.ID("center-wrapper"), html.Class("flex flex-col justify-between w-full"),
							html.Div(html.ID("container-inner"), html.Class("w-full max-w-3xl mx-auto"),
								slotTop,
								AdSlot("in-article", t.cfg.AdClient),
								html.Div(html.ID("content-transition"), html.Class(transition),
									g.Attr("data-state", state),
									g.Group(children),
								),
								AdSlot("in-article", t.cfg.AdClient),
								JumpToTop(),
							),
							html.Div(html.Class("md:hidden"), Footer(t.site)),
							html.Div(html.Class("text-center"), AdSlot("native", t.cfg.AdClient)),
						),

						html.Div(html.ID("right-panel"), html.Class("hidden xl:block"),
							html.Div(html.Class("sticky top-0"),
								ArticleInfo(infoPost(pr)),
								html.Div(html.Class("py-6"),
									Catalog(pr.TOC()),
									pr.SlotRight,
									g.If(pr.Route == t.site.HomeRoute, g.Group([]g.Node{
										InfoCard(t.site),
										g.If(t.cfg.WidgetRevolverMaps, RevolverMaps()),
									})),
									Announcement(pr.Notice),
								),
							),
						),
					),

					g.If(len(pr.TOC()) > 1 && !p.ctx.Visible(DrawerTOC), FloatTocButton(pr.Route)),
					PageNavDrawer(p.ctx.FilteredGroups(), pr.Route, p.ctx.Visible(DrawerNav)),
				),
				html.Script(html.Src("/assets/script.js"), html.Defer()),
			),
		),
	)
}

func head(site config.SiteConfig, meta Meta) g.Node {
	title := site.Title
	if meta.Title != "" {
		title = meta.Title + " | " + site.Title
	}
	desc := meta.Description
	if desc == "" {
		desc = site.Description
	}
	return html.Head(
		html.Meta(html.Charset("utf-8")),
		html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1.0")),
		html.TitleEl(g.Text(title)),
		g.If(desc != "", html.Meta(html.Name("description"), html.Content(desc))),
		g.If(site.Author != "", html.Meta(html.Name("author"), html.Content(site.Author))),
		html.Link(html.Rel("stylesheet"), html.Href("/assets/style.css")),
	)
}
