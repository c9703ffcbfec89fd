package theme

import (
	"fmt"
	"net/url"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/ziadkadry99/bookshell/internal/content"
	"github.com/ziadkadry99/bookshell/internal/nav"
)

// Slug renders the post detail page: the lock form for a locked post,
// otherwise the article with its metadata in a fixed order.
func (p *Page) Slug() g.Node {
	pr := p.props
	if pr.Lock {
		return p.Render(ArticleLock(pr.UnlockAction, pr.UnlockFailed))
	}

	var title string
	if pr.Post != nil {
		title = pr.Post.Title
	}
	return p.Render(
		html.Div(html.ID("container"),
			html.H1(html.Class("text-3xl pt-12"), g.Text(title)),
			p.articleWrapper(),
			TocDrawer(pr.TOC(), pr.Route, p.ctx.Visible(DrawerTOC)),
		),
	)
}

func (p *Page) articleWrapper() g.Node {
	pr := p.props
	post := pr.Post
	if post == nil {
		return nil
	}
	t := p.theme
	return html.Section(html.ID("article-wrapper"), html.Class("px-1"),
		html.Article(html.ID("notion-article"), g.Raw(post.HTML)),
		ShareBar(t.site.BaseURL, post),
		MetaChipRow(pr.ChipsView(), t.cfg),
		g.If(post.Type == content.TypePost, ArticleAround(pr.AdjacentView())),
		AdSlot("article", t.cfg.AdClient),
		Comment(post),
	)
}

// PostList renders the entries of the filtered navigation groups.
func (p *Page) PostList() g.Node {
	groups := p.ctx.FilteredGroups()
	return p.Render(
		html.Div(html.ID("post-list"),
			g.If(p.props.Meta.Title != "", html.H1(html.Class("text-3xl pt-12"), g.Text(p.props.Meta.Title))),
			entryList(groups),
		),
	)
}

// Search narrows the navigation to titles matching query and lists them.
// A category or tag filter already applied stays in effect.
func (p *Page) Search(query string) g.Node {
	p.ctx.Narrow(nav.ByKeyword(query))
	groups := p.ctx.FilteredGroups()

	summary := fmt.Sprintf("%d results", groups.Len())
	if query != "" {
		summary = fmt.Sprintf("%d results for %q", groups.Len(), query)
	}
	return p.Render(
		html.Div(html.ID("search-result"),
			SearchInput(query),
			html.P(html.Class("search-summary"), g.Text(summary)),
			entryList(groups),
		),
	)
}

// Archive lists posts newest first, grouped by month.
func (p *Page) Archive(posts []*content.Post) g.Node {
	type month struct {
		label string
		posts []*content.Post
	}
	var months []*month
	for _, post := range posts {
		label := "Undated"
		if !post.Date.IsZero() {
			label = post.Date.Format("January 2006")
		}
		if len(months) == 0 || months[len(months)-1].label != label {
			months = append(months, &month{label: label})
		}
		m := months[len(months)-1]
		m.posts = append(m.posts, post)
	}

	return p.Render(
		html.Div(html.ID("archive"),
			g.Map(months, func(m *month) g.Node {
				return html.Section(html.Class("archive-month"),
					html.H2(html.Class("font-bold pt-6"), g.Text(m.label)),
					html.Ul(g.Map(m.posts, func(post *content.Post) g.Node {
						return html.Li(
							g.If(!post.Date.IsZero(), html.Span(html.Class("text-gray-500 mr-2"), g.Text(post.Date.Format(dateLayout)))),
							html.A(html.Href(post.Path()), g.Text(post.Title)),
						)
					})),
				)
			}),
		),
	)
}

// NotFound renders the 404 page. The chrome is always there.
func (p *Page) NotFound() g.Node {
	return p.Render(
		html.Div(html.ID("not-found"), html.Class("w-full h-96 flex justify-center items-center"),
			g.Text("404 Not found.")),
	)
}

// CategoryIndex lists every category with its post count.
func (p *Page) CategoryIndex(counts []content.Count) g.Node {
	return p.Render(countIndex("category-index", "Categories", "/category/", counts))
}

// TagIndex lists every tag with its post count.
func (p *Page) TagIndex(counts []content.Count) g.Node {
	return p.Render(countIndex("tag-index", "Tags", "/tag/", counts))
}

func countIndex(id, title, prefix string, counts []content.Count) g.Node {
	return html.Div(html.ID(id),
		html.H1(html.Class("text-3xl pt-12"), g.Text(title)),
		html.Div(html.Class("flex flex-wrap gap-2 py-4"),
			g.Map(counts, func(c content.Count) g.Node {
				return html.A(html.Class("count-chip"), html.Href(prefix+url.PathEscape(c.Name)),
					g.Text(c.Name), html.Span(html.Class("count"), g.Textf("%d", c.Count)))
			}),
		),
	)
}

func entryList(groups nav.GroupSet) g.Node {
	entries := groups.Entries()
	if len(entries) == 0 {
		return html.P(html.Class("text-gray-500"), g.Text("Nothing here yet."))
	}
	return html.Ul(html.Class("entry-list"),
		g.Map(entries, func(e nav.Entry) g.Node {
			return html.Li(html.A(html.Href(e.Path), g.Text(e.Title)))
		}),
	)
}
