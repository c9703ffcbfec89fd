package theme

import (
	"net/url"
	"strconv"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/ziadkadry99/bookshell/internal/config"
	"github.com/ziadkadry99/bookshell/internal/content"
	"github.com/ziadkadry99/bookshell/internal/nav"
)

const dateLayout = "2006-01-02"

// TopNavBar is the site header with the mobile navigation toggle.
func TopNavBar(site config.SiteConfig, route string) g.Node {
	return html.Header(html.ID("top-nav"), html.Class("fixed top-0 w-full z-20"),
		html.Div(html.Class("flex justify-between items-center px-6 h-12"),
			html.A(html.Class("font-bold"), html.Href("/"), g.Text(site.Title)),
			html.Nav(html.Class("hidden md:flex gap-4"),
				html.A(html.Href("/category"), g.Text("Categories")),
				html.A(html.Href("/tag"), g.Text("Tags")),
				html.A(html.Href("/archive"), g.Text("Archive")),
			),
			html.A(html.Class("md:hidden"), html.Href(route+"?nav=1"),
				g.Attr("data-toggle", DrawerNav.String()), g.Attr("aria-label", "Open navigation"),
				g.Text("☰"),
			),
		),
	)
}

// SearchInput is the keyword form posting to the search page.
func SearchInput(query string) g.Node {
	return html.Form(html.ID("search-input"), html.Class("my-3 rounded-md"),
		html.Method("get"), html.Action("/search"),
		html.Input(html.Type("search"), html.Name("q"), html.Value(query),
			html.Placeholder("Search"), g.Attr("aria-label", "Search")),
	)
}

// NavPostList lists the navigation groups, marking the current page.
func NavPostList(groups nav.GroupSet, current string) g.Node {
	if groups.Len() == 0 {
		return html.Nav(html.Class("nav-post-list"),
			html.P(html.Class("text-gray-500"), g.Text("No matching pages.")))
	}
	return html.Nav(html.Class("nav-post-list"),
		g.Map([]nav.Group(groups), func(grp nav.Group) g.Node {
			return html.Div(html.Class("nav-group mb-4"),
				g.Attr("data-group", grp.Name),
				html.Div(html.Class("nav-group-title font-bold"), g.Text(nav.GroupTitle(grp.Name, "Uncategorized"))),
				html.Ul(g.Map(grp.Entries, func(e nav.Entry) g.Node {
					cls := "nav-entry"
					if nav.IsActive(e.Path, current) {
						cls += " active"
					}
					return html.Li(html.A(html.Class(cls), html.Href(e.Path), g.Text(e.Title)))
				})),
			)
		}),
	)
}

// Footer carries the site credits.
func Footer(site config.SiteConfig) g.Node {
	credit := site.Title
	if site.Author != "" {
		credit = site.Author + " · " + site.Title
	}
	return html.Footer(html.Class("site-footer text-sm text-center py-4"), g.Text("© "+credit))
}

// ArticleInfo summarises the post shown in the right panel.
func ArticleInfo(post *content.Post) g.Node {
	if post == nil {
		return nil
	}
	return html.Div(html.ID("article-info"),
		html.H2(html.Class("font-bold"), g.Text(post.Title)),
		g.If(!post.Date.IsZero(), html.Div(html.Class("text-sm text-gray-500"), g.Text(post.Date.Format(dateLayout)))),
	)
}

// infoPost picks what ArticleInfo shows: the post, or the notice when the
// page has none.
func infoPost(pr Props) *content.Post {
	if pr.Post != nil {
		return pr.Post
	}
	return pr.Notice
}

// Catalog is the in-page table of contents.
func Catalog(toc []content.TOCEntry) g.Node {
	if len(toc) == 0 {
		return nil
	}
	return html.Nav(html.Class("catalog"),
		html.Div(html.Class("font-bold mb-2"), g.Text("Contents")),
		html.Ul(g.Map(toc, func(e content.TOCEntry) g.Node {
			return html.Li(g.Attr("data-level", levelAttr(e.Level)),
				html.A(html.Href("#"+e.ID), g.Text(e.Text)))
		})),
	)
}

func levelAttr(level int) string {
	return strconv.Itoa(level)
}

// InfoCard introduces the site on the home route.
func InfoCard(site config.SiteConfig) g.Node {
	return html.Div(html.ID("info-card"), html.Class("rounded-md p-4"),
		html.Div(html.Class("font-bold"), g.Text(site.Author)),
		g.If(site.Description != "", html.P(g.Text(site.Description))),
	)
}

// RevolverMaps is the visitor map widget placeholder.
func RevolverMaps() g.Node {
	return html.Div(html.ID("revolver-maps"), html.Class("widget"), g.Attr("data-widget", "revolvermaps"))
}

// Announcement shows the site notice.
func Announcement(notice *content.Post) g.Node {
	if notice == nil || notice.HTML == "" {
		return nil
	}
	return html.Section(html.ID("announcement"),
		html.Div(html.Class("font-bold"), g.Text(notice.Title)),
		html.Div(html.Class("notice-body"), g.Raw(notice.HTML)),
	)
}

// FloatTocButton opens the table-of-contents drawer on narrow screens.
func FloatTocButton(route string) g.Node {
	return html.Div(html.ID("float-toc-button"), html.Class("md:hidden fixed right-0 bottom-52 z-30"),
		html.A(html.Href(route+"?toc=1"), g.Attr("data-toggle", DrawerTOC.String()),
			g.Attr("aria-label", "Table of contents"), g.Text("≡")),
	)
}

// PageNavDrawer is the navigation overlay used on narrow screens.
func PageNavDrawer(groups nav.GroupSet, route string, open bool) g.Node {
	return drawer("page-nav-drawer", DrawerNav, route, open, NavPostList(groups, route))
}

// TocDrawer is the table-of-contents overlay used on narrow screens.
func TocDrawer(toc []content.TOCEntry, route string, open bool) g.Node {
	return drawer("toc-drawer", DrawerTOC, route, open, Catalog(toc))
}

func drawer(id string, d Drawer, route string, open bool, body g.Node) g.Node {
	cls := "drawer md:hidden fixed top-0 h-full z-40"
	state := "closed"
	if open {
		state = "open"
	} else {
		cls += " drawer-closed"
	}
	return html.Aside(html.ID(id), html.Class(cls),
		g.Attr("data-drawer", d.String()), g.Attr("data-state", state),
		html.A(html.Class("drawer-close"), html.Href(route), g.Attr("data-toggle", d.String()),
			g.Attr("aria-label", "Close"), g.Text("×")),
		body,
	)
}

// ArticleLock is the password form shown in place of a locked post.
func ArticleLock(action string, failed bool) g.Node {
	return html.Div(html.ID("article-lock"), html.Class("w-full flex justify-center py-20"),
		html.Form(html.Method("post"), html.Action(action),
			html.Div(html.Class("font-bold mb-2"), g.Text("This article is password protected.")),
			html.Input(html.Type("password"), html.Name("password"), html.Placeholder("Password"),
				g.Attr("aria-label", "Password"), html.Required()),
			html.Button(html.Type("submit"), g.Text("Unlock")),
			g.If(failed, html.P(html.Class("lock-error text-red-500"), g.Text("Incorrect password."))),
		),
	)
}

// ShareBar links the post to share targets.
func ShareBar(baseURL string, post *content.Post) g.Node {
	link := baseURL + post.Path()
	return html.Div(html.ID("share-bar"), html.Class("flex gap-2 py-4"),
		html.A(html.Href("https://twitter.com/intent/tweet?url="+url.QueryEscape(link)+"&text="+url.QueryEscape(post.Title)),
			html.Rel("noopener"), g.Text("Twitter")),
		html.A(html.Href("mailto:?subject="+url.PathEscape(post.Title)+"&body="+url.QueryEscape(link)), g.Text("Email")),
	)
}

// CategoryItem is the category chip of a post.
func CategoryItem(name string) g.Node {
	return html.A(html.Class("category-item"), html.Href("/category/"+url.PathEscape(name)),
		g.Text(nav.GroupTitle(name, name)))
}

// TagItemMini is a small tag chip.
func TagItemMini(tag content.Tag) g.Node {
	return html.A(html.Class("tag-item-mini tag-"+tag.Color), html.Href("/tag/"+url.PathEscape(tag.Name)),
		g.Text(tag.Name))
}

// MetaChipRow renders the category chip and tag chips enabled by cfg.
func MetaChipRow(chips MetaChips, cfg config.ThemeConfig) g.Node {
	showCategory := cfg.PostDetailCategory && chips.Category != ""
	showTags := cfg.PostDetailTag && len(chips.Tags) > 0
	if !showCategory && !showTags {
		return nil
	}
	return html.Div(html.Class("flex justify-between"),
		g.If(showCategory, CategoryItem(chips.Category)),
		g.If(showTags, html.Div(html.Class("tag-list"), g.Map(chips.Tags, TagItemMini))),
	)
}

// ArticleAround links to the previous and next posts.
func ArticleAround(adj Adjacent) g.Node {
	if adj.Empty() {
		return nil
	}
	return html.Nav(html.ID("article-around"), html.Class("flex justify-between py-4"),
		g.If(adj.Prev != nil, aroundLink("prev", "← ", adj.Prev)),
		g.If(adj.Next != nil, aroundLink("next", "→ ", adj.Next)),
	)
}

func aroundLink(rel, arrow string, l *Link) g.Node {
	if l == nil {
		return nil
	}
	return html.A(html.Rel(rel), html.Href(l.Path), g.Text(arrow+l.Title))
}

// AdSlot is an ad placement. Without an ad client it renders nothing.
func AdSlot(kind, client string) g.Node {
	if client == "" {
		return nil
	}
	return g.El("ins", html.Class("adsbygoogle ad-slot"), g.Attr("data-ad-client", client), g.Attr("data-ad-format", kind))
}

// Comment is the comment section anchor for a post.
func Comment(post *content.Post) g.Node {
	return html.Section(html.ID("comments"), g.Attr("data-slug", post.Slug))
}

// JumpToTop scrolls back to the top of the page.
func JumpToTop() g.Node {
	return html.A(html.ID("jump-to-top"), html.Href("#"), g.Attr("aria-label", "Back to top"), g.Text("↑"))
}
