// Package site exports the whole site as static HTML files.
package site

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/ziadkadry99/bookshell/internal/config"
	"github.com/ziadkadry99/bookshell/internal/content"
	"github.com/ziadkadry99/bookshell/internal/nav"
	"github.com/ziadkadry99/bookshell/internal/progress"
	"github.com/ziadkadry99/bookshell/internal/theme"
)

// PageSize is the number of posts per exported /page/{n} listing.
const PageSize = 10

// Exporter renders every page of the site into OutputDir.
type Exporter struct {
	Config    *config.Config
	Store     *content.Store
	OutputDir string
	Reporter  progress.Reporter
}

// NewExporter creates an Exporter writing to outputDir.
func NewExporter(cfg *config.Config, store *content.Store, outputDir string) *Exporter {
	return &Exporter{Config: cfg, Store: store, OutputDir: outputDir}
}

// page is one file to write.
type page struct {
	path   string // slash separated, relative to OutputDir
	kind   progress.Kind
	render func() g.Node
}

// segment turns name into a single directory name. Names holding a path
// separator are written escaped, as their links are; "." and ".." are
// refused.
func segment(name string) (string, bool) {
	switch name {
	case "", ".", "..":
		return "", false
	}
	if strings.ContainsAny(name, `/\`) {
		return url.PathEscape(name), true
	}
	return name, true
}

// Export writes all pages, the assets and search-index.json. The summary
// counts the HTML pages written and lists the ones skipped.
func (e *Exporter) Export(ctx context.Context) (progress.Summary, error) {
	var sum progress.Summary
	entries, err := e.Store.NavEntries(ctx)
	if err != nil {
		return sum, fmt.Errorf("loading navigation: %w", err)
	}
	notice, err := e.Store.Notice(ctx)
	if err != nil {
		return sum, fmt.Errorf("loading notice: %w", err)
	}
	posts, err := e.Store.List(ctx, content.ListFilter{})
	if err != nil {
		return sum, fmt.Errorf("listing posts: %w", err)
	}
	categories, err := e.Store.Categories(ctx)
	if err != nil {
		return sum, err
	}
	tags, err := e.Store.Tags(ctx)
	if err != nil {
		return sum, err
	}

	th := theme.New(e.Config, nil)
	base := func(route string, meta theme.Meta) theme.Props {
		return theme.Props{Route: route, Meta: meta, Notice: notice, AllNavPages: entries}
	}

	var pages []page
	pages = append(pages, page{"index.html", progress.KindLanding, func() g.Node { return e.index(ctx, th, base("/", theme.Meta{})) }})

	// Post detail pages share one mounted layout, as client-side
	// navigation between posts does.
	var detail *theme.Page
	var articles []*content.Post
	for _, p := range posts {
		if p.Type == content.TypeNotice {
			continue
		}
		if p.Type == content.TypePost {
			articles = append(articles, p)
		}
		// Post links use the slug as is, so it must already be one segment.
		if seg, ok := segment(p.Slug); !ok || seg != p.Slug {
			sum.Skip(p.Slug + "/index.html")
			continue
		}
		kind := progress.KindPost
		if p.Locked() {
			kind = progress.KindLocked
		}
		pages = append(pages, page{p.Slug + "/index.html", kind, func() g.Node {
			prev, next, err := e.Store.Adjacent(ctx, p)
			if err != nil {
				log.Printf("site: adjacent posts of %s: %v", p.Slug, err)
			}
			props := base(p.Path(), theme.Meta{Title: p.Title, Description: p.Summary, Slug: p.Slug})
			props.Post, props.Prev, props.Next = p, prev, next
			props.Lock = p.Locked()
			props.UnlockAction = p.Path() + "/unlock"
			if detail == nil {
				detail = th.Mount(props)
			} else {
				detail.Update(props)
			}
			return detail.Slug()
		}})
	}

	pages = append(pages,
		page{"category/index.html", progress.KindListing, func() g.Node {
			return th.Mount(base("/category", theme.Meta{Title: "Categories"})).CategoryIndex(categories)
		}},
		page{"tag/index.html", progress.KindListing, func() g.Node {
			return th.Mount(base("/tag", theme.Meta{Title: "Tags"})).TagIndex(tags)
		}},
		page{"archive/index.html", progress.KindListing, func() g.Node {
			byDate := append([]*content.Post(nil), articles...)
			sort.SliceStable(byDate, func(i, j int) bool { return byDate[i].Date.After(byDate[j].Date) })
			return th.Mount(base("/archive", theme.Meta{Title: "Archive"})).Archive(byDate)
		}},
		page{"search/index.html", progress.KindListing, func() g.Node {
			return th.Mount(base("/search", theme.Meta{Title: "Search"})).Search("")
		}},
		page{"404.html", progress.KindNotFound, func() g.Node {
			return th.Mount(base("/404", theme.Meta{Title: "Not found"})).NotFound()
		}},
	)
	for _, c := range categories {
		name := c.Name
		seg, ok := segment(name)
		if !ok {
			sum.Skip("category/" + name + "/index.html")
			continue
		}
		pages = append(pages, page{"category/" + seg + "/index.html", progress.KindListing, func() g.Node {
			pg := th.Mount(base("/category/"+url.PathEscape(name), theme.Meta{Title: "Category: " + nav.GroupTitle(name, name)}))
			pg.Context().Filter(nav.ByCategory(name))
			return pg.PostList()
		}})
	}
	for _, t := range tags {
		name := t.Name
		seg, ok := segment(name)
		if !ok {
			sum.Skip("tag/" + name + "/index.html")
			continue
		}
		pages = append(pages, page{"tag/" + seg + "/index.html", progress.KindListing, func() g.Node {
			pg := th.Mount(base("/tag/"+url.PathEscape(name), theme.Meta{Title: "Tag: " + name}))
			pg.Context().Filter(nav.ByTag(name))
			return pg.PostList()
		}})
	}
	for n := 1; n == 1 || (n-1)*PageSize < len(articles); n++ {
		lo := (n - 1) * PageSize
		hi := min(lo+PageSize, len(articles))
		ids := make(map[string]bool, hi-lo)
		for _, p := range articles[lo:hi] {
			ids[p.ID] = true
		}
		pages = append(pages, page{fmt.Sprintf("page/%d/index.html", n), progress.KindListing, func() g.Node {
			pg := th.Mount(base(fmt.Sprintf("/page/%d", n), theme.Meta{Title: fmt.Sprintf("Page %d", n)}))
			pg.Context().Filter(func(e nav.Entry) bool { return ids[e.ID] })
			return pg.PostList()
		}})
	}

	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return sum, err
	}
	if err := e.writeAssets(); err != nil {
		return sum, err
	}
	if err := WriteSearchIndex(BuildSearchIndex(posts), filepath.Join(e.OutputDir, "search-index.json")); err != nil {
		return sum, fmt.Errorf("writing search index: %w", err)
	}

	rep := e.Reporter
	if rep == nil {
		rep = nopReporter{}
	}
	rep.Start(len(pages))
	for _, path := range sum.Skipped {
		rep.Skip(path, "name is not a single path segment")
	}
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := e.writePage(p.path, p.render()); err != nil {
			return sum, fmt.Errorf("writing %s: %w", p.path, err)
		}
		sum.Record(p.kind)
		rep.Page(p.kind, p.path)
	}
	rep.Finish(sum)
	return sum, nil
}

type nopReporter struct{}

func (nopReporter) Start(int) {}
func (nopReporter) Page(progress.Kind, string) {}
func (nopReporter) Skip(string, string) {}
func (nopReporter) Finish(progress.Summary) {}

// index renders the landing page: a redirect to the configured slug, or
// the configuration diagnostic when no such page exists.
func (e *Exporter) index(ctx context.Context, th *theme.Theme, props theme.Props) g.Node {
	slug := e.Config.Theme.IndexPage
	redirect := theme.NewIndexRedirect(slug,
		theme.NavigatorFunc(func(ctx context.Context, _ string) error { return ctx.Err() }),
		theme.ProbeFunc(func(slug string) bool { return e.Store.Has(ctx, slug) }),
		theme.WithGrace(0),
	)
	if err := redirect.Mount(ctx); err == nil {
		<-redirect.Done()
	}
	if !redirect.Failed() {
		return redirectPage("/" + url.PathEscape(slug))
	}
	return redirect.Render(th.Mount(props))
}

func redirectPage(target string) g.Node {
	return html.Doctype(
		html.HTML(
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(g.Attr("http-equiv", "refresh"), html.Content("0; url="+target)),
				html.Link(html.Rel("canonical"), html.Href(target)),
			),
			html.Body(html.A(html.Href(target), g.Text("Redirecting…"))),
		),
	)
}

// target resolves rel below OutputDir and refuses anything outside it.
func (e *Exporter) target(rel string) (string, error) {
	root, err := filepath.Abs(e.OutputDir)
	if err != nil {
		return "", err
	}
	out := filepath.Join(root, filepath.FromSlash(rel))
	r, err := filepath.Rel(root, out)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the output directory", rel)
	}
	return out, nil
}

func (e *Exporter) writePage(rel string, node g.Node) error {
	out, err := e.target(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := node.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (e *Exporter) writeAssets() error {
	dir := filepath.Join(e.OutputDir, "assets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "style.css"), []byte(theme.StyleCSS), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "script.js"), []byte(theme.ScriptJS), 0o644)
}
