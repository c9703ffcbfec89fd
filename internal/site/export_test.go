package site

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/bookshell/internal/config"
	"github.com/ziadkadry99/bookshell/internal/content"
	"github.com/ziadkadry99/bookshell/internal/db"
	"github.com/ziadkadry99/bookshell/internal/progress"
)

type recordingReporter struct {
	total   int
	kinds   map[string]progress.Kind
	skipped []string
	final   *progress.Summary
}

func (r *recordingReporter) Start(total int) {
	r.total = total
	r.kinds = make(map[string]progress.Kind)
}

func (r *recordingReporter) Page(kind progress.Kind, path string) { r.kinds[path] = kind }

func (r *recordingReporter) Skip(path, _ string) { r.skipped = append(r.skipped, path) }

func (r *recordingReporter) Finish(sum progress.Summary) { r.final = &sum }

func fixtures() []*content.Post {
	return []*content.Post{
		{ID: "p-welcome", Slug: "welcome", Title: "Welcome", Type: content.TypePost, Status: content.StatusPublished,
			Category: "guide", Tags: []content.Tag{{Name: "intro", Color: "blue"}}, HTML: "<p>Hello &amp; welcome</p>"},
		{ID: "p-install", Slug: "install", Title: "Install", Type: content.TypePost, Status: content.StatusPublished,
			Category: "guide", Tags: []content.Tag{{Name: "setup", Color: "green"}}, HTML: "<p>run it</p>"},
		{ID: "p-about", Slug: "about", Title: "About", Type: content.TypePage, Status: content.StatusPublished,
			HTML: "<p>about us</p>"},
		{ID: "n", Slug: "notice", Title: "Notice", Type: content.TypeNotice, Status: content.StatusPublished,
			HTML: "<p>maintenance</p>"},
		{ID: "p-secret", Slug: "secret", Title: "Secret", Type: content.TypePost, Status: content.StatusPublished,
			Category: "reference", Summary: "launch codes", Password: "pw", HTML: "<p>classified</p>"},
	}
}

func setupExporter(t *testing.T, mods ...func(*config.Config)) (*Exporter, string) {
	t.Helper()
	out := t.TempDir()
	return exporterFor(t, fixtures(), out, mods...), out
}

func exporterFor(t *testing.T, posts []*content.Post, out string, mods ...func(*config.Config)) *Exporter {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := content.NewStore(database)
	if err := store.Replace(context.Background(), posts); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	cfg := config.DefaultConfig()
	for _, m := range mods {
		m(cfg)
	}
	return NewExporter(cfg, store, out)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestExportWritesEveryPage(t *testing.T) {
	e, out := setupExporter(t)
	rep := &recordingReporter{}
	e.Reporter = rep

	sum, err := e.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	// index, 4 posts and pages, category and tag indexes, archive, search,
	// 404, 2 categories, 2 tags, 1 listing page.
	if sum.Written != 15 || sum.Posts != 4 || sum.Locked != 1 || sum.Listings != 9 || len(sum.Skipped) != 0 {
		t.Errorf("summary = %+v", sum)
	}
	if rep.total != 15 || len(rep.kinds) != 15 || rep.final == nil || rep.final.Written != 15 {
		t.Errorf("reporter saw total %d, %d pages, final %v", rep.total, len(rep.kinds), rep.final)
	}
	for path, want := range map[string]progress.Kind{
		"index.html":          progress.KindLanding,
		"welcome/index.html":  progress.KindPost,
		"secret/index.html":   progress.KindLocked,
		"category/index.html": progress.KindListing,
		"404.html":            progress.KindNotFound,
	} {
		if got := rep.kinds[path]; got != want {
			t.Errorf("kind of %s = %v, want %v", path, got, want)
		}
	}

	for _, rel := range []string{
		"index.html",
		"welcome/index.html",
		"about/index.html",
		"category/guide/index.html",
		"tag/setup/index.html",
		"archive/index.html",
		"search/index.html",
		"page/1/index.html",
		"404.html",
		"assets/style.css",
		"assets/script.js",
		"search-index.json",
	} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s", rel)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "notice", "index.html")); err == nil {
		t.Error("notices get no page of their own")
	}
}

func TestExportPageContents(t *testing.T) {
	e, out := setupExporter(t)
	if _, err := e.Export(context.Background()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	index := readFile(t, filepath.Join(out, "index.html"))
	if !strings.Contains(index, `url=/welcome`) {
		t.Error("index should redirect to the landing page")
	}

	install := readFile(t, filepath.Join(out, "install", "index.html"))
	if !strings.Contains(install, "run it") || !strings.Contains(install, `id="article-around"`) {
		t.Error("post page should carry its body and adjacent links")
	}
	if strings.Contains(install, "data-live") {
		t.Error("exported pages should not connect to live updates")
	}

	secret := readFile(t, filepath.Join(out, "secret", "index.html"))
	if strings.Contains(secret, "classified") || !strings.Contains(secret, `id="article-lock"`) {
		t.Error("locked post should export only the lock form")
	}
	if strings.Contains(secret, "launch codes") {
		t.Error("locked post summary should stay out of the page head")
	}

	guide := readFile(t, filepath.Join(out, "category", "guide", "index.html"))
	if !strings.Contains(guide, `href="/install"`) || strings.Contains(guide, `href="/secret"`) {
		t.Error("category page should list only its entries")
	}
}

func TestExportIndexDiagnostic(t *testing.T) {
	e, out := setupExporter(t, func(c *config.Config) { c.Theme.IndexPage = "landing" })
	if _, err := e.Export(context.Background()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	index := readFile(t, filepath.Join(out, "index.html"))
	if !strings.Contains(index, "Configuration error") || !strings.Contains(index, "landing") {
		t.Error("index should explain the missing landing page")
	}
}

func TestExportKeepsPagesInsideOutputDir(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "x", "y", "out")
	posts := []*content.Post{
		{ID: "p-escape", Slug: "../../escaped-slug", Title: "Escape", Type: content.TypePost,
			Status: content.StatusPublished, HTML: "<p>nope</p>"},
		{ID: "p-nested", Slug: "nested", Title: "Nested", Type: content.TypePost,
			Status: content.StatusPublished, Category: "a/b", Tags: []content.Tag{{Name: "..", Color: "red"}},
			HTML: "<p>nested</p>"},
		{ID: "p-spaced", Slug: "spaced", Title: "Spaced", Type: content.TypePost,
			Status: content.StatusPublished, Category: "user guide", HTML: "<p>spaced</p>"},
	}
	e := exporterFor(t, posts, out)

	sum, err := e.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(sum.Skipped) != 2 {
		t.Errorf("skipped = %v, want the escaping slug and the \"..\" tag", sum.Skipped)
	}
	for _, p := range []string{
		filepath.Join(root, "x", "escaped-slug"),
		filepath.Join(root, "x", "y", "escaped-slug"),
	} {
		if _, err := os.Stat(p); err == nil {
			t.Errorf("%s should not exist", p)
		}
	}

	// The category page lives where its link points.
	index := readFile(t, filepath.Join(out, "category", "index.html"))
	if !strings.Contains(index, `href="/category/a%2Fb"`) {
		t.Error("category index should link the escaped name")
	}
	nested := readFile(t, filepath.Join(out, "category", "a%2Fb", "index.html"))
	if !strings.Contains(nested, `href="/nested"`) {
		t.Error("escaped category page should list its entry")
	}
	if _, err := os.Stat(filepath.Join(out, "category", "a", "b")); err == nil {
		t.Error("category name should not create nested directories")
	}
	if _, err := os.Stat(filepath.Join(out, "category", "user guide", "index.html")); err != nil {
		t.Error("plain names keep their decoded form on disk")
	}
}

func TestExportTargetRefusesEscapes(t *testing.T) {
	e := &Exporter{OutputDir: t.TempDir()}
	for _, rel := range []string{"../x.html", "a/../../x.html"} {
		if _, err := e.target(rel); err == nil {
			t.Errorf("target(%q) should fail", rel)
		}
	}
	if _, err := e.target("a/../b/index.html"); err != nil {
		t.Errorf("target inside the output dir: %v", err)
	}
}

func TestSearchIndex(t *testing.T) {
	e, out := setupExporter(t)
	if _, err := e.Export(context.Background()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	var entries []SearchEntry
	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(out, "search-index.json"))), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}
	byPath := make(map[string]SearchEntry)
	for _, e := range entries {
		byPath[e.Path] = e
	}
	if got := byPath["/welcome"].Content; got != "Hello & welcome" {
		t.Errorf("content = %q, want %q", got, "Hello & welcome")
	}
	if byPath["/secret"].Content != "" {
		t.Error("locked post text should stay out of the index")
	}
	if tags := byPath["/install"].Tags; len(tags) != 1 || tags[0] != "setup" {
		t.Errorf("tags = %v", tags)
	}
}

func TestPlainTextTruncates(t *testing.T) {
	long := "<p>" + strings.Repeat("word ", 1000) + "</p>"
	entries := BuildSearchIndex([]*content.Post{{Slug: "x", Type: content.TypePost, HTML: long}})
	if len(entries[0].Content) != maxSearchContent {
		t.Errorf("len = %d, want %d", len(entries[0].Content), maxSearchContent)
	}
}
