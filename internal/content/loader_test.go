package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestLoaderLoad(t *testing.T) {
	root := writeContent(t, map[string]string{
		"welcome.md":     "---\ntitle: Welcome\ndate: 2024-02-01\ncategory: guide\n---\n## One\n\n## Two\n",
		"guide/setup.md": "---\ntitle: Setup\ndate: 2024-01-01\ncategory: guide\ntags: [setup]\n---\nSteps.\n",
		"draft.md":       "---\ntitle: WIP\nstatus: Draft\n---\n",
		"broken.md":      "---\ntype: Essay\n---\n",
		"zz-dup.md":      "---\nslug: welcome\n---\nsecond welcome\n",
		"drafts/x.md":    "# Hidden\n",
	})

	s := setupStore(t)
	l := NewLoader(s, root, []string{"**/*.md"}, []string{"drafts/**"})

	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Posts != 2 {
		t.Errorf("Posts = %d, want 2", res.Posts)
	}
	if res.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", res.Skipped)
	}
	if res.Fingerprint == "" {
		t.Error("Fingerprint should be set")
	}

	ctx := context.Background()
	posts, err := s.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// Newest first.
	if posts[0].Slug != "welcome" || posts[1].Slug != "guide-setup" {
		t.Errorf("order = %s, %s", posts[0].Slug, posts[1].Slug)
	}
	if len(posts[0].TOC) != 2 {
		t.Errorf("TOC = %+v", posts[0].TOC)
	}
	if posts[0].HTML == "" {
		t.Error("HTML should be rendered")
	}
}

func TestLoaderMissingDir(t *testing.T) {
	s := setupStore(t)
	l := NewLoader(s, filepath.Join(t.TempDir(), "missing"), nil, nil)
	if _, err := l.Load(context.Background()); err == nil {
		t.Error("expected error for missing content dir")
	}
}

func TestSortPosts(t *testing.T) {
	posts := []*Post{
		{Title: "B", Order: 1},
		{Title: "A", Order: 1},
		{Title: "C", Order: 0},
	}
	SortPosts(posts)
	got := posts[0].Title + posts[1].Title + posts[2].Title
	if got != "CAB" {
		t.Errorf("order = %s, want CAB", got)
	}
}
