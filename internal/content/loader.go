package content

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/ziadkadry99/bookshell/internal/walker"
)

// Loader reads the content directory into a Store.
type Loader struct {
	Walker   walker.WalkerConfig
	Store    *Store
	Renderer *Renderer
}

// NewLoader creates a Loader for the given content root and patterns.
func NewLoader(store *Store, dir string, include, exclude []string) *Loader {
	return &Loader{
		Walker: walker.WalkerConfig{
			RootDir: dir,
			Include: include,
			Exclude: exclude,
		},
		Store:    store,
		Renderer: NewRenderer(),
	}
}

// Result summarises one load.
type Result struct {
	Posts       int
	Skipped     int
	Fingerprint string
}

// Load walks the content root, parses and renders every published file,
// and replaces the store contents. Files that fail to parse are skipped
// and logged; a duplicate slug keeps the first file in path order.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	files, err := walker.Walk(l.Walker)
	if err != nil {
		return Result{}, fmt.Errorf("discovering content: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })

	res := Result{Fingerprint: walker.Fingerprint(files)}
	seen := make(map[string]string)
	var posts []*Post

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return Result{}, fmt.Errorf("reading %s: %w", f.RelPath, err)
		}
		p, err := Parse(f.RelPath, data)
		if err != nil {
			log.Printf("content: skipping %v", err)
			res.Skipped++
			continue
		}
		if p.Status == StatusDraft {
			res.Skipped++
			continue
		}
		if first, dup := seen[p.Slug]; dup {
			log.Printf("content: skipping %s: slug %q already used by %s", f.RelPath, p.Slug, first)
			res.Skipped++
			continue
		}
		seen[p.Slug] = f.RelPath

		if err := l.Renderer.Render(p); err != nil {
			return Result{}, err
		}
		posts = append(posts, p)
	}

	SortPosts(posts)
	if err := l.Store.Replace(ctx, posts); err != nil {
		return Result{}, err
	}
	res.Posts = len(posts)
	return res, nil
}

// Fingerprint hashes the current content files without loading them.
func (l *Loader) Fingerprint() (string, error) {
	files, err := walker.Walk(l.Walker)
	if err != nil {
		return "", fmt.Errorf("discovering content: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return walker.Fingerprint(files), nil
}

// SortPosts orders posts for the site: ascending front matter order, then
// newest first, then by title.
func SortPosts(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.Title < b.Title
	})
}
