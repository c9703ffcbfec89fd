// Package content loads markdown posts, renders them, and serves them from
// a SQLite-backed store.
package content

import (
	"errors"
	"time"

	"github.com/ziadkadry99/bookshell/internal/nav"
)

// ErrNotFound is returned when no post matches a lookup.
var ErrNotFound = errors.New("content: not found")

// Type distinguishes articles from standalone pages and announcements.
type Type string

const (
	TypePost   Type = "Post"
	TypePage   Type = "Page"
	TypeNotice Type = "Notice"
)

// Status values recognised in front matter.
const (
	StatusPublished = "Published"
	StatusDraft     = "Draft"
)

// Tag is a label attached to a post.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TOCEntry is one in-page section anchor.
type TOCEntry struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Post is a single content entity.
type Post struct {
	ID        string
	Slug      string
	Title     string
	Type      Type
	Status    string
	Category  string
	Tags      []Tag
	Summary   string
	Date      time.Time
	Password  string
	Body      string // markdown source without front matter
	HTML      string // sanitized rendered body
	TOC       []TOCEntry
	Order     int
	SourceRel string
}

// Path returns the site route of the post.
func (p *Post) Path() string {
	return "/" + p.Slug
}

// Locked reports whether the post requires a password.
func (p *Post) Locked() bool {
	return p.Password != ""
}

// TagNames returns the tag names in order.
func (p *Post) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

// NavEntry converts the post into a navigation entry.
func (p *Post) NavEntry() nav.Entry {
	return nav.Entry{
		ID:       p.ID,
		Title:    p.Title,
		Slug:     p.Slug,
		Path:     p.Path(),
		Category: p.Category,
		Tags:     p.TagNames(),
		Type:     string(p.Type),
	}
}

// Count is a category or tag name with the number of posts using it.
type Count struct {
	Name  string
	Count int
}
