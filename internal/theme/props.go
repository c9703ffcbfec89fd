package theme

import (
	g "maragu.dev/gomponents"

	"github.com/ziadkadry99/bookshell/internal/content"
	"github.com/ziadkadry99/bookshell/internal/nav"
)

// Meta describes the document head of a page.
type Meta struct {
	Title       string
	Description string
	Slug        string
}

// Props is the page data a layout variant receives from the web layer.
// The layout only reads it.
type Props struct {
	Meta  Meta
	Route string // request path, compared against the home route

	Post   *content.Post
	Notice *content.Post
	Prev   *content.Post
	Next   *content.Post

	Lock         bool
	UnlockAction string
	UnlockFailed bool

	AllNavPages []nav.Entry

	SlotLeft  g.Node
	SlotRight g.Node
	SlotTop   g.Node
}

// Link is a title and a path to it.
type Link struct {
	Title string
	Path  string
}

// MetaChips is what the category and tag chips need of a post.
type MetaChips struct {
	Category string
	Tags     []content.Tag
}

// Adjacent holds the neighbours of a post in reading order.
type Adjacent struct {
	Prev *Link
	Next *Link
}

// Empty reports whether there is neither a previous nor a next post.
func (a Adjacent) Empty() bool { return a.Prev == nil && a.Next == nil }

// ChipsView returns the chip data of the active post.
func (p Props) ChipsView() MetaChips {
	if p.Post == nil {
		return MetaChips{}
	}
	return MetaChips{Category: p.Post.Category, Tags: p.Post.Tags}
}

// AdjacentView returns links to the previous and next posts.
func (p Props) AdjacentView() Adjacent {
	return Adjacent{Prev: linkTo(p.Prev), Next: linkTo(p.Next)}
}

// TOC returns the table of contents of the active post. A locked post has
// none.
func (p Props) TOC() []content.TOCEntry {
	if p.Post == nil || p.Lock {
		return nil
	}
	return p.Post.TOC
}

// HeadMeta is the metadata published in the document head. A locked post
// keeps its summary out of the description.
func (p Props) HeadMeta() Meta {
	m := p.Meta
	if p.Lock {
		m.Description = ""
	}
	return m
}

// activeID identifies the entity a layout shows. Listing pages without a
// post are identified by their route.
func (p Props) activeID() string {
	if p.Post != nil {
		return p.Post.ID
	}
	return "route:" + p.Route
}

func linkTo(post *content.Post) *Link {
	if post == nil {
		return nil
	}
	return &Link{Title: post.Title, Path: post.Path()}
}
