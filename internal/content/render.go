package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Renderer converts post bodies to sanitized HTML and extracts their
// table of contents.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	// MinLevel and MaxLevel bound the heading levels listed in the TOC.
	MinLevel int
	MaxLevel int
}

// NewRenderer creates a Renderer with GFM, syntax highlighting and heading IDs.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").OnElements("code", "pre", "span", "div")
	policy.AllowAttrs("style").OnElements("pre", "span")

	return &Renderer{md: md, policy: policy, MinLevel: 2, MaxLevel: 4}
}

// Render fills p.HTML and p.TOC from p.Body.
func (r *Renderer) Render(p *Post) error {
	src := []byte(p.Body)

	doc := r.md.Parser().Parse(text.NewReader(src))
	p.TOC = r.collectTOC(doc, src)

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return fmt.Errorf("rendering %s: %w", p.Slug, err)
	}
	p.HTML = r.policy.Sanitize(buf.String())
	return nil
}

// collectTOC walks the parsed document for headings within the level range.
func (r *Renderer) collectTOC(doc ast.Node, src []byte) []TOCEntry {
	var toc []TOCEntry
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level < r.MinLevel || h.Level > r.MaxLevel {
			return ast.WalkSkipChildren, nil
		}
		entry := TOCEntry{Level: h.Level, Text: strings.TrimSpace(inlineText(h, src))}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				entry.ID = string(b)
			}
		}
		toc = append(toc, entry)
		return ast.WalkSkipChildren, nil
	})
	return toc
}

// inlineText concatenates the text segments below n.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(inlineText(c, src))
		}
	}
	return b.String()
}
