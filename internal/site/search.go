package site

import (
	"encoding/json"
	"html"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ziadkadry99/bookshell/internal/content"
)

// maxSearchContent bounds the text stored per page in the search index.
const maxSearchContent = 2000

// SearchEntry represents a single searchable page of the site.
type SearchEntry struct {
	Path     string   `json:"path"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Content  string   `json:"content"`
}

// BuildSearchIndex builds the search index for posts. Notices are left
// out; locked posts are listed without their text.
func BuildSearchIndex(posts []*content.Post) []SearchEntry {
	strip := bluemonday.StrictPolicy()
	entries := make([]SearchEntry, 0, len(posts))
	for _, p := range posts {
		if p.Type == content.TypeNotice {
			continue
		}
		entry := SearchEntry{
			Path:     p.Path(),
			Title:    p.Title,
			Category: p.Category,
			Tags:     p.TagNames(),
		}
		if !p.Locked() {
			entry.Summary = p.Summary
			entry.Content = plainText(strip, p.HTML)
		}
		entries = append(entries, entry)
	}
	return entries
}

func plainText(strip *bluemonday.Policy, body string) string {
	text := html.UnescapeString(strip.Sanitize(body))
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > maxSearchContent {
		text = strings.ToValidUTF8(text[:maxSearchContent], "")
	}
	return text
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
