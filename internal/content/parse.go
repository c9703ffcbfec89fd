package content

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type frontMatter struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Slug     string   `yaml:"slug"`
	Type     string   `yaml:"type"`
	Status   string   `yaml:"status"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Summary  string   `yaml:"summary"`
	Date     string   `yaml:"date"`
	Password string   `yaml:"password"`
	Order    int      `yaml:"order"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// TagPalette holds the chip colors assigned to tags by name.
var TagPalette = []string{"gray", "brown", "orange", "yellow", "green", "blue", "purple", "pink", "red"}

// Parse turns one markdown file into a Post. relPath is the file path
// relative to the content root and supplies the default slug.
func Parse(relPath string, data []byte) (*Post, error) {
	fm, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", relPath, err)
	}

	p := &Post{
		ID:        fm.ID,
		Title:     strings.TrimSpace(fm.Title),
		Slug:      cleanSlug(fm.Slug),
		Type:      Type(fm.Type),
		Status:    fm.Status,
		Category:  strings.TrimSpace(fm.Category),
		Summary:   strings.TrimSpace(fm.Summary),
		Password:  fm.Password,
		Order:     fm.Order,
		SourceRel: relPath,
	}

	if p.Slug == "" {
		p.Slug = slugFromPath(relPath)
	}
	if p.Slug == "." || p.Slug == ".." {
		return nil, fmt.Errorf("parsing %s: invalid slug %q", relPath, p.Slug)
	}
	if p.Title == "" {
		p.Title, body = takeTitle(body, relPath)
	}
	if p.ID == "" {
		p.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("bookshell:"+p.Slug)).String()
	}
	switch p.Type {
	case "":
		p.Type = TypePost
	case TypePost, TypePage, TypeNotice:
	default:
		return nil, fmt.Errorf("parsing %s: unknown type %q", relPath, fm.Type)
	}
	if p.Status == "" {
		p.Status = StatusPublished
	}
	if fm.Date != "" {
		d, err := parseDate(fm.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", relPath, err)
		}
		p.Date = d
	}
	for _, name := range fm.Tags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p.Tags = append(p.Tags, Tag{Name: name, Color: tagColor(name)})
	}

	p.Body = body
	return p, nil
}

// splitFrontMatter separates a leading "---" YAML block from the body.
func splitFrontMatter(data []byte) (frontMatter, string, error) {
	var fm frontMatter
	text := string(bytes.TrimPrefix(data, []byte("\ufeff")))
	text = strings.ReplaceAll(text, "\r\n", "\n")

	if !strings.HasPrefix(text, "---\n") {
		return fm, text, nil
	}
	// Keep the newline so an empty block ("---\n---") is found too.
	rest := text[len("---"):]
	end := strings.Index(rest, "\n---")
	if end == -1 {
		return fm, "", fmt.Errorf("unterminated front matter")
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return fm, "", fmt.Errorf("front matter: %w", err)
	}
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return fm, body, nil
}

// takeTitle pulls the first # heading out of the body, or falls back to
// the file name.
func takeTitle(body, relPath string) (string, string) {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			title := strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			rest := append(lines[:i:i], lines[i+1:]...)
			return title, strings.TrimLeft(strings.Join(rest, "\n"), "\n")
		}
	}
	base := path.Base(relPath)
	return strings.TrimSuffix(base, path.Ext(base)), body
}

func slugFromPath(relPath string) string {
	p := strings.TrimSuffix(relPath, path.Ext(relPath))
	return cleanSlug(strings.ToLower(p))
}

// cleanSlug keeps a slug to one URL path segment. Separators become "-".
func cleanSlug(s string) string {
	s = strings.Trim(strings.TrimSpace(s), `/\`)
	return strings.NewReplacer("/", "-", `\`, "-").Replace(s)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func tagColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return TagPalette[h.Sum32()%uint32(len(TagPalette))]
}
