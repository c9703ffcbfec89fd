package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ziadkadry99/bookshell/internal/db"
	"github.com/ziadkadry99/bookshell/internal/nav"
)

// Store provides read access to the loaded posts.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// ListFilter controls which posts are returned by List.
type ListFilter struct {
	Type     Type
	Category string
	Tag      string
	Limit    int
	Offset   int
}

const postColumns = `id, slug, title, type, status, category, summary, published_at, password, body, html, toc, position`

// Replace swaps the whole post set in one transaction. Posts keep the
// order they are given in.
func (s *Store) Replace(ctx context.Context, posts []*Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags`); err != nil {
		return fmt.Errorf("clearing tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return fmt.Errorf("clearing posts: %w", err)
	}

	for i, p := range posts {
		toc, err := json.Marshal(p.TOC)
		if err != nil {
			return fmt.Errorf("marshalling toc for %s: %w", p.Slug, err)
		}
		var published sql.NullTime
		if !p.Date.IsZero() {
			published = sql.NullTime{Time: p.Date.UTC(), Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO posts (`+postColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Slug, p.Title, string(p.Type), p.Status, p.Category, p.Summary,
			published, p.Password, p.Body, p.HTML, string(toc), i,
		)
		if err != nil {
			return fmt.Errorf("inserting post %s: %w", p.Slug, err)
		}
		for j, t := range p.Tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO post_tags (post_id, name, color, position) VALUES (?, ?, ?, ?)`,
				p.ID, t.Name, t.Color, j); err != nil {
				return fmt.Errorf("inserting tag %s for %s: %w", t.Name, p.Slug, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing replace: %w", err)
	}
	return nil
}

// BySlug retrieves a single post. Returns ErrNotFound if the slug is unknown.
func (s *Store) BySlug(ctx context.Context, slug string) (*Post, error) {
	posts, err := s.query(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}
	return posts[0], nil
}

// Has reports whether a post with the slug exists.
func (s *Store) Has(ctx context.Context, slug string) bool {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE slug = ?`, slug).Scan(&n)
	return err == nil && n > 0
}

// List returns posts matching the filter in site order.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]*Post, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Tag != "" {
		clauses = append(clauses, "id IN (SELECT post_id FROM post_tags WHERE name = ?)")
		args = append(args, filter.Tag)
	}

	q := `SELECT ` + postColumns + ` FROM posts`
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY position"
	if filter.Limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}
	return s.query(ctx, q, args...)
}

// Adjacent returns the posts before and after p among articles of type
// Post. Either may be nil.
func (s *Store) Adjacent(ctx context.Context, p *Post) (prev, next *Post, err error) {
	if p == nil || p.Type != TypePost {
		return nil, nil, nil
	}
	before, err := s.query(ctx, `SELECT `+postColumns+` FROM posts
		WHERE type = 'Post' AND position < ? ORDER BY position DESC LIMIT 1`, p.Order)
	if err != nil {
		return nil, nil, err
	}
	after, err := s.query(ctx, `SELECT `+postColumns+` FROM posts
		WHERE type = 'Post' AND position > ? ORDER BY position LIMIT 1`, p.Order)
	if err != nil {
		return nil, nil, err
	}
	if len(before) > 0 {
		prev = before[0]
	}
	if len(after) > 0 {
		next = after[0]
	}
	return prev, next, nil
}

// Notice returns the first announcement, or nil when there is none.
func (s *Store) Notice(ctx context.Context) (*Post, error) {
	posts, err := s.List(ctx, ListFilter{Type: TypeNotice, Limit: 1})
	if err != nil || len(posts) == 0 {
		return nil, err
	}
	return posts[0], nil
}

// NavEntries returns every post and page as navigation entries in site order.
func (s *Store) NavEntries(ctx context.Context) ([]nav.Entry, error) {
	posts, err := s.query(ctx, `SELECT `+postColumns+` FROM posts WHERE type != 'Notice' ORDER BY position`)
	if err != nil {
		return nil, err
	}
	entries := make([]nav.Entry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, p.NavEntry())
	}
	return entries, nil
}

// Categories returns each category with its post count, most used first.
func (s *Store) Categories(ctx context.Context) ([]Count, error) {
	return s.counts(ctx, `SELECT category, COUNT(*) FROM posts
		WHERE category != '' AND type = 'Post' GROUP BY category ORDER BY COUNT(*) DESC, category`)
}

// Tags returns each tag with its post count, most used first.
func (s *Store) Tags(ctx context.Context) ([]Count, error) {
	return s.counts(ctx, `SELECT t.name, COUNT(*) FROM post_tags t JOIN posts p ON p.id = t.post_id
		WHERE p.type = 'Post' GROUP BY t.name ORDER BY COUNT(*) DESC, t.name`)
}

// Count returns the number of stored posts of all types.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return n, nil
}

func (s *Store) counts(ctx context.Context, q string) ([]Count, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying counts: %w", err)
	}
	defer rows.Close()

	var out []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// query runs a post select and attaches tags. Rows are fully read before
// tags are fetched so a single-connection pool never blocks.
func (s *Store) query(ctx context.Context, q string, args ...any) ([]*Post, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}

	var posts []*Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := s.attachTags(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Store) attachTags(ctx context.Context, posts []*Post) error {
	if len(posts) == 0 {
		return nil
	}
	byID := make(map[string]*Post, len(posts))
	placeholders := make([]string, 0, len(posts))
	args := make([]any, 0, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
		placeholders = append(placeholders, "?")
		args = append(args, p.ID)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT post_id, name, color FROM post_tags
		WHERE post_id IN (`+strings.Join(placeholders, ",")+`) ORDER BY post_id, position`, args...)
	if err != nil {
		return fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var t Tag
		if err := rows.Scan(&id, &t.Name, &t.Color); err != nil {
			return fmt.Errorf("scanning tag: %w", err)
		}
		if p := byID[id]; p != nil {
			p.Tags = append(p.Tags, t)
		}
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*Post, error) {
	var (
		p         Post
		typ       string
		published sql.NullTime
		toc       string
	)
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &typ, &p.Status, &p.Category, &p.Summary,
		&published, &p.Password, &p.Body, &p.HTML, &toc, &p.Order)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning post: %w", err)
	}
	p.Type = Type(typ)
	if published.Valid {
		p.Date = published.Time
	}
	if err := json.Unmarshal([]byte(toc), &p.TOC); err != nil {
		return nil, fmt.Errorf("decoding toc for %s: %w", p.Slug, err)
	}
	return &p, nil
}
