package server

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	g "maragu.dev/gomponents"

	"github.com/ziadkadry99/bookshell/internal/content"
	"github.com/ziadkadry99/bookshell/internal/nav"
	"github.com/ziadkadry99/bookshell/internal/theme"
)

// pageSize is the number of posts per /page/{n} listing.
const pageSize = 10

// baseProps loads the data every page needs: the navigation entries and
// the site notice.
func (s *Server) baseProps(ctx context.Context, route string) (theme.Props, error) {
	entries, err := s.store.NavEntries(ctx)
	if err != nil {
		return theme.Props{}, err
	}
	notice, err := s.store.Notice(ctx)
	if err != nil {
		return theme.Props{}, err
	}
	return theme.Props{Route: route, Notice: notice, AllNavPages: entries}, nil
}

// mount creates the page for one request and applies the drawer and
// filter query parameters.
func (s *Server) mount(r *http.Request, props theme.Props) *theme.Page {
	page := s.theme.Mount(props)
	ctx := page.Context()
	q := r.URL.Query()
	if q.Get("toc") == "1" {
		ctx.SetVisible(theme.DrawerTOC, true)
	}
	if q.Get("nav") == "1" {
		ctx.SetVisible(theme.DrawerNav, true)
	}
	if c := q.Get("category"); c != "" {
		ctx.Filter(nav.ByCategory(c))
	}
	if t := q.Get("tag"); t != "" {
		ctx.Filter(nav.ByTag(t))
	}
	return page
}

func writePage(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		log.Printf("server: rendering page: %v", err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	log.Printf("server: %v", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// handleIndex sends the visitor to the configured landing page. When that
// page does not exist yet, it waits out the grace period, since a content
// reload may still bring it, and renders a diagnostic if it never shows up.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	slug := s.cfg.Theme.IndexPage
	target := "/" + url.PathEscape(slug)

	redirect := theme.NewIndexRedirect(slug,
		theme.NavigatorFunc(func(ctx context.Context, _ string) error { return ctx.Err() }),
		theme.ProbeFunc(func(slug string) bool { return s.store.Has(context.Background(), slug) }),
		theme.WithGrace(s.indexGrace),
	)
	if err := redirect.Mount(r.Context()); err != nil {
		return
	}
	if s.store.Has(r.Context(), slug) {
		redirect.Unmount()
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	select {
	case <-redirect.Done():
	case <-r.Context().Done():
		redirect.Unmount()
		return
	}
	if !redirect.Failed() {
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	log.Printf("server: no page with slug %q; check theme.index_page", slug)
	props, err := s.baseProps(r.Context(), "/")
	if err != nil {
		s.internalError(w, err)
		return
	}
	writePage(w, http.StatusOK, redirect.Render(s.mount(r, props)))
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	post, err := s.store.BySlug(ctx, slug)
	if errors.Is(err, content.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	props, err := s.postProps(ctx, post, r.URL.Path)
	if err != nil {
		s.internalError(w, err)
		return
	}
	props.Lock = post.Locked() && !unlocked(r, post)
	writePage(w, http.StatusOK, s.mount(r, props).Slug())
}

func (s *Server) postProps(ctx context.Context, post *content.Post, route string) (theme.Props, error) {
	props, err := s.baseProps(ctx, route)
	if err != nil {
		return props, err
	}
	prev, next, err := s.store.Adjacent(ctx, post)
	if err != nil {
		return props, err
	}
	props.Meta = theme.Meta{Title: post.Title, Description: post.Summary, Slug: post.Slug}
	props.Post = post
	props.Prev, props.Next = prev, next
	props.UnlockAction = post.Path() + "/unlock"
	return props, nil
}

// handleUnlock checks the password of a locked post. A match sets a cookie
// for the post and redirects back to it; a miss re-renders the lock form.
func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	post, err := s.store.BySlug(ctx, slug)
	if errors.Is(err, content.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	if !post.Locked() {
		http.Redirect(w, r, "/"+url.PathEscape(slug), http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	given := r.PostForm.Get("password")
	if subtle.ConstantTimeCompare([]byte(given), []byte(post.Password)) == 1 {
		http.SetCookie(w, &http.Cookie{
			Name:     unlockCookieName(post),
			Value:    unlockToken(post),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/"+url.PathEscape(slug), http.StatusSeeOther)
		return
	}

	props, err := s.postProps(ctx, post, "/"+slug)
	if err != nil {
		s.internalError(w, err)
		return
	}
	props.Lock = true
	props.UnlockFailed = true
	writePage(w, http.StatusUnauthorized, s.mount(r, props).Slug())
}

func unlockCookieName(post *content.Post) string {
	sum := sha256.Sum256([]byte(post.ID))
	return "bookshell_unlock_" + hex.EncodeToString(sum[:6])
}

func unlockToken(post *content.Post) string {
	sum := sha256.Sum256([]byte(post.ID + "\x00" + post.Password))
	return hex.EncodeToString(sum[:])
}

func unlocked(r *http.Request, post *content.Post) bool {
	c, err := r.Cookie(unlockCookieName(post))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(unlockToken(post))) == 1
}

func (s *Server) handleCategoryIndex(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.Categories(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.renderCounts(w, r, "Categories", counts, (*theme.Page).CategoryIndex)
}

func (s *Server) handleTagIndex(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.Tags(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.renderCounts(w, r, "Tags", counts, (*theme.Page).TagIndex)
}

func (s *Server) renderCounts(w http.ResponseWriter, r *http.Request, title string, counts []content.Count, variant func(*theme.Page, []content.Count) g.Node) {
	props, err := s.baseProps(r.Context(), r.URL.Path)
	if err != nil {
		s.internalError(w, err)
		return
	}
	props.Meta = theme.Meta{Title: title}
	writePage(w, http.StatusOK, variant(s.mount(r, props), counts))
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	s.renderFiltered(w, r, "Category: "+nav.GroupTitle(name, name), nav.ByCategory(name))
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	s.renderFiltered(w, r, "Tag: "+name, nav.ByTag(name))
}

// pathParam returns a decoded route parameter. chi matches on the raw
// path when it holds escapes such as %2F, leaving those in the value.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if d, err := url.PathUnescape(v); err == nil {
		return d
	}
	return v
}

func (s *Server) renderFiltered(w http.ResponseWriter, r *http.Request, title string, pred nav.Predicate) {
	props, err := s.baseProps(r.Context(), r.URL.Path)
	if err != nil {
		s.internalError(w, err)
		return
	}
	props.Meta = theme.Meta{Title: title}
	page := s.mount(r, props)
	page.Context().Filter(pred)
	writePage(w, http.StatusOK, page.PostList())
}

func (s *Server) handlePostList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 {
		s.handleNotFound(w, r)
		return
	}
	posts, err := s.store.List(ctx, content.ListFilter{Type: content.TypePost, Limit: pageSize, Offset: (n - 1) * pageSize})
	if err != nil {
		s.internalError(w, err)
		return
	}
	if len(posts) == 0 && n > 1 {
		s.handleNotFound(w, r)
		return
	}

	ids := make(map[string]bool, len(posts))
	for _, p := range posts {
		ids[p.ID] = true
	}
	props, err := s.baseProps(ctx, r.URL.Path)
	if err != nil {
		s.internalError(w, err)
		return
	}
	props.Meta = theme.Meta{Title: fmt.Sprintf("Page %d", n)}
	page := s.mount(r, props)
	page.Context().Filter(func(e nav.Entry) bool { return ids[e.ID] })
	writePage(w, http.StatusOK, page.PostList())
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	posts, err := s.store.List(ctx, content.ListFilter{Type: content.TypePost})
	if err != nil {
		s.internalError(w, err)
		return
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date.After(posts[j].Date) })

	props, err := s.baseProps(ctx, r.URL.Path)
	if err != nil {
		s.internalError(w, err)
		return
	}
	props.Meta = theme.Meta{Title: "Archive"}
	writePage(w, http.StatusOK, s.mount(r, props).Archive(posts))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	props, err := s.baseProps(r.Context(), r.URL.Path)
	if err != nil {
		s.internalError(w, err)
		return
	}
	props.Meta = theme.Meta{Title: "Search"}
	writePage(w, http.StatusOK, s.mount(r, props).Search(q))
}

// handleNotFound renders the 404 page with the full chrome. If even the
// navigation cannot be loaded, the chrome renders without it.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	props, err := s.baseProps(r.Context(), r.URL.Path)
	if err != nil {
		log.Printf("server: loading navigation for 404: %v", err)
		props = theme.Props{Route: r.URL.Path}
	}
	props.Meta = theme.Meta{Title: "Not found"}
	writePage(w, http.StatusNotFound, s.mount(r, props).NotFound())
}
