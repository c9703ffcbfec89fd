package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/bookshell/internal/config"
	"github.com/ziadkadry99/bookshell/internal/content"
	"github.com/ziadkadry99/bookshell/internal/db"
	"github.com/ziadkadry99/bookshell/internal/state"
	"github.com/ziadkadry99/bookshell/internal/theme"
)

// Server serves the site pages, assets and live updates.
type Server struct {
	cfg        *config.Config
	db         *db.DB
	store      *content.Store
	theme      *theme.Theme
	global     *state.Global
	indexGrace time.Duration
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over the content in database. global carries the
// site loading flag pushed to browsers over /ws/live.
func New(cfg *config.Config, database *db.DB, global *state.Global) *Server {
	if global == nil {
		global = state.New()
	}
	s := &Server{
		cfg:        cfg,
		db:         database,
		store:      content.NewStore(database),
		theme:      theme.New(cfg, global),
		global:     global,
		indexGrace: cfg.Theme.IndexGrace(),
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.Server.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Long-lived, so outside the request timeout.
	r.Get("/ws/live", s.handleLive)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/assets/style.css", serveAsset("text/css; charset=utf-8", theme.StyleCSS))
		r.Get("/assets/script.js", serveAsset("application/javascript; charset=utf-8", theme.ScriptJS))

		r.Get("/", s.handleIndex)
		r.Get("/category", s.handleCategoryIndex)
		r.Get("/category/{name}", s.handleCategory)
		r.Get("/tag", s.handleTagIndex)
		r.Get("/tag/{name}", s.handleTag)
		r.Get("/archive", s.handleArchive)
		r.Get("/search", s.handleSearch)
		r.Get("/page/{n}", s.handlePostList)
		r.Get("/{slug}", s.handlePost)
		r.Post("/{slug}/unlock", s.handleUnlock)
	})
	r.NotFound(s.handleNotFound)

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// Store returns the content store pages are read from.
func (s *Server) Store() *content.Store { return s.store }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("bookshell server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func serveAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Write([]byte(body))
	}
}
