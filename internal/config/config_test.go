package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme.IndexPage != "welcome" {
		t.Errorf("expected default index_page %q, got %q", "welcome", cfg.Theme.IndexPage)
	}
	if !cfg.Theme.PostDetailCategory || !cfg.Theme.PostDetailTag {
		t.Error("expected category and tag chips enabled by default")
	}
	if cfg.Site.HomeRoute != "/" {
		t.Errorf("expected default home_route %q, got %q", "/", cfg.Site.HomeRoute)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if got := cfg.Theme.IndexGrace(); got != 7*time.Second {
		t.Errorf("IndexGrace() = %v, want 7s", got)
	}
}

func TestIndexGraceFallsBack(t *testing.T) {
	th := ThemeConfig{IndexGraceSeconds: 0}
	if th.IndexGrace() != DefaultIndexGrace {
		t.Errorf("IndexGrace() = %v, want %v", th.IndexGrace(), DefaultIndexGrace)
	}
	th.IndexGraceSeconds = 2
	if th.IndexGrace() != 2*time.Second {
		t.Errorf("IndexGrace() = %v, want 2s", th.IndexGrace())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.bookshell.yml")

	original := DefaultConfig()
	original.Site.Title = "Handbook"
	original.Theme.IndexPage = "getting-started"
	original.Theme.LayoutSidebarReverse = true
	original.Theme.PostDetailCategory = false
	original.Content.Dir = "pages"
	original.Server.Port = 9090

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Site.Title != original.Site.Title {
		t.Errorf("site.title: got %q, want %q", loaded.Site.Title, original.Site.Title)
	}
	if loaded.Theme.IndexPage != original.Theme.IndexPage {
		t.Errorf("theme.index_page: got %q, want %q", loaded.Theme.IndexPage, original.Theme.IndexPage)
	}
	if !loaded.Theme.LayoutSidebarReverse {
		t.Error("theme.layout_sidebar_reverse: got false, want true")
	}
	if loaded.Theme.PostDetailCategory {
		t.Error("theme.post_detail_category: got true, want false")
	}
	if loaded.Content.Dir != "pages" {
		t.Errorf("content.dir: got %q, want %q", loaded.Content.Dir, "pages")
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("server.port: got %d, want 9090", loaded.Server.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Theme.IndexPage != "welcome" {
		t.Errorf("expected default index page, got %q", cfg.Theme.IndexPage)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("BOOKSHELL_THEME__INDEX_PAGE", "intro")
	t.Setenv("BOOKSHELL_DATA_DIR", "/tmp/shelf")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Theme.IndexPage != "intro" {
		t.Errorf("env override failed: got %q, want %q", loaded.Theme.IndexPage, "intro")
	}
	if loaded.DataDir != "/tmp/shelf" {
		t.Errorf("env override failed: got %q, want %q", loaded.DataDir, "/tmp/shelf")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yml")
	if err := os.WriteFile(path, []byte("site: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty title", func(c *Config) { c.Site.Title = "" }, true},
		{"relative home route", func(c *Config) { c.Site.HomeRoute = "home" }, true},
		{"empty index page", func(c *Config) { c.Theme.IndexPage = "" }, true},
		{"index page with path", func(c *Config) { c.Theme.IndexPage = "docs/welcome" }, true},
		{"negative grace", func(c *Config) { c.Theme.IndexGraceSeconds = -1 }, true},
		{"empty content dir", func(c *Config) { c.Content.Dir = "" }, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	for _, s := range []string{"80", "8080", "65535"} {
		if err := validatePort(s); err != nil {
			t.Errorf("validatePort(%q) = %v, want nil", s, err)
		}
	}
	for _, s := range []string{"", "abc", "0", "70000"} {
		if err := validatePort(s); err == nil {
			t.Errorf("validatePort(%q) = nil, want error", s)
		}
	}
}
