package config

import "time"

// DefaultIndexGrace is how long the index redirect waits for the landing
// post before showing the configuration diagnostic.
const DefaultIndexGrace = 7 * time.Second

// DefaultExcludes are glob patterns never treated as content.
var DefaultExcludes = []string{
	"drafts/**",
	"**/_*.md",
	"README.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:     "Bookshell",
			Lang:      "en",
			HomeRoute: "/",
		},
		Theme: ThemeConfig{
			IndexPage:          "welcome",
			IndexGraceSeconds:  int(DefaultIndexGrace / time.Second),
			PostDetailCategory: true,
			PostDetailTag:      true,
		},
		Content: ContentConfig{
			Dir:     "content",
			Include: []string{"**/*.md"},
			Exclude: DefaultExcludes,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		DataDir: ".bookshell",
	}
}

// IndexGrace returns the configured grace period as a duration.
func (t ThemeConfig) IndexGrace() time.Duration {
	if t.IndexGraceSeconds <= 0 {
		return DefaultIndexGrace
	}
	return time.Duration(t.IndexGraceSeconds) * time.Second
}
