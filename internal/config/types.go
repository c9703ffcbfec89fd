package config

// Config is the top-level bookshell configuration, corresponding to .bookshell.yml.
type Config struct {
	Site    SiteConfig    `yaml:"site" koanf:"site"`
	Theme   ThemeConfig   `yaml:"theme" koanf:"theme"`
	Content ContentConfig `yaml:"content" koanf:"content"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	DataDir string        `yaml:"data_dir" koanf:"data_dir"`
}

// SiteConfig describes the site as a whole.
type SiteConfig struct {
	Title       string `yaml:"title" koanf:"title"`
	Description string `yaml:"description" koanf:"description"`
	Author      string `yaml:"author" koanf:"author"`
	Lang        string `yaml:"lang" koanf:"lang"`
	BaseURL     string `yaml:"base_url" koanf:"base_url"`
	HomeRoute   string `yaml:"home_route" koanf:"home_route"`
}

// ThemeConfig holds the gitbook theme switches.
type ThemeConfig struct {
	// IndexPage is the slug the index route redirects to.
	IndexPage            string `yaml:"index_page" koanf:"index_page"`
	IndexGraceSeconds    int    `yaml:"index_grace_seconds" koanf:"index_grace_seconds"`
	LayoutSidebarReverse bool   `yaml:"layout_sidebar_reverse" koanf:"layout_sidebar_reverse"`
	PostDetailCategory   bool   `yaml:"post_detail_category" koanf:"post_detail_category"`
	PostDetailTag        bool   `yaml:"post_detail_tag" koanf:"post_detail_tag"`
	WidgetRevolverMaps   bool   `yaml:"widget_revolver_maps" koanf:"widget_revolver_maps"`
	AdClient             string `yaml:"ad_client" koanf:"ad_client"`
	Debug                bool   `yaml:"debug" koanf:"debug"`
}

// ContentConfig controls where posts are read from.
type ContentConfig struct {
	Dir     string   `yaml:"dir" koanf:"dir"`
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
	Watch   bool     `yaml:"watch" koanf:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}
