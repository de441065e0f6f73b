package config

import "github.com/ziadkadry99/nodescape/internal/scene"

// Config is the top-level nodescape configuration, corresponding to nodescape.yml.
type Config struct {
	Site       SiteConfig   `yaml:"site" koanf:"site"`
	Scene      scene.Config `yaml:"scene" koanf:"scene"`
	LabelsFile string       `yaml:"labels_file" koanf:"labels_file"`
}

// SiteConfig holds the web server and static content settings.
type SiteConfig struct {
	Title           string `yaml:"title" koanf:"title"`
	Port            int    `yaml:"port" koanf:"port"`
	StaticDir       string `yaml:"static_dir" koanf:"static_dir"`
	PostsDir        string `yaml:"posts_dir" koanf:"posts_dir"`
	ArticleGlob     string `yaml:"article_glob" koanf:"article_glob"`
	DBPath          string `yaml:"db_path" koanf:"db_path"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	WatchDebounceMS int    `yaml:"watch_debounce_ms" koanf:"watch_debounce_ms"`
}
