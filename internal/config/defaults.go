package config

import (
	"time"

	"github.com/ziadkadry99/nodescape/internal/scene"
)

// DefaultPath is where the CLI looks for configuration.
const DefaultPath = "nodescape.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:           "nodescape",
			Port:            8080,
			StaticDir:       "static",
			PostsDir:        "posts",
			ArticleGlob:     "blog/**/*.html",
			DBPath:          ".nodescape/index.db",
			WatchDebounceMS: 500,
		},
		Scene: scene.DefaultConfig(),
	}
}

// WatchDebounce is the quiet period before the article index is rebuilt.
func (s SiteConfig) WatchDebounce() time.Duration {
	return time.Duration(s.WatchDebounceMS) * time.Millisecond
}
