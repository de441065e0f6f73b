package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: NODESCAPE_SCENE__NODE_COUNT sets scene.node_count.
const EnvPrefix = "NODESCAPE_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (NODESCAPE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Site.Port <= 0 || c.Site.Port > 65535 {
		return fmt.Errorf("site.port %d out of range", c.Site.Port)
	}
	if c.Site.StaticDir == "" {
		return fmt.Errorf("site.static_dir is required")
	}
	if c.Site.DBPath == "" {
		return fmt.Errorf("site.db_path is required")
	}
	if !doublestar.ValidatePattern(c.Site.ArticleGlob) || c.Site.ArticleGlob == "" {
		return fmt.Errorf("invalid site.article_glob %q", c.Site.ArticleGlob)
	}
	if c.Site.WatchDebounceMS < 0 {
		return fmt.Errorf("site.watch_debounce_ms must be non-negative")
	}
	if err := c.Scene.Validate(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	return nil
}
