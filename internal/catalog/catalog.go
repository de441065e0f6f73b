// Package catalog loads the static label set carried by scene nodes.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ziadkadry99/nodescape/internal/scene"
)

//go:embed default.toml
var defaultCatalog []byte

type entry struct {
	Text     string `toml:"text"`
	URL      string `toml:"url"`
	Route    string `toml:"route"`
	Panel    string `toml:"panel"`
	Priority int    `toml:"priority"`
}

type file struct {
	Labels []entry `toml:"label"`
}

// Load reads a catalog file.
func Load(path string) ([]scene.Label, error) {
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return build(f)
}

// LoadOrDefault reads path, falling back to the built-in catalog when path
// is empty or does not exist.
func LoadOrDefault(path string) ([]scene.Label, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes catalog TOML.
func Parse(data []byte) ([]scene.Label, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return build(f)
}

// Default returns a fresh copy of the built-in seven-label catalog.
func Default() []scene.Label {
	labels, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return labels
}

func build(f file) ([]scene.Label, error) {
	if len(f.Labels) == 0 {
		return nil, fmt.Errorf("catalog has no labels")
	}
	seen := make(map[string]bool, len(f.Labels))
	labels := make([]scene.Label, 0, len(f.Labels))
	for i, e := range f.Labels {
		l, err := e.label()
		if err != nil {
			return nil, fmt.Errorf("label %d: %w", i+1, err)
		}
		if seen[e.Text] {
			return nil, fmt.Errorf("label %d: duplicate text %q", i+1, e.Text)
		}
		seen[e.Text] = true
		labels = append(labels, l)
	}
	return labels, nil
}

func (e entry) label() (scene.Label, error) {
	if e.Text == "" {
		return nil, fmt.Errorf("text is required")
	}
	set := 0
	for _, v := range []string{e.URL, e.Route, e.Panel} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%q: exactly one of url, route or panel must be set", e.Text)
	}
	switch {
	case e.URL != "":
		return &scene.LinkLabel{Title: e.Text, Rank: e.Priority, URL: e.URL}, nil
	case e.Route != "":
		return &scene.RouteLabel{Title: e.Text, Rank: e.Priority, Path: e.Route}, nil
	default:
		return &scene.PanelLabel{Title: e.Text, Rank: e.Priority, Body: e.Panel}, nil
	}
}
