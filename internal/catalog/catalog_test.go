package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/nodescape/internal/scene"
)

func TestDefault(t *testing.T) {
	labels := Default()
	if len(labels) != 7 {
		t.Fatalf("expected 7 labels, got %d", len(labels))
	}
	var routes int
	for _, l := range labels {
		if r, ok := l.(*scene.RouteLabel); ok {
			routes++
			if r.Path != "/blog" {
				t.Errorf("unexpected route %q", r.Path)
			}
		}
	}
	if routes != 1 {
		t.Errorf("expected one route label, got %d", routes)
	}

	// fresh copies
	if Default()[0] == labels[0] {
		t.Error("Default should not share label values between calls")
	}
}

func TestParseVariants(t *testing.T) {
	labels, err := Parse([]byte(`
[[label]]
text = "src"
url = "https://example.com"
priority = 2

[[label]]
text = "home"
route = "/"

[[label]]
text = "about"
panel = "hi"
priority = 1
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := labels[0].(*scene.LinkLabel); !ok {
		t.Errorf("label 0: expected link, got %T", labels[0])
	}
	if _, ok := labels[1].(*scene.RouteLabel); !ok {
		t.Errorf("label 1: expected route, got %T", labels[1])
	}
	p, ok := labels[2].(*scene.PanelLabel)
	if !ok {
		t.Fatalf("label 2: expected panel, got %T", labels[2])
	}
	if p.Body != "hi" || p.Priority() != 1 || p.Role() != scene.RoleInterface {
		t.Errorf("unexpected panel label %+v", p)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"no target":   "[[label]]\ntext = \"x\"\n",
		"two targets": "[[label]]\ntext = \"x\"\nurl = \"u\"\npanel = \"p\"\n",
		"no text":     "[[label]]\nurl = \"u\"\n",
		"duplicate":   "[[label]]\ntext = \"x\"\nurl = \"u\"\n[[label]]\ntext = \"x\"\nroute = \"/\"\n",
		"empty":       "",
		"syntax":      "[[label]\n",
	}
	for name, doc := range tests {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	labels, err := LoadOrDefault(filepath.Join(dir, "missing.toml"))
	if err != nil || len(labels) != 7 {
		t.Fatalf("missing file should fall back to the default, got %d labels, err %v", len(labels), err)
	}

	path := filepath.Join(dir, "labels.toml")
	if err := os.WriteFile(path, []byte("[[label]]\ntext = \"one\"\nroute = \"/one\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	labels, err = LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if len(labels) != 1 || labels[0].Text() != "one" {
		t.Errorf("unexpected labels %v", labels)
	}

	if err := os.WriteFile(path, []byte("[[label]]\ntext = \"bad\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path); err == nil || !strings.Contains(err.Error(), "exactly one") {
		t.Errorf("expected a validation error, got %v", err)
	}
}
