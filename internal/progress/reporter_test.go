package progress

import (
	"bytes"
	"testing"
)

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LineReporter{w: &buf, task: "build"}
	r.Start(2)
	r.Step("a.md")
	r.Step("b.md")
	r.Finish()

	want := "build: 2 items\n[1/2] a.md\n[2/2] b.md\nbuild: done\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestNewPicksLineReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := New(&bytes.Buffer{}, "x").(*LineReporter); !ok {
		t.Error("expected a line reporter under CI")
	}
}

func TestNewPicksBarOutsideCI(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	r := New(&bytes.Buffer{}, "x")
	if _, ok := r.(*BarReporter); !ok {
		t.Fatalf("expected a bar reporter, got %T", r)
	}
	r.Start(1)
	r.Step("one")
	r.Finish()
}
