package articles

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func writePage(t *testing.T, root, rel, title string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	page := "<html><head><title>" + title + "</title></head><body><p>" + title + " body</p></body></html>"
	if err := os.WriteFile(p, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIndexerIndexesAndPrunes(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "blog/first.html", "First")
	writePage(t, root, "blog/2024/second.html", "Second")
	writePage(t, root, "other/ignored.html", "Ignored")

	store := setupStore(t)
	ix := NewIndexer(root, "blog/**/*.html", store, zap.NewNop())
	ctx := context.Background()

	n, err := ix.Index(ctx)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if n != 2 {
		t.Fatalf("indexed %d pages, want 2", n)
	}
	second, err := store.Get(ctx, "second")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if second.Title != "Second" || second.Source != "blog/2024/second.html" {
		t.Errorf("unexpected article %+v", second)
	}

	if err := os.Remove(filepath.Join(root, "blog", "first.html")); err != nil {
		t.Fatal(err)
	}
	if n, err = ix.Index(ctx); err != nil || n != 1 {
		t.Fatalf("reindex: n=%d err=%v", n, err)
	}
	if _, err := store.Get(ctx, "first"); err == nil {
		t.Error("removed page should be pruned from the index")
	}
}

func TestIndexerMatches(t *testing.T) {
	ix := NewIndexer("/srv", "blog/**/*.html", nil, nil)
	for rel, want := range map[string]bool{
		"blog/a.html":     true,
		"blog/x/y/b.html": true,
		"blog/a.md":       false,
		"index.html":      false,
	} {
		if got := ix.Matches(rel); got != want {
			t.Errorf("Matches(%q) = %v, want %v", rel, got, want)
		}
	}
}

func TestWatcherReindexesOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))

	root := t.TempDir()
	store := setupStore(t)
	ix := NewIndexer(root, "blog/**/*.html", store, zap.NewNop())
	w, err := NewWatcher(ix, 20*time.Millisecond, zap.NewNop())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	indexed := make(chan int, 8)
	w.onIndex = func(n int) { indexed <- n }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// blog/ is created after the watch starts, so this also covers new directories.
	if err := os.MkdirAll(filepath.Join(root, "blog"), 0o755); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	for {
		writePage(t, root, "blog/live.html", "Live")
		select {
		case <-indexed:
		case <-time.After(200 * time.Millisecond):
			continue
		case <-deadline:
			t.Fatal("watcher never reindexed")
		}
		if _, err := store.Get(context.Background(), "live"); err == nil {
			break
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run: %v", err)
	}
}
