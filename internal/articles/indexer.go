package articles

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nodescape/internal/logging"
)

// Indexer scans the static tree for article pages and keeps the Store in
// step with it.
type Indexer struct {
	root    string
	pattern string
	store   *Store
	log     *zap.Logger
}

// NewIndexer indexes files under root matching a doublestar pattern such as
// "blog/**/*.html".
func NewIndexer(root, pattern string, store *Store, logger *zap.Logger) *Indexer {
	logger = logging.OrNop(logger)
	return &Indexer{root: root, pattern: pattern, store: store, log: logger}
}

// Root is the directory being indexed.
func (ix *Indexer) Root() string { return ix.root }

// Matches reports whether rel, a slash-separated path below the root, is an
// article page.
func (ix *Indexer) Matches(rel string) bool {
	ok, err := doublestar.Match(ix.pattern, rel)
	return err == nil && ok
}

// Index parses every matching page, upserts it and removes articles whose
// page is gone. Pages that cannot be read are logged and skipped.
func (ix *Indexer) Index(ctx context.Context) (int, error) {
	fsys := os.DirFS(ix.root)
	matches, err := doublestar.Glob(fsys, ix.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return 0, fmt.Errorf("globbing %s: %w", ix.pattern, err)
	}

	slugs := make([]string, 0, len(matches))
	seen := make(map[string]string, len(matches))
	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return len(slugs), err
		}
		slug := Slug(rel)
		if prev, dup := seen[slug]; dup {
			ix.log.Warn("duplicate article slug, skipping", zap.String("slug", slug),
				zap.String("path", rel), zap.String("kept", prev))
			continue
		}

		a, err := ix.parseFile(fsys, rel)
		if err != nil {
			ix.log.Warn("skipping article", zap.String("path", rel), zap.Error(err))
			continue
		}
		if err := ix.store.Upsert(ctx, a); err != nil {
			return len(slugs), err
		}
		seen[slug] = rel
		slugs = append(slugs, slug)
	}

	removed, err := ix.store.DeleteMissing(ctx, slugs)
	if err != nil {
		return len(slugs), err
	}
	ix.log.Info("articles indexed",
		zap.Int("indexed", len(slugs)),
		zap.Int64("removed", removed),
		zap.String("root", ix.root))
	return len(slugs), nil
}

func (ix *Indexer) parseFile(fsys fs.FS, rel string) (Article, error) {
	f, err := fsys.Open(rel)
	if err != nil {
		return Article{}, err
	}
	defer f.Close()

	a, err := Parse(f, Slug(rel))
	if err != nil {
		return Article{}, err
	}
	a.Source = rel
	return a, nil
}

// Slug derives an article slug from its page path: the base name without
// extension.
func Slug(rel string) string {
	base := path.Base(strings.ReplaceAll(rel, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
