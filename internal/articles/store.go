package articles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ziadkadry99/nodescape/internal/db"
)

// ErrNotFound is returned by Get for an unknown slug.
var ErrNotFound = errors.New("article not found")

// Store persists the article index.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Upsert inserts an article or replaces the one with the same slug.
func (s *Store) Upsert(ctx context.Context, a Article) error {
	if a.Slug == "" {
		return fmt.Errorf("article slug is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (slug, title, date, author, preview, source, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(slug) DO UPDATE SET
			title = excluded.title,
			date = excluded.date,
			author = excluded.author,
			preview = excluded.preview,
			source = excluded.source,
			indexed_at = excluded.indexed_at`,
		a.Slug, a.Title, a.Date, a.Author, a.Preview, a.Source)
	if err != nil {
		return fmt.Errorf("upserting article %s: %w", a.Slug, err)
	}
	return nil
}

// List returns every article, newest first. Undated articles sort last.
func (s *Store) List(ctx context.Context) ([]Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, title, date, author, preview, source
		FROM articles
		ORDER BY date = '' ASC, date DESC, slug ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	var out []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.Slug, &a.Title, &a.Date, &a.Author, &a.Preview, &a.Source); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Get returns the article with the given slug.
func (s *Store) Get(ctx context.Context, slug string) (*Article, error) {
	var a Article
	err := s.db.QueryRowContext(ctx, `
		SELECT slug, title, date, author, preview, source
		FROM articles WHERE slug = ?`, slug).
		Scan(&a.Slug, &a.Title, &a.Date, &a.Author, &a.Preview, &a.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting article %s: %w", slug, err)
	}
	return &a, nil
}

// DeleteMissing removes every article whose slug is not in keep and returns
// how many were removed.
func (s *Store) DeleteMissing(ctx context.Context, keep []string) (int64, error) {
	query := `DELETE FROM articles`
	args := make([]any, 0, len(keep))
	if len(keep) > 0 {
		query += ` WHERE slug NOT IN (` + strings.TrimSuffix(strings.Repeat("?,", len(keep)), ",") + `)`
		for _, k := range keep {
			args = append(args, k)
		}
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("pruning articles: %w", err)
	}
	return res.RowsAffected()
}
