// Package site builds the static blog pages from markdown posts.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/nodescape/internal/progress"
)

// Post is the front matter of one markdown post.
type Post struct {
	Title  string `yaml:"title"`
	Date   string `yaml:"date"`
	Author string `yaml:"author"`
	Slug   string `yaml:"slug"`
	Draft  bool   `yaml:"draft"`
}

// PostBuilder converts posts/*.md into standalone HTML pages.
type PostBuilder struct {
	PostsDir  string
	OutputDir string
	SiteTitle string
	Progress  progress.Reporter

	md goldmark.Markdown
}

// NewPostBuilder creates a builder writing into outputDir.
func NewPostBuilder(postsDir, outputDir, siteTitle string) *PostBuilder {
	return &PostBuilder{
		PostsDir:  postsDir,
		OutputDir: outputDir,
		SiteTitle: siteTitle,
		Progress:  progress.Nop{},
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// postData holds the data passed to the post template.
type postData struct {
	Post
	SiteTitle string
	Content   template.HTML
}

// Build renders every non-draft post and returns them newest first.
func (b *PostBuilder) Build() ([]Post, error) {
	paths, err := filepath.Glob(filepath.Join(b.PostsDir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	sort.Strings(paths)

	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", b.OutputDir, err)
	}

	b.Progress.Start(len(paths))
	defer b.Progress.Finish()

	var posts []Post
	slugs := make(map[string]string, len(paths))
	for _, p := range paths {
		b.Progress.Step(filepath.Base(p))
		post, err := b.renderPost(p)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", p, err)
		}
		if post.Draft {
			continue
		}
		if prev, dup := slugs[post.Slug]; dup {
			return nil, fmt.Errorf("%s and %s share slug %q", prev, p, post.Slug)
		}
		slugs[post.Slug] = p
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date > posts[j].Date })
	return posts, nil
}

func (b *PostBuilder) renderPost(path string) (Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Post{}, err
	}
	post, body, err := splitFrontMatter(raw)
	if err != nil {
		return Post{}, err
	}
	if post.Slug == "" {
		post.Slug = strings.TrimSuffix(filepath.Base(path), ".md")
	}
	if post.Title == "" {
		post.Title = post.Slug
	}
	if post.Date != "" {
		if _, err := time.Parse("2006-01-02", post.Date); err != nil {
			return Post{}, fmt.Errorf("date %q is not YYYY-MM-DD", post.Date)
		}
	}
	if post.Draft {
		return post, nil
	}

	var buf bytes.Buffer
	if err := b.md.Convert(body, &buf); err != nil {
		return Post{}, fmt.Errorf("converting markdown: %w", err)
	}

	f, err := os.Create(filepath.Join(b.OutputDir, post.Slug+".html"))
	if err != nil {
		return Post{}, err
	}
	defer f.Close()

	return post, postTmpl.Execute(f, postData{
		Post:      post,
		SiteTitle: b.SiteTitle,
		Content:   template.HTML(buf.String()),
	})
}

// splitFrontMatter separates a leading "---" YAML block from the body.
// Posts without front matter are all body.
func splitFrontMatter(raw []byte) (Post, []byte, error) {
	var post Post
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return post, []byte(text), nil
	}
	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return post, nil, fmt.Errorf("unterminated front matter")
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), &post); err != nil {
		return post, nil, fmt.Errorf("parsing front matter: %w", err)
	}
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return post, []byte(body), nil
}
