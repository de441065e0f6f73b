// Package articles indexes the static blog pages and serves them as JSON.
package articles

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// PreviewRunes caps the preview text length.
const PreviewRunes = 200

// Article is the metadata scraped from one static page.
type Article struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Author  string `json:"author"`
	Preview string `json:"preview"`
	Source  string `json:"source,omitempty"`
}

// Parse scrapes an HTML document. Missing pieces are left empty; only a
// read failure is an error.
func Parse(r io.Reader, slug string) (Article, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Article{Slug: slug}, fmt.Errorf("parsing %s: %w", slug, err)
	}

	a := Article{Slug: slug}
	var h1, metaDate, timeDate string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if a.Title == "" {
					a.Title = textContent(n)
				}
			case "h1":
				if h1 == "" {
					h1 = textContent(n)
				}
			case "meta":
				switch strings.ToLower(getAttr(n, "name")) {
				case "author":
					a.Author = strings.TrimSpace(getAttr(n, "content"))
				case "date":
					metaDate = strings.TrimSpace(getAttr(n, "content"))
				}
			case "time":
				if timeDate == "" {
					timeDate = strings.TrimSpace(getAttr(n, "datetime"))
				}
			case "p":
				if a.Preview == "" {
					a.Preview = truncate(textContent(n), PreviewRunes)
				}
			case "script", "style":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if a.Title == "" {
		a.Title = h1
	}
	a.Date = metaDate
	if a.Date == "" {
		a.Date = timeDate
	}
	return a, nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// textContent returns the text below n with whitespace collapsed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
