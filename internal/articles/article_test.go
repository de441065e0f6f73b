package articles

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const samplePage = `<!DOCTYPE html>
<html><head>
<title>Drawing with springs</title>
<meta name="author" content=" Ada ">
<meta name="date" content="2024-03-01">
<script>var p = "<p>not a paragraph</p>";</script>
</head>
<body>
<h1>Springs</h1>
<time datetime="2023-01-01">New Year</time>
<p>First   paragraph with <em>inline</em> markup.</p>
<p>Second paragraph.</p>
</body></html>`

func TestParse(t *testing.T) {
	a, err := Parse(strings.NewReader(samplePage), "springs")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Article{
		Slug:    "springs",
		Title:   "Drawing with springs",
		Date:    "2024-03-01",
		Author:  "Ada",
		Preview: "First paragraph with inline markup.",
	}
	if a != want {
		t.Errorf("got %+v\nwant %+v", a, want)
	}
}

func TestParseFallbacks(t *testing.T) {
	a, err := Parse(strings.NewReader(`<h1>Only a heading</h1><time datetime="2022-05-06"></time>`), "x")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.Title != "Only a heading" {
		t.Errorf("title should fall back to h1, got %q", a.Title)
	}
	if a.Date != "2022-05-06" {
		t.Errorf("date should fall back to <time>, got %q", a.Date)
	}
	if a.Author != "" || a.Preview != "" {
		t.Errorf("missing pieces should stay empty, got %+v", a)
	}
}

func TestParseMalformed(t *testing.T) {
	a, err := Parse(strings.NewReader(`<p>unterminated <b>bold <title>`), "broken")
	if err != nil {
		t.Fatalf("malformed HTML should not fail: %v", err)
	}
	if a.Slug != "broken" || a.Preview == "" {
		t.Errorf("unexpected article %+v", a)
	}
}

func TestParseTruncatesPreview(t *testing.T) {
	long := strings.Repeat("ä", 500)
	a, err := Parse(strings.NewReader("<p>"+long+"</p>"), "long")
	if err != nil {
		t.Fatal(err)
	}
	if n := utf8.RuneCountInString(a.Preview); n != PreviewRunes {
		t.Errorf("preview has %d runes, want %d", n, PreviewRunes)
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"blog/hello.html":         "hello",
		"blog/2024/03/deep.html":  "deep",
		"plain":                   "plain",
		`blog\windows\style.html`: "style",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
