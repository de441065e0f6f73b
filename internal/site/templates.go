package site

import "html/template"

// postTmpl carries the meta tags the article indexer reads.
var postTmpl = template.Must(template.New("post").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{if .Author}}<meta name="author" content="{{.Author}}">
{{end}}{{if .Date}}<meta name="date" content="{{.Date}}">
{{end}}<style>
body{font-family:system-ui,sans-serif;background:#0b0d12;color:#d7dae0;max-width:46rem;margin:3rem auto;padding:0 1rem;line-height:1.6}
a{color:#7fb4ff} pre{padding:1rem;overflow-x:auto;border-radius:6px}
header{color:#7a8190;font-size:.85rem;margin-bottom:2rem}
</style>
</head>
<body>
<nav><a href="/blog">&larr; {{.SiteTitle}} blog</a></nav>
<article>
<h1>{{.Title}}</h1>
<header>{{if .Date}}<time datetime="{{.Date}}">{{.Date}}</time>{{end}}{{if .Author}} · {{.Author}}{{end}}</header>
{{.Content}}
</article>
</body>
</html>
`))
