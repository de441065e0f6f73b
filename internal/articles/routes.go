package articles

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the read-only article API and the blog index page.
func RegisterRoutes(r chi.Router, store *Store, siteTitle string) {
	r.Route("/api/articles", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Get("/{slug}", handleGet(store))
	})
	r.Get("/blog", handleBlogIndex(store, siteTitle))
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if list == nil {
			list = []Article{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.Get(r.Context(), chi.URLParam(r, "slug"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

var blogIndexTmpl = template.Must(template.New("blog").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · blog</title>
<style>
body{font-family:system-ui,sans-serif;background:#0b0d12;color:#d7dae0;max-width:46rem;margin:3rem auto;padding:0 1rem}
a{color:#7fb4ff;text-decoration:none} a:hover{text-decoration:underline}
article{margin:0 0 2rem} .meta{color:#7a8190;font-size:.85rem}
</style>
</head>
<body>
<p><a href="/">&larr; {{.Title}}</a></p>
<h1>Blog</h1>
{{range .Articles}}<article>
<h2><a href="/static/{{.Source}}">{{if .Title}}{{.Title}}{{else}}{{.Slug}}{{end}}</a></h2>
<p class="meta">{{.Date}}{{if .Author}} · {{.Author}}{{end}}</p>
<p>{{.Preview}}</p>
</article>
{{else}}<p>No posts yet.</p>
{{end}}
</body>
</html>
`))

func handleBlogIndex(store *Store, siteTitle string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		blogIndexTmpl.Execute(w, struct {
			Title    string
			Articles []Article
		}{siteTitle, list})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
