package site

import (
	"net/http"
	"os"
	"path"
)

// FileServer serves dir under prefix. Directory listings are disabled.
func FileServer(prefix, dir string) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(noListing{http.Dir(dir)}))
}

type noListing struct{ fs http.FileSystem }

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		index, err := n.fs.Open(path.Join(name, "index.html"))
		if err != nil {
			f.Close()
			return nil, os.ErrNotExist
		}
		index.Close()
	}
	return f, nil
}
