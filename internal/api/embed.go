//go:build !dev

package api

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed dist/*
var distFiles embed.FS

// StaticHandler serves the embedded editor frontend. Extension-less paths
// fall back to index.html so client-side routes survive a reload.
func (h *Handler) StaticHandler() http.Handler {
	fsys, _ := fs.Sub(distFiles, "dist")
	fileServer := http.FileServer(http.FS(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && !strings.Contains(r.URL.Path, ".") {
			r.URL.Path = "/"
		}
		fileServer.ServeHTTP(w, r)
	})
}
