//go:build dev

package api

import (
	"net/http"
	"net/http/httputil"
	"net/url"
)

// devServer is where the frontend dev server listens during development.
const devServer = "http://localhost:5173"

// StaticHandler proxies frontend requests to the dev server, so `-tags dev`
// builds get hot reloading instead of the embedded bundle.
func (h *Handler) StaticHandler() http.Handler {
	target, _ := url.Parse(devServer)
	proxy := httputil.NewSingleHostReverseProxy(target)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxy.ServeHTTP(w, r)
	})
}
