package api

import (
	"fmt"
	"net/http"
	"strings"
)

// faviconPattern is a 4x4 pixel-art "P" rendered as SVG squares.
var faviconPattern = [4][4]bool{
	{true, true, true, false},
	{true, false, true, false},
	{true, true, true, false},
	{true, false, false, false},
}

// GenerateFaviconSVG renders the pixel-grid favicon.
func GenerateFaviconSVG() string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32">`)
	b.WriteString(`<rect width="32" height="32" rx="6" fill="#1f2937"/>`)
	for y, row := range faviconPattern {
		for x, on := range row {
			if !on {
				continue
			}
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="6" height="6" fill="#34d399"/>`, 5+x*6, 5+y*6)
		}
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// GetFavicon serves the generated favicon.
func (h *Handler) GetFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(GenerateFaviconSVG()))
}
