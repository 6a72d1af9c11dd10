package presentation

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed web/*
var webFS embed.FS

// MountStatic serves the single-page UI. Its client-side views all load index.html.
func MountStatic(r chi.Router) {
	sub, _ := fs.Sub(webFS, "web")

	index := func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, sub, "index.html")
	}
	r.Get("/", index)
	r.Get("/dashboard", index)
	r.Get("/driver", index)
	r.Mount("/", http.FileServer(http.FS(sub)))
}
