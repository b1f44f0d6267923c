package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers the page routes, the embedded static assets, and
// the uploaded media directory on the provided mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler, uploadDir string) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Uploaded media, written by the upload saver.
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Page routes.
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /admin", h.Admin)
	mux.HandleFunc("GET /admin/edit/{id}", h.EditForm)
	mux.HandleFunc("POST /admin/login", h.Login)
}
