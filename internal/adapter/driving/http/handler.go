// Package httphandler is the driving adapter for the mutation API: the
// create/update/delete post routes behind the identity gate, plus the health
// probe. Successful mutations answer with a redirect back to the admin
// listing; rendering is the web adapter's job.
package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jcarver/soloblog/internal/adapter/driving/web"
	"github.com/jcarver/soloblog/internal/auth"
	"github.com/jcarver/soloblog/internal/domain/model"
	"github.com/jcarver/soloblog/internal/domain/port/driven"
	"github.com/jcarver/soloblog/internal/upload"
)

// Handler serves the post mutation routes.
type Handler struct {
	posts   driven.PostStore
	uploads *upload.Saver
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(posts driven.PostStore, uploads *upload.Saver, logger *slog.Logger) *Handler {
	return &Handler{
		posts:   posts,
		uploads: uploads,
		logger:  logger,
	}
}

// NewServeMux wires the full route table: the mutation API (hard identity
// gate), the web pages (advisory identity only), static assets, and uploads.
// The whole mux is wrapped with logging, recovery, method override, and
// identity resolution.
func NewServeMux(h *Handler, webHandler *web.Handler, authn *auth.Authenticator, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /api/posts", requireIdentity(http.HandlerFunc(h.CreatePost)))
	mux.Handle("PUT /api/posts/{id}", requireIdentity(http.HandlerFunc(h.UpdatePost)))
	mux.Handle("DELETE /api/posts/{id}", requireIdentity(http.HandlerFunc(h.DeletePost)))
	mux.HandleFunc("GET /api/health", h.Health)

	web.RegisterRoutes(mux, webHandler, h.uploads.Dir())

	// Recovery innermost so panics are caught before logging; identity and
	// method override must run before route dispatch.
	wrapped := identityMiddleware(authn, mux)
	wrapped = methodOverrideMiddleware(wrapped)
	wrapped = recoveryMiddleware(logger, wrapped)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// CreatePost ingests an optional media upload, classifies it into a media
// slot, and creates the post.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := upload.ParseForm(r); err != nil {
		h.logger.Error("failed to parse create form", "error", err)
		writeError(w, http.StatusInternalServerError, "error parsing form")
		return
	}

	saved, err := h.uploads.FromRequest(r)
	if err != nil {
		h.logger.Error("failed to store upload", "error", err)
		writeError(w, http.StatusInternalServerError, "error parsing form")
		return
	}

	slots := model.MediaSlots{}
	if saved != nil {
		slots = model.ClassifyMedia(saved.MIMEType, saved.PublicURL)
	}

	post, err := h.posts.Create(r.Context(), r.FormValue("title"), r.FormValue("content"), slots)
	if err != nil {
		h.logger.Error("failed to create post", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("post created", "id", post.ID, "has_media", post.HasMedia())
	redirectToAdmin(w, r)
}

// UpdatePost overwrites a post's title and content, and its media slots when
// the request carries a new file.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := upload.ParseForm(r); err != nil {
		h.logger.Error("failed to parse update form", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "error parsing form")
		return
	}

	saved, err := h.uploads.FromRequest(r)
	if err != nil {
		h.logger.Error("failed to store upload", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "error parsing form")
		return
	}

	// nil means "no new file": the stored media slots stay as they are.
	var slots *model.MediaSlots
	if saved != nil {
		classified := model.ClassifyMedia(saved.MIMEType, saved.PublicURL)
		slots = &classified
	}

	post, err := h.posts.Update(r.Context(), id, r.FormValue("title"), r.FormValue("content"), slots)
	if errors.Is(err, driven.ErrPostNotFound) {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to update post", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("post updated", "id", post.ID, "has_media", post.HasMedia())
	redirectToAdmin(w, r)
}

// DeletePost removes a post. A miss still redirects: deleting an already
// deleted post is not worth an error page, matching the historical behavior.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	removed, err := h.posts.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete post", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("post delete handled", "id", id, "removed", removed)
	redirectToAdmin(w, r)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
