// Package web is the HTML driving adapter: the public feed, the admin pages,
// and the login route. Page routes never require authentication; the admin
// page simply renders the login form when no identity is present.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jcarver/soloblog/internal/adapter/driving/web/templates"
	"github.com/jcarver/soloblog/internal/auth"
	"github.com/jcarver/soloblog/internal/domain/port/driven"
)

// Handler serves the HTML pages via templ components.
type Handler struct {
	posts  driven.PostStore
	authn  *auth.Authenticator
	logger *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(posts driven.PostStore, authn *auth.Authenticator, logger *slog.Logger) *Handler {
	return &Handler{
		posts:  posts,
		authn:  authn,
		logger: logger,
	}
}

// Home renders the public feed, newest post first.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list posts", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	page := templates.Layout("soloblog", templates.Index(toPostViews(posts)))
	if err := page.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render index", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Admin renders the admin page. Identity here is advisory: with no signed-in
// user the page still renders, showing the login form instead of the manage
// view.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list posts", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var username string
	if identity := auth.IdentityFromContext(r.Context()); identity != nil {
		username = identity.Username
	}

	page := templates.Layout("Admin", templates.Admin(username, toPostViews(posts)))
	if err := page.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render admin", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// EditForm renders the edit form for one post. An unknown id renders an empty
// form rather than a 404 page.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get post", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	form := templates.PostForm{}
	if post != nil {
		form = templates.PostForm{ID: post.ID, Title: post.Title, Content: post.Content}
	}

	page := templates.Layout("Edit post", templates.Edit(form))
	if err := page.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render edit form", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Login checks the posted credentials and, on success, sets the session
// cookie and redirects to the admin page. Bad credentials answer 401 with no
// cookie and no redirect.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "error parsing form", http.StatusInternalServerError)
		return
	}

	token, err := h.authn.IssueToken(r.FormValue("username"), r.FormValue("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.logger.Info("login rejected")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.logger.Error("failed to issue session token", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	auth.SetSessionCookie(w, token)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
