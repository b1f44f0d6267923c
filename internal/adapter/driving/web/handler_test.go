package web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcarver/soloblog/internal/adapter/driven/jsonfile"
	"github.com/jcarver/soloblog/internal/auth"
	"github.com/jcarver/soloblog/internal/domain/model"
	"github.com/jcarver/soloblog/internal/domain/port/driven"
)

func setupTestHandler(t *testing.T) (*Handler, driven.PostStore) {
	t.Helper()

	store, err := jsonfile.New(filepath.Join(t.TempDir(), "posts.json"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authn := auth.NewAuthenticator([]byte("test-secret"), "admin", "hunter2")

	return NewHandler(store, authn, logger), store
}

func TestHome_RendersPostsNewestFirst(t *testing.T) {
	h, store := setupTestHandler(t)
	ctx := t.Context()

	_, err := store.Create(ctx, "Hello", "**bold** body", model.MediaSlots{})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.Home(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Hello")
	assert.Contains(t, body, "<strong>bold</strong>", "post bodies render as markdown")
}

func TestHome_Empty(t *testing.T) {
	h, _ := setupTestHandler(t)

	w := httptest.NewRecorder()
	h.Home(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No posts yet")
}

func TestAdmin_AnonymousShowsLoginForm(t *testing.T) {
	h, _ := setupTestHandler(t)

	w := httptest.NewRecorder()
	h.Admin(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	require.Equal(t, http.StatusOK, w.Code, "the admin page renders without identity")
	body := w.Body.String()
	assert.Contains(t, body, `action="/admin/login"`)
	assert.NotContains(t, body, `action="/api/posts"`, "no create form for anonymous visitors")
}

func TestAdmin_SignedInShowsManageView(t *testing.T) {
	h, store := setupTestHandler(t)
	ctx := t.Context()

	created, err := store.Create(ctx, "Manage me", "body", model.MediaSlots{})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r = r.WithContext(auth.ContextWithIdentity(r.Context(), &auth.Identity{Username: "admin"}))

	w := httptest.NewRecorder()
	h.Admin(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Signed in as admin")
	assert.Contains(t, body, `action="/api/posts"`)
	assert.Contains(t, body, "/admin/edit/"+created.ID)
	assert.Contains(t, body, "/api/posts/"+created.ID+"?_method=DELETE")
}

func TestEditForm_ExistingPost(t *testing.T) {
	h, store := setupTestHandler(t)
	ctx := t.Context()

	created, err := store.Create(ctx, "Edit me", "old body", model.MediaSlots{})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/admin/edit/"+created.ID, nil)
	r.SetPathValue("id", created.ID)

	w := httptest.NewRecorder()
	h.EditForm(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="Edit me"`)
	assert.Contains(t, body, "old body")
	assert.Contains(t, body, "/api/posts/"+created.ID+"?_method=PUT")
}

func TestEditForm_UnknownIDRendersEmpty(t *testing.T) {
	h, _ := setupTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/admin/edit/1700000000000", nil)
	r.SetPathValue("id", "1700000000000")

	w := httptest.NewRecorder()
	h.EditForm(w, r)

	assert.Equal(t, http.StatusOK, w.Code, "unknown id renders an empty form, not an error")
	assert.Contains(t, w.Body.String(), `value=""`)
}

func TestLogin_Success(t *testing.T) {
	h, _ := setupTestHandler(t)

	form := url.Values{"username": {"admin"}, "password": {"hunter2"}}
	r := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	h.Login(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "login must set the session cookie")
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestLogin_WrongPassword(t *testing.T) {
	h, _ := setupTestHandler(t)

	form := url.Values{"username": {"admin"}, "password": {"letmein"}}
	r := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	h.Login(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies(), "no token on rejected credentials")
}
