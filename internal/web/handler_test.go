package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwilde/quill/internal/auth"
	"github.com/mwilde/quill/internal/store"
)

// --- helpers ---

type memorySessions struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemorySessions() *memorySessions {
	return &memorySessions{m: map[string]string{}}
}

func (s *memorySessions) Create(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sid := uuid.New().String()
	s.m[sid] = userID
	return sid, nil
}

func (s *memorySessions) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[sessionID], nil
}

func (s *memorySessions) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sessionID)
	return nil
}

type testApp struct {
	router http.Handler
	posts  *store.InMemoryPostStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	users := store.NewInMemoryUserStore()
	posts := store.NewInMemoryPostStore()
	sessions := newMemorySessions()
	cookies := auth.NewCookieCodec("test secret")

	views, err := NewRenderer()
	require.NoError(t, err)

	authHandler := auth.NewHandler(users, sessions, cookies, views)
	postHandler := NewHandler(posts, views)
	return &testApp{
		router: NewRouter(authHandler, postHandler, cookies, sessions, users),
		posts:  posts,
	}
}

func (a *testApp) do(method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// register creates a user and returns the auto-login session cookie.
func (a *testApp) register(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rr := a.do(http.MethodPost, "/register", url.Values{
		"username": {username}, "password": {password},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("register did not set a session cookie")
	return nil
}

// compose creates a post and returns its id.
func (a *testApp) compose(t *testing.T, cookie *http.Cookie, title, content string) string {
	t.Helper()
	rr := a.do(http.MethodPost, "/compose", url.Values{
		"postTitle": {title}, "postBody": {content},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	posts, err := a.posts.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, posts)
	return posts[len(posts)-1].ID.Hex()
}

// --- tests ---

func TestRegisterThenHomeIsAuthenticated(t *testing.T) {
	app := newTestApp(t)
	cookie := app.register(t, "alice", "s3cret")

	rr := app.do(http.MethodGet, "/", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code, "authenticated home must not redirect")
	assert.Contains(t, rr.Body.String(), "/compose")
	assert.Contains(t, rr.Body.String(), "alice")
}

func TestLoginWrongPasswordStaysAnonymous(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "right")

	rr := app.do(http.MethodPost, "/login", url.Values{
		"username": {"alice"}, "password": {"wrong"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Result().Header.Get("Location"))
	for _, c := range rr.Result().Cookies() {
		assert.Empty(t, c.Value, "failed login must not set a session cookie")
	}

	// Compose stays gated.
	rr = app.do(http.MethodGet, "/compose", nil, nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Result().Header.Get("Location"))
}

func TestComposeThenShow(t *testing.T) {
	app := newTestApp(t)
	cookie := app.register(t, "alice", "s3cret")
	id := app.compose(t, cookie, "T", "C")

	rr := app.do(http.MethodGet, "/posts/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "T")
	assert.Contains(t, rr.Body.String(), "C")
}

func TestEditKeepsID(t *testing.T) {
	app := newTestApp(t)
	cookie := app.register(t, "alice", "s3cret")
	id := app.compose(t, cookie, "before", "old content")

	rr := app.do(http.MethodPost, "/edit/"+id, url.Values{
		"postTitle": {"after"}, "postBody": {"new content"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Result().Header.Get("Location"))

	rr = app.do(http.MethodGet, "/posts/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code, "id must be stable across the update")
	assert.Contains(t, rr.Body.String(), "after")
	assert.Contains(t, rr.Body.String(), "new content")
	assert.NotContains(t, rr.Body.String(), "old content")
}

func TestEditFormPrefilled(t *testing.T) {
	app := newTestApp(t)
	cookie := app.register(t, "alice", "s3cret")
	id := app.compose(t, cookie, "my title", "my content")

	rr := app.do(http.MethodGet, "/edit/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "my title")
	assert.Contains(t, rr.Body.String(), "my content")
}

func TestDeleteThen404(t *testing.T) {
	app := newTestApp(t)
	cookie := app.register(t, "alice", "s3cret")
	id := app.compose(t, cookie, "T", "C")

	rr := app.do(http.MethodPost, "/delete/"+id, nil, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Result().Header.Get("Location"))

	rr = app.do(http.MethodGet, "/posts/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestComposeFormRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(http.MethodGet, "/compose", nil, nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Result().Header.Get("Location"))
	assert.NotContains(t, rr.Body.String(), "postTitle")
}

func TestShowMalformedID(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(http.MethodGet, "/posts/not-an-objectid", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEditFormMissingPost(t *testing.T) {
	app := newTestApp(t)
	cookie := app.register(t, "alice", "s3cret")

	rr := app.do(http.MethodGet, "/edit/000000000000000000000000", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHomeAnonymousListsPosts(t *testing.T) {
	app := newTestApp(t)
	cookie := app.register(t, "alice", "s3cret")
	app.compose(t, cookie, "public title", "public content")

	rr := app.do(http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "public title")
	assert.NotContains(t, rr.Body.String(), "/compose", "anonymous home must not show compose")
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
