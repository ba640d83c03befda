package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyIsPublic(t *testing.T) {
	policy := NewPolicy("BLOGSESSION")

	assert.True(t, policy.IsPublic("/login"))
	assert.True(t, policy.IsPublic("/signup"))
	assert.True(t, policy.IsPublic("/user"))
	assert.True(t, policy.IsPublic("/metrics"))
	// Trailing-slash entries match as prefixes.
	assert.True(t, policy.IsPublic("/static/js/article.js"))

	assert.False(t, policy.IsPublic("/articles"))
	assert.False(t, policy.IsPublic("/api/articles"))
	assert.False(t, policy.IsPublic("/"))
	// Exact entries do not match as prefixes.
	assert.False(t, policy.IsPublic("/login/other"))
}

func TestSessionsMiddlewareResolvesCookie(t *testing.T) {
	store := NewSessionStore(time.Hour)
	defer store.Close()
	policy := NewPolicy("BLOGSESSION")

	session, err := store.Create(Principal{UserID: 42, Email: "user@example.com"})
	require.NoError(t, err)

	var got *Principal
	handler := Sessions(store, policy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	req.AddCookie(&http.Cookie{Name: "BLOGSESSION", Value: session.Token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.UserID)
}

func TestSessionsMiddlewareIgnoresBadCookie(t *testing.T) {
	store := NewSessionStore(time.Hour)
	defer store.Close()
	policy := NewPolicy("BLOGSESSION")

	var called bool
	handler := Sessions(store, policy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := PrincipalFromContext(r.Context())
		assert.False(t, ok)
	}))

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	req.AddCookie(&http.Cookie{Name: "BLOGSESSION", Value: "stale-token"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
}

func TestRequireAuthenticatedRedirectsAnonymous(t *testing.T) {
	policy := NewPolicy("BLOGSESSION")
	handler := RequireAuthenticated(policy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler must not run for anonymous requests")
	}))

	for _, path := range []string{"/articles", "/articles/1", "/api/articles", "/api/articles/1"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestRequireAuthenticatedPassesPublicAndAuthenticated(t *testing.T) {
	policy := NewPolicy("BLOGSESSION")

	var calls int
	handler := RequireAuthenticated(policy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/login", nil))

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	req = req.WithContext(NewContextWithPrincipal(req.Context(), &Principal{UserID: 1}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 2, calls)
}
