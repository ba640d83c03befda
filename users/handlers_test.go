package users

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func postSignupForm(handler http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/user", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterRedirectsToLogin(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandlers(service).HandleRegister()

	rec := postSignupForm(handler, url.Values{
		"email":    {"user@example.com"},
		"password": {"secret"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRegisterDuplicateRedirectsToSignup(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandlers(service).HandleRegister()

	form := url.Values{"email": {"user@example.com"}, "password": {"secret"}}
	postSignupForm(handler, form)
	rec := postSignupForm(handler, form)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/signup?error", rec.Header().Get("Location"))
}

func TestRegisterMissingFieldsIsBadRequest(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandlers(service).HandleRegister()

	rec := postSignupForm(handler, url.Values{"email": {"user@example.com"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "required")
}
