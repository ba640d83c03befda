package auth

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mirinai/goblog/apperror"
)

// Handlers carries the login/logout endpoints of the form-based flow.
type Handlers struct {
	service  *Service
	sessions *SessionStore
	policy   *Policy
	logger   *zap.SugaredLogger
}

// NewHandlers creates the auth Handlers.
func NewHandlers(service *Service, sessions *SessionStore, policy *Policy, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{service: service, sessions: sessions, policy: policy, logger: logger}
}

// HandleLogin processes the login form (fields: email, password). On success
// it issues a session cookie and redirects to the policy's success URL; on
// failure it redirects back to the login page with an error flag, never
// revealing whether the email or the password was wrong.
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid form body", err))
			return
		}

		email := r.PostFormValue("email")
		password := r.PostFormValue("password")
		if email == "" || password == "" {
			http.Redirect(w, r, h.policy.LoginPage+"?error", http.StatusFound)
			return
		}

		principal, err := h.service.Authenticate(r.Context(), email, password)
		if err != nil {
			if apperror.IsAuthError(err) {
				h.logger.Infow("login failed", "email", email)
				http.Redirect(w, r, h.policy.LoginPage+"?error", http.StatusFound)
				return
			}
			WriteError(w, r, err)
			return
		}

		session, err := h.sessions.Create(*principal)
		if err != nil {
			WriteError(w, r, apperror.NewInternalError("failed to create session", err))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     h.policy.CookieName,
			Value:    session.Token,
			Path:     "/",
			Expires:  session.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		h.logger.Infow("login succeeded", "user_id", principal.UserID)
		http.Redirect(w, r, h.policy.LoginSuccessURL, http.StatusFound)
	}
}

// HandleLogout invalidates the current session, expires the cookie, and
// redirects to the login page. Logging out without a session is harmless.
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(h.policy.CookieName); err == nil {
			h.sessions.Destroy(cookie.Value)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     h.policy.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})

		http.Redirect(w, r, h.policy.LogoutSuccessURL, http.StatusFound)
	}
}

// WriteJSON serializes data to JSON with the given status code. A nil payload
// writes only the status, never a literal "null" body.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError converts any error into the standardized apperror response.
// Errors that are not AppErrors are wrapped as internal errors so every
// failure leaves through the same shape.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred: "+err.Error(), err)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
