package users

import (
	"net/http"

	"github.com/mirinai/goblog/apperror"
	"github.com/mirinai/goblog/auth"
)

// Handlers carries the registration endpoint backed by the signup form.
type Handlers struct {
	service *RegistrationService
}

// NewHandlers creates the users Handlers.
func NewHandlers(service *RegistrationService) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister godoc
// @Summary User registration
// @Description Creates a new account from the signup form and redirects to the login page.
// @Tags users
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email address"
// @Param password formData string true "Password"
// @Success 302 "Redirect to /login"
// @Router /user [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid form body", err))
			return
		}

		email := r.PostFormValue("email")
		password := r.PostFormValue("password")
		if email == "" || password == "" {
			auth.WriteError(w, r, apperror.NewBadRequestError("email and password are required", nil))
			return
		}

		if _, err := h.service.Register(r.Context(), email, password); err != nil {
			if apperror.IsConflict(err) {
				// A taken email sends the visitor back to the form instead of
				// leaking a raw storage failure.
				http.Redirect(w, r, "/signup?error", http.StatusFound)
				return
			}
			auth.WriteError(w, r, err)
			return
		}

		http.Redirect(w, r, "/login", http.StatusFound)
	}
}
