package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	domainauth "github.com/staffdesk/ui-gateway/internal/domain/auth"
	"github.com/staffdesk/ui-gateway/internal/service"
)

var validate = validator.New()

// AuthService defines the session operations the auth handlers need.
type AuthService interface {
	Login(ctx context.Context, email, password string) service.LoginResult
	Register(ctx context.Context, name, email, password string) service.Result
	Logout(ctx context.Context, sessionID string)
	Resolve(ctx context.Context, sessionID string) (domainauth.Session, error)
}

var _ AuthService = (*service.SessionManager)(nil)

// AuthHandlers provides HTTP handlers for the login and registration screens.
type AuthHandlers struct {
	Svc          AuthService
	Renderer     *TemplateRenderer
	CookieName   string
	CookieDomain string
	// SecureCookies marks the session cookie Secure; disabled in dev so the
	// gateway works over plain HTTP locally.
	SecureCookies bool
	Logger        *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type authPageData struct {
	basePageData
	Email string
	Name  string
}

// LoginForm renders the login screen.
// GET /auth/login.
func (h *AuthHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	_ = h.Renderer.Render(w, "login.tmpl", authPageData{
		basePageData: newBasePageData("Sign in", nil),
	})
}

// Login handles the credential form submission.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		h.renderLoginError(w, form.Email, "Email and password are required")
		return
	}

	res := h.Svc.Login(r.Context(), form.Email, form.Password)
	if !res.OK {
		h.renderLoginError(w, form.Email, res.Message)
		return
	}

	h.setSessionCookie(w, res.Session.ID, res.Session.ExpiresAt)
	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

func (h *AuthHandlers) renderLoginError(w http.ResponseWriter, email, message string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	data := authPageData{basePageData: newBasePageData("Sign in", nil), Email: email}
	data.Error = message
	_ = h.Renderer.Render(w, "login.tmpl", data)
}

// RegisterForm renders the registration screen.
// GET /auth/register.
func (h *AuthHandlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	_ = h.Renderer.Render(w, "register.tmpl", authPageData{
		basePageData: newBasePageData("Create account", nil),
	})
}

// Register handles the registration form submission. A successful
// registration does not sign the user in; they log in with the new account.
// POST /auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := registerForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		h.renderRegisterError(w, form, "Name, email and a password of 6+ characters are required")
		return
	}

	res := h.Svc.Register(r.Context(), form.Name, form.Email, form.Password)
	if !res.OK {
		h.renderRegisterError(w, form, res.Message)
		return
	}

	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

func (h *AuthHandlers) renderRegisterError(w http.ResponseWriter, form registerForm, message string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	data := authPageData{
		basePageData: newBasePageData("Create account", nil),
		Email:        form.Email,
		Name:         form.Name,
	}
	data.Error = message
	_ = h.Renderer.Render(w, "register.tmpl", data)
}

// Logout tears down the session and clears the cookie.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.CookieName); err == nil && cookie.Value != "" {
		h.Svc.Logout(r.Context(), cookie.Value)
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, sessionID string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.CookieDomain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
