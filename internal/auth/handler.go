package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"lifehub/internal/auth/model"
	"lifehub/internal/auth/service"
	"lifehub/internal/auth/session"
	"lifehub/pkg/apperr"
	"lifehub/pkg/httpx"
)

// Config carries every redirect target the identity flow uses, passed in at
// wiring time.
type Config struct {
	SuccessPath       string // default listing view after login/registration
	LoginPath         string
	ResetDonePath     string
	ResetCompletePath string
}

type AuthHandler struct {
	Service  *service.AuthService
	Sessions *session.Manager
	Config   Config
}

func NewAuthHandler(svc *service.AuthService, sessions *session.Manager, cfg Config) *AuthHandler {
	return &AuthHandler{Service: svc, Sessions: sessions, Config: cfg}
}

// LoginPage sends an already-authenticated caller straight to the listing
// view instead of showing the login form again.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.authenticated(r) {
		http.Redirect(w, r, h.Config.SuccessPath, http.StatusFound)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"page": "login"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var f model.LoginForm
	if err := decodeBody(r, &f); err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, f.Echo())
		return
	}
	_, token, err := h.Service.Login(r.Context(), f)
	if err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, f.Echo())
		return
	}
	h.Sessions.SetCookie(w, token)
	http.Redirect(w, r, h.Config.SuccessPath, http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.ClearCookie(w)
	http.Redirect(w, r, h.Config.LoginPath, http.StatusFound)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if h.authenticated(r) {
		http.Redirect(w, r, h.Config.SuccessPath, http.StatusFound)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"page": "register"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var f model.RegisterForm
	if err := decodeBody(r, &f); err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, f.Echo())
		return
	}
	_, token, err := h.Service.Register(r.Context(), f)
	if err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, f.Echo())
		return
	}
	// Auto-login: the new account is the active session immediately.
	h.Sessions.SetCookie(w, token)
	http.Redirect(w, r, h.Config.SuccessPath, http.StatusFound)
}

func (h *AuthHandler) PasswordResetPage(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"page": "password_reset"})
}

func (h *AuthHandler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var f model.PasswordResetForm
	if err := decodeBody(r, &f); err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, f.Echo())
		return
	}
	if err := h.Service.StartPasswordReset(r.Context(), f); err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, f.Echo())
		return
	}
	http.Redirect(w, r, h.Config.ResetDonePath, http.StatusFound)
}

func (h *AuthHandler) PasswordResetDone(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"page": "password_reset_done"})
}

// PasswordResetConfirmPage validates the link before the new-password form
// is shown.
func (h *AuthHandler) PasswordResetConfirmPage(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.CheckResetToken(r.Context(), r.PathValue("token")); err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"page": "password_reset_confirm"})
}

func (h *AuthHandler) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var f model.PasswordResetConfirmForm
	if err := decodeBody(r, &f); err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, nil)
		return
	}
	if err := h.Service.ConfirmPasswordReset(r.Context(), r.PathValue("token"), f); err != nil {
		httpx.Error(w, r, err, h.Config.LoginPath, nil)
		return
	}
	http.Redirect(w, r, h.Config.ResetCompletePath, http.StatusFound)
}

func (h *AuthHandler) PasswordResetComplete(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"page": "password_reset_complete"})
}

func (h *AuthHandler) authenticated(r *http.Request) bool {
	token := h.Sessions.TokenFromRequest(r)
	if token == "" {
		return false
	}
	_, err := h.Sessions.Parse(token)
	return err == nil
}

type formDecoder interface {
	FromValues(url.Values)
}

func decodeBody(r *http.Request, dst formDecoder) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return apperr.NewValidationError("form", "invalid request body")
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return apperr.NewValidationError("form", "invalid form submission")
	}
	dst.FromValues(r.PostForm)
	return nil
}
