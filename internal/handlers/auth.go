package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gilded/internal/auth"
	"gilded/internal/models"

	"github.com/gin-gonic/gin"
)

const defaultRedirect = "/"

// safeRedirect keeps only same-site absolute paths
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return defaultRedirect
	}
	return target
}

func (h *Handlers) setSessionCookies(c *gin.Context, s models.Session) error {
	idToken, refreshToken, err := h.services.Auth.IssueTokens(s)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.auth.IDCookie, idToken, int(h.auth.IDTokenTTL.Seconds()), "/", "", h.auth.SecureCookies, true)
	c.SetCookie(h.auth.RefreshCookie, refreshToken, int(h.auth.RefreshTokenTTL.Seconds()), "/", "", h.auth.SecureCookies, true)
	return nil
}

func (h *Handlers) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	for _, name := range h.auth.CookieNames() {
		c.SetCookie(name, "", -1, "/", "", h.auth.SecureCookies, true)
	}
}

// providerStatus maps credential provider failures to HTTP statuses
func providerStatus(err error, fallback int) int {
	var perr *auth.ProviderError
	if !errors.As(err, &perr) {
		return http.StatusInternalServerError
	}
	switch perr.Code {
	case auth.CodeTooManyRequests:
		return http.StatusTooManyRequests
	case auth.CodeEmailInUse:
		return http.StatusConflict
	default:
		return fallback
	}
}

// SignUp - POST /signup
// Регистрация и вход нового пользователя
func (h *Handlers) SignUp(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s, err := h.services.Auth.SignUp(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.JSON(providerStatus(err, http.StatusBadRequest), models.ErrorResponse{Error: auth.SignupErrorMessage(err)})
		return
	}

	if err := h.setSessionCookies(c, s); err != nil {
		fail(c, err, "Failed to issue session")
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{UserID: s.UserID, Email: s.Email, RedirectTo: defaultRedirect})
}

// LoginPage - GET /login
// Landing for guarded redirects, echoes redirect_to
func (h *Handlers) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"redirect_to": safeRedirect(c.Query("redirect_to"))})
}

// Login - POST /login
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	s, err := h.services.Auth.SignIn(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.JSON(providerStatus(err, http.StatusUnauthorized), models.ErrorResponse{Error: auth.LoginErrorMessage(err)})
		return
	}

	if err := h.setSessionCookies(c, s); err != nil {
		fail(c, err, "Failed to issue session")
		return
	}

	redirect := req.RedirectTo
	if redirect == "" {
		redirect = c.Query("redirect_to")
	}

	c.JSON(http.StatusOK, models.AuthResponse{UserID: s.UserID, Email: s.Email, RedirectTo: safeRedirect(redirect)})
}

// Logout - POST /logout
func (h *Handlers) Logout(c *gin.Context) {
	h.clearSessionCookies(c)
	c.Status(http.StatusOK)
}

// Refresh - POST /refresh
// Новая пара токенов по refresh-токену
func (h *Handlers) Refresh(c *gin.Context) {
	token, err := c.Cookie(h.auth.RefreshCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	s, err := h.services.Auth.Refresh(c.Request.Context(), token)
	if err != nil {
		h.clearSessionCookies(c)
		fail(c, err, "Failed to refresh session")
		return
	}

	if err := h.setSessionCookies(c, s); err != nil {
		fail(c, err, "Failed to issue session")
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{UserID: s.UserID, Email: s.Email, RedirectTo: defaultRedirect})
}

// LoginHistory - GET /login-history
func (h *Handlers) LoginHistory(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	history, err := h.services.Auth.LoginHistory(c.Request.Context(), s.UserID)
	if err != nil {
		fail(c, err, "Failed to list login history")
		return
	}

	c.JSON(http.StatusOK, history)
}

// Profile - GET /profile
func (h *Handlers) Profile(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	profile, err := h.services.Auth.Profile(c.Request.Context(), s.UserID)
	if err != nil {
		fail(c, err, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}
