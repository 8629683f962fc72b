package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"gilded/internal/logger"
	"gilded/internal/models"

	"github.com/gin-gonic/gin"
)

type ctxKey string

const sessionKey ctxKey = "session"

// ContextWithSession stores the authenticated session
func ContextWithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the session set by Session
func SessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey).(models.Session)
	return s, ok && s.UserID != ""
}

// SessionValidator validates an id token
type SessionValidator interface {
	ParseIDToken(token string) (models.Session, error)
}

// RequireAuthCookie redirects requests under the protected prefixes to the
// login path when none of the auth cookies is present. Only presence is
// checked; token validation happens in Session.
func RequireAuthCookie(prefixes, cookieNames []string, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !isProtected(path, prefixes) || hasAnyCookie(c.Request, cookieNames) {
			c.Next()
			return
		}

		target := loginPath + "?" + url.Values{"redirect_to": {path}}.Encode()
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

func isProtected(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func hasAnyCookie(r *http.Request, names []string) bool {
	for _, name := range names {
		if _, err := r.Cookie(name); err == nil {
			return true
		}
	}
	return false
}

// Session validates the id token cookie and attaches the session to the
// request. Missing or invalid tokens are answered with 401.
func Session(validator SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		session, err := validator.ParseIDToken(token)
		if err != nil {
			c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set("user_id", session.UserID)
		ctx := ContextWithSession(c.Request.Context(), session)
		ctx = logger.ContextWithUserID(ctx, session.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
