package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gilded/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cookieNames = []string{"auth-id-token", "auth-refresh-token"}

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireAuthCookie([]string{"/reservations", "/recommendations"}, cookieNames, "/login"))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/reservations", ok)
	r.GET("/recommendations", ok)
	r.GET("/events", ok)
	return r
}

func TestRequireAuthCookie_Redirects(t *testing.T) {
	r := guardedRouter()

	for _, path := range []string{"/reservations", "/recommendations"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?redirect_to=%2F"+path[1:], w.Header().Get("Location"))
	}
}

func TestRequireAuthCookie_PassesWithEitherCookie(t *testing.T) {
	r := guardedRouter()

	for _, name := range cookieNames {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
		req.AddCookie(&http.Cookie{Name: name, Value: "anything"})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, name)
		assert.Equal(t, "ok", w.Body.String())
	}
}

func TestRequireAuthCookie_PresenceOnly(t *testing.T) {
	r := guardedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	req.Header.Set("Cookie", "auth-id-token=")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthCookie_IgnoresUnprotectedPaths(t *testing.T) {
	r := guardedRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

type stubValidator struct{}

func (stubValidator) ParseIDToken(token string) (models.Session, error) {
	if token == "good" {
		return models.Session{UserID: "u1", Email: "ada@example.com"}, nil
	}
	return models.Session{}, errors.New("invalid token")
}

func TestSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(stubValidator{}, "auth-id-token"))
	r.GET("/me", func(c *gin.Context) {
		s, ok := SessionFromContext(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, s.UserID)
	})

	tests := []struct {
		name   string
		cookie string
		want   int
	}{
		{"valid", "good", http.StatusOK},
		{"invalid", "bad", http.StatusUnauthorized},
		{"missing", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "auth-id-token", Value: tt.cookie})
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
