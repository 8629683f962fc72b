package validation

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"gilded/internal/ai"
	"gilded/internal/api"
	"gilded/internal/auth"
	"gilded/internal/catalog"
	"gilded/internal/config"
	"gilded/internal/external"
	"gilded/internal/handlers"
	"gilded/internal/notify"
	"gilded/internal/recommend"
	"gilded/internal/repository"
	"gilded/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSmokeValidatorAgainstInMemoryServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, handlers.RegisterValidators())

	cfg := &config.Config{
		Auth: auth.Config{
			JWTSecret:         "smoke",
			IDTokenTTL:        time.Hour,
			RefreshTokenTTL:   time.Hour,
			IDCookie:          "auth-id-token",
			RefreshCookie:     "auth-refresh-token",
			LoginPath:         "/login",
			ProtectedPrefixes: []string{"/reservations", "/recommendations"},
			MaxAttempts:       5,
			AttemptWindow:     time.Minute,
		},
	}

	repos := repository.NewMemoryRepositories(false)
	tokens := auth.NewTokens(cfg.Auth)
	services := service.NewServices(service.Deps{
		Catalog:   catalog.Default(),
		Repos:     repos,
		Requester: recommend.NewRequester(ai.Disabled{}),
		Notifier:  notify.NewNotifier(ai.Disabled{}, notify.LogMailer{}),
		Payments:  external.NewPaymentClient(external.PaymentConfig{}),
		Provider:  auth.NewCredentialProvider(auth.NewMemoryCredentials(), cfg.Auth),
		Tokens:    tokens,
	})
	server := api.NewServerWith(cfg, services, repos, tokens)

	ts := httptest.NewServer(server.GetRouter())
	defer ts.Close()

	require.NoError(t, NewSmokeValidator(ts.URL).ValidateAll(context.Background()))
	require.NoError(t, server.Cleanup(context.Background()))
}
