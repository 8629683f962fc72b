package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "gilded/internal/errors"
	"gilded/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		JWTSecret:       "test-secret",
		IDTokenTTL:      time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		MaxAttempts:     3,
		AttemptWindow:   time.Minute,
	}
}

func providerCode(t *testing.T, err error) string {
	t.Helper()
	var perr *ProviderError
	require.True(t, errors.As(err, &perr), "expected provider error, got %v", err)
	return perr.Code
}

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	p := NewCredentialProvider(NewMemoryCredentials(), testConfig())

	uid, err := p.SignUp(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	got, err := p.SignIn(ctx, "ADA@example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, uid, got)
}

func TestSignUpErrors(t *testing.T) {
	ctx := context.Background()
	p := NewCredentialProvider(NewMemoryCredentials(), testConfig())

	_, err := p.SignUp(ctx, "not-an-email", "secret1")
	assert.Equal(t, CodeInvalidEmail, providerCode(t, err))

	_, err = p.SignUp(ctx, "ada@example.com", "123")
	assert.Equal(t, CodeWeakPassword, providerCode(t, err))

	_, err = p.SignUp(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	_, err = p.SignUp(ctx, "ada@example.com", "another1")
	assert.Equal(t, CodeEmailInUse, providerCode(t, err))
}

func TestSignInErrors(t *testing.T) {
	ctx := context.Background()
	p := NewCredentialProvider(NewMemoryCredentials(), testConfig())
	_, err := p.SignUp(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)

	_, err = p.SignIn(ctx, "bob@example.com", "secret1")
	assert.Equal(t, CodeUserNotFound, providerCode(t, err))

	_, err = p.SignIn(ctx, "ada@example.com", "wrong")
	assert.Equal(t, CodeWrongPassword, providerCode(t, err))
}

func TestSignInThrottling(t *testing.T) {
	ctx := context.Background()
	creds := NewMemoryCredentials()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	creds.now = func() time.Time { return now }
	p := NewCredentialProvider(creds, testConfig())

	_, err := p.SignUp(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = p.SignIn(ctx, "ada@example.com", "wrong")
		assert.Equal(t, CodeWrongPassword, providerCode(t, err))
	}

	_, err = p.SignIn(ctx, "ada@example.com", "secret1")
	assert.Equal(t, CodeTooManyRequests, providerCode(t, err))

	now = now.Add(2 * time.Minute)
	_, err = p.SignIn(ctx, "ada@example.com", "secret1")
	assert.NoError(t, err)
}

func TestLoginErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{newProviderError(CodeUserNotFound, "x"), MsgInvalidCredentials},
		{newProviderError(CodeWrongPassword, "x"), MsgInvalidCredentials},
		{newProviderError(CodeInvalidCredential, "x"), MsgInvalidCredentials},
		{newProviderError(CodeTooManyRequests, "x"), MsgTooManyRequests},
		{newProviderError("auth/network-request-failed", "Network error."), "Network error."},
		{errors.New("boom"), MsgUnexpected},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LoginErrorMessage(tt.err))
	}
}

func TestSignupErrorMessage(t *testing.T) {
	assert.Equal(t, MsgEmailInUse, SignupErrorMessage(newProviderError(CodeEmailInUse, "x")))
	assert.Equal(t, MsgWeakPassword, SignupErrorMessage(newProviderError(CodeWeakPassword, "x")))
	assert.Equal(t, MsgInvalidEmail, SignupErrorMessage(newProviderError(CodeInvalidEmail, "x")))
	assert.Equal(t, "raw", SignupErrorMessage(newProviderError("auth/other", "raw")))
	assert.Equal(t, MsgUnexpected, SignupErrorMessage(errors.New("boom")))
}

func TestTokens(t *testing.T) {
	tokens := NewTokens(testConfig())
	session := models.Session{UserID: "u1", Email: "ada@example.com"}

	idToken, refreshToken, err := tokens.Issue(session)
	require.NoError(t, err)

	got, err := tokens.ParseIDToken(idToken)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	uid, err := tokens.ParseRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)

	_, err = tokens.ParseIDToken(refreshToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = tokens.ParseIDToken("garbage")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	other := NewTokens(Config{JWTSecret: "other", IDTokenTTL: time.Hour})
	_, err = other.ParseIDToken(idToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens(testConfig())
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	idToken, _, err := tokens.Issue(models.Session{UserID: "u1"})
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.ParseIDToken(idToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
