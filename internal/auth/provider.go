package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gilded/internal/cache"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const minPasswordLength = 6

// Provider registers and authenticates users
type Provider interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
}

// CredentialStore persists credentials and failed attempt counters.
// Lookups that find nothing return cache.ErrNotFound.
type CredentialStore interface {
	RegisterUser(ctx context.Context, email, passwordHash, userID string) (bool, error)
	GetUserIDByAuth(ctx context.Context, email, passwordHash string) (string, error)
	GetUserIDByEmail(ctx context.Context, email string) (string, error)
	RecordFailedAttempt(ctx context.Context, email string, window time.Duration) (int64, error)
	FailedAttempts(ctx context.Context, email string) (int64, error)
	ResetAttempts(ctx context.Context, email string) error
}

// CredentialProvider implements Provider over a CredentialStore
type CredentialProvider struct {
	store         CredentialStore
	validate      *validator.Validate
	maxAttempts   int
	attemptWindow time.Duration
}

func NewCredentialProvider(store CredentialStore, cfg Config) *CredentialProvider {
	return &CredentialProvider{
		store:         store,
		validate:      validator.New(),
		maxAttempts:   cfg.MaxAttempts,
		attemptWindow: cfg.AttemptWindow,
	}
}

func (p *CredentialProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if err := p.validate.Var(email, "required,email"); err != nil {
		return "", newProviderError(CodeInvalidEmail, "The email address is badly formatted.")
	}
	if len(password) < minPasswordLength {
		return "", newProviderError(CodeWeakPassword, "Password should be at least 6 characters.")
	}

	userID := uuid.New().String()
	created, err := p.store.RegisterUser(ctx, email, cache.PasswordHash(password), userID)
	if err != nil {
		return "", fmt.Errorf("register user: %w", err)
	}
	if !created {
		return "", newProviderError(CodeEmailInUse, "The email address is already in use by another account.")
	}
	return userID, nil
}

func (p *CredentialProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if err := p.validate.Var(email, "required,email"); err != nil {
		return "", newProviderError(CodeInvalidEmail, "The email address is badly formatted.")
	}

	if p.maxAttempts > 0 {
		failed, err := p.store.FailedAttempts(ctx, email)
		if err != nil {
			return "", fmt.Errorf("read attempts: %w", err)
		}
		if failed >= int64(p.maxAttempts) {
			return "", newProviderError(CodeTooManyRequests, "Access to this account has been temporarily disabled due to many failed login attempts.")
		}
	}

	userID, err := p.store.GetUserIDByAuth(ctx, email, cache.PasswordHash(password))
	if err == nil {
		if err := p.store.ResetAttempts(ctx, email); err != nil {
			return "", fmt.Errorf("reset attempts: %w", err)
		}
		return userID, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		return "", fmt.Errorf("lookup credentials: %w", err)
	}

	if _, err := p.store.RecordFailedAttempt(ctx, email, p.attemptWindow); err != nil {
		return "", fmt.Errorf("record attempt: %w", err)
	}

	if _, err := p.store.GetUserIDByEmail(ctx, email); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return "", newProviderError(CodeUserNotFound, "There is no user record corresponding to this identifier.")
		}
		return "", fmt.Errorf("lookup email: %w", err)
	}
	return "", newProviderError(CodeWrongPassword, "The password is invalid.")
}
