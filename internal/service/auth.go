package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gilded/internal/auth"
	"gilded/internal/classifier"
	"gilded/internal/clock"
	"gilded/internal/models"
	"gilded/internal/repository"
)

type AuthService struct {
	provider auth.Provider
	repos    *repository.Repositories
	tokens   *auth.Tokens
	clock    clock.Clock
}

func NewAuthService(provider auth.Provider, repos *repository.Repositories, tokens *auth.Tokens, clk clock.Clock) *AuthService {
	return &AuthService{
		provider: provider,
		repos:    repos,
		tokens:   tokens,
		clock:    clk,
	}
}

// SignUp registers the user and writes the profile document
func (s *AuthService) SignUp(ctx context.Context, req *models.SignupRequest) (models.Session, error) {
	email := strings.TrimSpace(req.Email)
	userID, err := s.provider.SignUp(ctx, email, req.Password)
	if err != nil {
		return models.Session{}, err
	}

	profile := models.UserProfile{
		ID:         userID,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      email,
		DateJoined: s.clock.Now().Format(time.RFC3339),
	}

	store := s.repos.Store
	if _, err := s.repos.Writes.Submit(ctx, "user.create", func(ctx context.Context) error {
		return store.CreateUser(ctx, profile)
	}); err != nil {
		return models.Session{}, fmt.Errorf("failed to save user profile: %w", err)
	}

	return models.Session{UserID: userID, Email: email}, nil
}

// SignIn authenticates the user and appends a login history entry
func (s *AuthService) SignIn(ctx context.Context, req *models.LoginRequest) (models.Session, error) {
	email := strings.TrimSpace(req.Email)
	userID, err := s.provider.SignIn(ctx, email, req.Password)
	if err != nil {
		return models.Session{}, err
	}

	now := s.clock.Now()
	store := s.repos.Store
	if _, err := s.repos.Writes.Submit(ctx, "login_history.append", func(ctx context.Context) error {
		_, err := store.AppendLoginHistory(ctx, userID, now)
		return err
	}); err != nil {
		return models.Session{}, fmt.Errorf("failed to record login: %w", err)
	}

	return models.Session{UserID: userID, Email: email}, nil
}

// IssueTokens returns the id and refresh tokens for the session
func (s *AuthService) IssueTokens(session models.Session) (string, string, error) {
	return s.tokens.Issue(session)
}

// LoginHistory returns the user's sign-ins, newest first
func (s *AuthService) LoginHistory(ctx context.Context, userID string) ([]models.LoginHistoryEntry, error) {
	entries, err := s.repos.Store.ListLoginHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list login history: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ti, okI := classifier.ParseDate(entries[i].Timestamp)
		tj, okJ := classifier.ParseDate(entries[j].Timestamp)
		if okI && okJ {
			return ti.After(tj)
		}
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}

// Profile returns the signed-in user's profile document
func (s *AuthService) Profile(ctx context.Context, userID string) (models.UserProfile, error) {
	return s.repos.Store.GetUser(ctx, userID)
}

// Refresh validates a refresh token and returns the session it belongs to
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (models.Session, error) {
	userID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return models.Session{}, err
	}

	session := models.Session{UserID: userID}
	if profile, err := s.repos.Store.GetUser(ctx, userID); err == nil {
		session.Email = profile.Email
	}
	return session, nil
}
