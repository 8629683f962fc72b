package auth

import (
	"errors"
	"fmt"
	"time"

	apperrors "gilded/internal/errors"
	"gilded/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeID      = "id"
	tokenTypeRefresh = "refresh"
)

// Claims of the id and refresh tokens
type Claims struct {
	Email     string `json:"email,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Tokens issues and validates HS256 session tokens
type Tokens struct {
	secret     []byte
	idTTL      time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokens(cfg Config) *Tokens {
	return &Tokens{
		secret:     []byte(cfg.JWTSecret),
		idTTL:      cfg.IDTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		now:        time.Now,
	}
}

// Issue returns a new id token and refresh token for the session
func (t *Tokens) Issue(s models.Session) (string, string, error) {
	now := t.now()

	idToken, err := t.sign(Claims{
		Email:     s.Email,
		TokenType: tokenTypeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.idTTL)),
		},
	})
	if err != nil {
		return "", "", err
	}

	refreshToken, err := t.sign(Claims{
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.refreshTTL)),
		},
	})
	if err != nil {
		return "", "", err
	}

	return idToken, refreshToken, nil
}

func (t *Tokens) sign(c Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseIDToken validates an id token and returns its session
func (t *Tokens) ParseIDToken(token string) (models.Session, error) {
	claims, err := t.parse(token, tokenTypeID)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{UserID: claims.Subject, Email: claims.Email}, nil
}

// ParseRefreshToken validates a refresh token and returns the user id
func (t *Tokens) ParseRefreshToken(token string) (string, error) {
	claims, err := t.parse(token, tokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (t *Tokens) parse(token, tokenType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token has expired", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.TokenType != tokenType || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}
	return claims, nil
}
