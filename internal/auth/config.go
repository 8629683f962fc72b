package auth

import "time"

type Config struct {
	JWTSecret       string
	IDTokenTTL      time.Duration
	RefreshTokenTTL time.Duration

	IDCookie      string
	RefreshCookie string
	SecureCookies bool

	// Requests under these prefixes need one of the auth cookies
	ProtectedPrefixes []string
	LoginPath         string

	MaxAttempts   int
	AttemptWindow time.Duration

	// Provider is "valkey" or "memory"
	Provider string
}

// CookieNames returns the id and refresh cookie names
func (c Config) CookieNames() []string {
	return []string{c.IDCookie, c.RefreshCookie}
}
