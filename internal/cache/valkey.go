package cache

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no credential matches
var ErrNotFound = errors.New("not found in cache")

type Config struct {
	Addr         string
	Password     string
	DB           int
	UsersHashKey string
}

// ValkeyClient stores credentials and sign-in attempt counters
type ValkeyClient struct {
	client       redis.UniversalClient
	usersHashKey string
}

func NewValkeyClient(ctx context.Context, cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return NewValkeyClientFrom(rdb, cfg.UsersHashKey), nil
}

// NewValkeyClientFrom wraps an existing connection
func NewValkeyClientFrom(rdb redis.UniversalClient, usersHashKey string) *ValkeyClient {
	if usersHashKey == "" {
		usersHashKey = "users:auth"
	}
	return &ValkeyClient{client: rdb, usersHashKey: usersHashKey}
}

// PasswordHash is the hex sha256 of a password
func PasswordHash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return fmt.Sprintf("%x", sum)
}

func authKey(email, passwordHash string) string {
	return base64.StdEncoding.EncodeToString([]byte(email + ":" + passwordHash))
}

func (v *ValkeyClient) emailsKey() string {
	return v.usersHashKey + ":emails"
}

func attemptsKey(email string) string {
	return "auth:attempts:" + email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser stores the credential and email index. It reports false when
// the email is already registered.
func (v *ValkeyClient) RegisterUser(ctx context.Context, email, passwordHash, userID string) (bool, error) {
	email = normalizeEmail(email)

	created, err := v.client.HSetNX(ctx, v.emailsKey(), email, userID).Result()
	if err != nil {
		return false, fmt.Errorf("cache write error: %w", err)
	}
	if !created {
		return false, nil
	}

	if err := v.client.HSet(ctx, v.usersHashKey, authKey(email, passwordHash), userID).Err(); err != nil {
		// Release the email so the sign-up can be retried
		v.client.HDel(ctx, v.emailsKey(), email)
		return false, fmt.Errorf("cache write error: %w", err)
	}
	return true, nil
}

// GetUserIDByAuth resolves a user id from email and password hash
func (v *ValkeyClient) GetUserIDByAuth(ctx context.Context, email, passwordHash string) (string, error) {
	userID, err := v.client.HGet(ctx, v.usersHashKey, authKey(normalizeEmail(email), passwordHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("cache lookup error: %w", err)
	}
	return userID, nil
}

// GetUserIDByEmail resolves a user id from the email index
func (v *ValkeyClient) GetUserIDByEmail(ctx context.Context, email string) (string, error) {
	userID, err := v.client.HGet(ctx, v.emailsKey(), normalizeEmail(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("cache lookup error: %w", err)
	}
	return userID, nil
}

// RecordFailedAttempt increments the failure counter, starting the window on
// the first failure, and returns the current count.
func (v *ValkeyClient) RecordFailedAttempt(ctx context.Context, email string, window time.Duration) (int64, error) {
	key := attemptsKey(normalizeEmail(email))

	pipe := v.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("cache write error: %w", err)
	}
	return incr.Val(), nil
}

// FailedAttempts returns the failures recorded in the current window
func (v *ValkeyClient) FailedAttempts(ctx context.Context, email string) (int64, error) {
	n, err := v.client.Get(ctx, attemptsKey(normalizeEmail(email))).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("cache lookup error: %w", err)
	}
	return n, nil
}

// ResetAttempts clears the failure counter after a successful sign-in
func (v *ValkeyClient) ResetAttempts(ctx context.Context, email string) error {
	return v.client.Del(ctx, attemptsKey(normalizeEmail(email))).Err()
}

func (v *ValkeyClient) Ping(ctx context.Context) error {
	return v.client.Ping(ctx).Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
