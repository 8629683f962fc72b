package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"gilded/internal/cache"
)

type attempts struct {
	count   int64
	expires time.Time
}

// MemoryCredentials is a process-local CredentialStore
type MemoryCredentials struct {
	mu       sync.Mutex
	byAuth   map[string]string
	byEmail  map[string]string
	attempts map[string]attempts
	now      func() time.Time
}

func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{
		byAuth:   make(map[string]string),
		byEmail:  make(map[string]string),
		attempts: make(map[string]attempts),
		now:      time.Now,
	}
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (m *MemoryCredentials) RegisterUser(_ context.Context, email, passwordHash, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = key(email)
	if _, ok := m.byEmail[email]; ok {
		return false, nil
	}
	m.byEmail[email] = userID
	m.byAuth[email+":"+passwordHash] = userID
	return true, nil
}

func (m *MemoryCredentials) GetUserIDByAuth(_ context.Context, email, passwordHash string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byAuth[key(email)+":"+passwordHash]; ok {
		return id, nil
	}
	return "", cache.ErrNotFound
}

func (m *MemoryCredentials) GetUserIDByEmail(_ context.Context, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byEmail[key(email)]; ok {
		return id, nil
	}
	return "", cache.ErrNotFound
}

func (m *MemoryCredentials) RecordFailedAttempt(_ context.Context, email string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	a := m.attempts[key(email)]
	if a.count == 0 || now.After(a.expires) {
		a = attempts{expires: now.Add(window)}
	}
	a.count++
	m.attempts[key(email)] = a
	return a.count, nil
}

func (m *MemoryCredentials) FailedAttempts(_ context.Context, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.attempts[key(email)]
	if !ok || m.now().After(a.expires) {
		return 0, nil
	}
	return a.count, nil
}

func (m *MemoryCredentials) ResetAttempts(_ context.Context, email string) error {
	m.mu.Lock()
	delete(m.attempts, key(email))
	m.mu.Unlock()
	return nil
}
