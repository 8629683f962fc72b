package repository

import (
	"context"
	"sync"
	"time"

	apperrors "gilded/internal/errors"
	"gilded/internal/models"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory
type MemoryStore struct {
	mu           sync.RWMutex
	reservations map[string][]models.Reservation
	logins       map[string][]models.LoginHistoryEntry
	users        map[string]models.UserProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reservations: make(map[string][]models.Reservation),
		logins:       make(map[string][]models.LoginHistoryEntry),
		users:        make(map[string]models.UserProfile),
	}
}

func (s *MemoryStore) CreateOrMergeReservation(ctx context.Context, userID, eventID string, r models.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := reservationDoc(eventID, r)

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.reservations[userID]
	for i := range list {
		if list[i].ID == eventID {
			list[i].Merge(doc)
			return nil
		}
	}
	s.reservations[userID] = append(list, doc)
	return nil
}

func (s *MemoryStore) ListReservations(ctx context.Context, userID string) ([]models.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Reservation, len(s.reservations[userID]))
	copy(out, s.reservations[userID])
	return out, nil
}

func (s *MemoryStore) AppendLoginHistory(ctx context.Context, userID string, timestamp time.Time) (models.LoginHistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.LoginHistoryEntry{}, err
	}
	entry := models.LoginHistoryEntry{
		ID:        uuid.New().String(),
		Timestamp: formatTimestamp(timestamp),
	}

	s.mu.Lock()
	s.logins[userID] = append(s.logins[userID], entry)
	s.mu.Unlock()

	return entry, nil
}

func (s *MemoryStore) ListLoginHistory(ctx context.Context, userID string) ([]models.LoginHistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LoginHistoryEntry, len(s.logins[userID]))
	copy(out, s.logins[userID])
	return out, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, profile models.UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.users[profile.ID] = profile
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, userID string) (models.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return models.UserProfile{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.users[userID]
	if !ok {
		return models.UserProfile{}, apperrors.ErrUserNotFound
	}
	return profile, nil
}

func (s *MemoryStore) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}
