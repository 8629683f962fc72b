package repository

import (
	"context"
	"time"

	"gilded/internal/models"
)

// Collection names shared by the store backends
const (
	CollectionReservations = "reservations"
	CollectionLoginHistory = "login-history"
	CollectionUsers        = "users"
)

// Store is the remote document store. Documents are logically laid out as
// users/{uid}, users/{uid}/reservations/{eventId} and
// users/{uid}/loginHistory/{autoId}.
type Store interface {
	// CreateOrMergeReservation merges r into users/{userID}/reservations/{eventID},
	// creating it when missing. Fields not carried by r are preserved.
	CreateOrMergeReservation(ctx context.Context, userID, eventID string, r models.Reservation) error
	ListReservations(ctx context.Context, userID string) ([]models.Reservation, error)

	// AppendLoginHistory adds an entry with a store-assigned id
	AppendLoginHistory(ctx context.Context, userID string, timestamp time.Time) (models.LoginHistoryEntry, error)
	ListLoginHistory(ctx context.Context, userID string) ([]models.LoginHistoryEntry, error)

	// CreateUser writes the full profile, replacing any previous one
	CreateUser(ctx context.Context, profile models.UserProfile) error
	GetUser(ctx context.Context, userID string) (models.UserProfile, error)

	HealthCheck(ctx context.Context) error
	Close() error
}

// reservationDoc normalizes the id fields of a reservation before it is written
func reservationDoc(eventID string, r models.Reservation) models.Reservation {
	r.ID = eventID
	r.EventID = eventID
	return r
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
