package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gilded/internal/database"
	apperrors "gilded/internal/errors"
	"gilded/internal/models"

	"github.com/google/uuid"
)

// PostgresStore keeps documents as JSONB rows of the documents table
type PostgresStore struct {
	db *database.DB
}

func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const mergeDocumentQuery = `
	INSERT INTO documents (collection, owner_id, doc_id, data)
	VALUES ($1, $2, $3, $4::jsonb)
	ON CONFLICT (collection, owner_id, doc_id)
	DO UPDATE SET data = documents.data || EXCLUDED.data, updated_at = NOW()`

const replaceDocumentQuery = `
	INSERT INTO documents (collection, owner_id, doc_id, data)
	VALUES ($1, $2, $3, $4::jsonb)
	ON CONFLICT (collection, owner_id, doc_id)
	DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`

const listDocumentsQuery = `
	SELECT doc_id, data
	FROM documents
	WHERE collection = $1 AND owner_id = $2
	ORDER BY created_at, doc_id
	LIMIT $3`

func (s *PostgresStore) write(ctx context.Context, query, collection, ownerID, docID string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, query, collection, ownerID, docID, string(data))
	return err
}

func (s *PostgresStore) list(ctx context.Context, collection, ownerID string, decode func(docID string, data []byte) error) error {
	rows, err := s.db.QueryWithRetry(ctx, listDocumentsQuery, collection, ownerID, maxDocuments)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var docID string
		var data []byte
		if err := rows.Scan(&docID, &data); err != nil {
			return err
		}
		if err := decode(docID, data); err != nil {
			return fmt.Errorf("decode %s/%s: %w", collection, docID, err)
		}
	}
	return rows.Err()
}

func (s *PostgresStore) CreateOrMergeReservation(ctx context.Context, userID, eventID string, r models.Reservation) error {
	if err := s.write(ctx, mergeDocumentQuery, CollectionReservations, userID, eventID, reservationDoc(eventID, r)); err != nil {
		return fmt.Errorf("merge reservation: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListReservations(ctx context.Context, userID string) ([]models.Reservation, error) {
	out := []models.Reservation{}
	err := s.list(ctx, CollectionReservations, userID, func(_ string, data []byte) error {
		var r models.Reservation
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AppendLoginHistory(ctx context.Context, userID string, timestamp time.Time) (models.LoginHistoryEntry, error) {
	entry := models.LoginHistoryEntry{
		ID:        uuid.New().String(),
		Timestamp: formatTimestamp(timestamp),
	}
	if err := s.write(ctx, replaceDocumentQuery, CollectionLoginHistory, userID, entry.ID, entry); err != nil {
		return models.LoginHistoryEntry{}, fmt.Errorf("append login history: %w", err)
	}
	return entry, nil
}

func (s *PostgresStore) ListLoginHistory(ctx context.Context, userID string) ([]models.LoginHistoryEntry, error) {
	out := []models.LoginHistoryEntry{}
	err := s.list(ctx, CollectionLoginHistory, userID, func(docID string, data []byte) error {
		var entry models.LoginHistoryEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return err
		}
		entry.ID = docID
		out = append(out, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list login history: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, profile models.UserProfile) error {
	if err := s.write(ctx, replaceDocumentQuery, CollectionUsers, profile.ID, profile.ID, profile); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, userID string) (models.UserProfile, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND owner_id = $2 AND doc_id = $2`,
		CollectionUsers, userID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("get user: %w", err)
	}

	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("decode user: %w", err)
	}
	return profile, nil
}

func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	health := s.db.HealthCheck(ctx)
	if health.Status != "healthy" {
		return fmt.Errorf("database %s: %s", health.Status, health.Error)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
