package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "gilded/internal/errors"
	"gilded/internal/models"
	"gilded/internal/search"
)

const maxDocuments = 1000

var keyword = map[string]any{"type": "keyword"}

var storeMappings = map[string]map[string]any{
	CollectionReservations: {
		"userId":     keyword,
		"eventId":    keyword,
		"id":         keyword,
		"eventName":  map[string]any{"type": "text", "fields": map[string]any{"keyword": keyword}},
		"date":       keyword,
		"location":   keyword,
		"imageUrl":   map[string]any{"type": "keyword", "index": false},
		"imageHint":  keyword,
		"reservedAt": keyword,
	},
	CollectionLoginHistory: {
		"userId":    keyword,
		"timestamp": map[string]any{"type": "date"},
	},
	CollectionUsers: {
		"id":         keyword,
		"email":      keyword,
		"firstName":  keyword,
		"lastName":   keyword,
		"dateJoined": keyword,
	},
}

type esReservation struct {
	UserID string `json:"userId"`
	models.Reservation
}

type esLogin struct {
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp"`
}

// ElasticsearchStore keeps each collection in its own index
type ElasticsearchStore struct {
	es *search.ElasticsearchClient
}

// NewElasticsearchStore creates the indices with explicit mappings when missing
func NewElasticsearchStore(ctx context.Context, es *search.ElasticsearchClient) (*ElasticsearchStore, error) {
	s := &ElasticsearchStore{es: es}
	for collection, properties := range storeMappings {
		if err := es.EnsureIndex(ctx, s.index(collection), properties); err != nil {
			return nil, fmt.Errorf("ensure %s index: %w", collection, err)
		}
	}
	return s, nil
}

func (s *ElasticsearchStore) index(collection string) string {
	return s.es.Config().IndexName(collection)
}

func reservationKey(userID, eventID string) string {
	return userID + "_" + eventID
}

func (s *ElasticsearchStore) CreateOrMergeReservation(ctx context.Context, userID, eventID string, r models.Reservation) error {
	doc := esReservation{UserID: userID, Reservation: reservationDoc(eventID, r)}
	if err := s.es.Upsert(ctx, s.index(CollectionReservations), reservationKey(userID, eventID), doc); err != nil {
		return fmt.Errorf("merge reservation: %w", err)
	}
	return nil
}

func (s *ElasticsearchStore) ListReservations(ctx context.Context, userID string) ([]models.Reservation, error) {
	hits, err := s.es.SearchTerm(ctx, s.index(CollectionReservations), "userId", userID, maxDocuments)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	out := make([]models.Reservation, 0, len(hits))
	for _, hit := range hits {
		var doc esReservation
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return nil, fmt.Errorf("decode reservation %s: %w", hit.ID, err)
		}
		out = append(out, doc.Reservation)
	}
	return out, nil
}

func (s *ElasticsearchStore) AppendLoginHistory(ctx context.Context, userID string, timestamp time.Time) (models.LoginHistoryEntry, error) {
	ts := formatTimestamp(timestamp)
	id, err := s.es.Index(ctx, s.index(CollectionLoginHistory), "", esLogin{UserID: userID, Timestamp: ts})
	if err != nil {
		return models.LoginHistoryEntry{}, fmt.Errorf("append login history: %w", err)
	}
	return models.LoginHistoryEntry{ID: id, Timestamp: ts}, nil
}

func (s *ElasticsearchStore) ListLoginHistory(ctx context.Context, userID string) ([]models.LoginHistoryEntry, error) {
	hits, err := s.es.SearchTerm(ctx, s.index(CollectionLoginHistory), "userId", userID, maxDocuments)
	if err != nil {
		return nil, fmt.Errorf("list login history: %w", err)
	}

	out := make([]models.LoginHistoryEntry, 0, len(hits))
	for _, hit := range hits {
		var doc esLogin
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return nil, fmt.Errorf("decode login entry %s: %w", hit.ID, err)
		}
		out = append(out, models.LoginHistoryEntry{ID: hit.ID, Timestamp: doc.Timestamp})
	}
	return out, nil
}

func (s *ElasticsearchStore) CreateUser(ctx context.Context, profile models.UserProfile) error {
	if _, err := s.es.Index(ctx, s.index(CollectionUsers), profile.ID, profile); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *ElasticsearchStore) GetUser(ctx context.Context, userID string) (models.UserProfile, error) {
	var profile models.UserProfile
	found, err := s.es.Get(ctx, s.index(CollectionUsers), userID, &profile)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return models.UserProfile{}, apperrors.ErrUserNotFound
	}
	return profile, nil
}

func (s *ElasticsearchStore) HealthCheck(ctx context.Context) error {
	return s.es.HealthCheck(ctx)
}

func (s *ElasticsearchStore) Close() error {
	return nil
}
