package service

import (
	"context"
	"fmt"
	"strings"

	"gilded/internal/catalog"
	"gilded/internal/classifier"
	"gilded/internal/clock"
	"gilded/internal/logger"
	"gilded/internal/models"
	"gilded/internal/recommend"
	"gilded/internal/repository"
)

type RecommendationService struct {
	requester *recommend.Requester
	catalog   *catalog.Store
	repos     *repository.Repositories
	clock     clock.Clock
}

func NewRecommendationService(requester *recommend.Requester, c *catalog.Store, repos *repository.Repositories, clk clock.Clock) *RecommendationService {
	return &RecommendationService{
		requester: requester,
		catalog:   c,
		repos:     repos,
		clock:     clk,
	}
}

// Seed returns the names of the user's past reservations joined by ", "
func (s *RecommendationService) Seed(ctx context.Context, userID string) (string, error) {
	reservations, err := s.repos.Store.ListReservations(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to list reservations: %w", err)
	}

	buckets := classifier.Classify(reservations, s.clock.Now())
	names := make([]string, 0, len(buckets.Past))
	for _, r := range buckets.Past {
		if r.EventName != "" {
			names = append(names, r.EventName)
		}
	}
	return strings.Join(names, ", "), nil
}

// Recommend asks for recommendations and matches them against the catalog.
// Empty past bookings are seeded from the user's history when possible.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, req models.RecommendationRequest) (*models.RecommendationsResponse, error) {
	if strings.TrimSpace(req.PastBookings) == "" && userID != "" {
		seed, err := s.Seed(ctx, userID)
		if err != nil {
			logger.WithContext(ctx).Warn("Failed to seed past bookings", "error", err)
		}
		req.PastBookings = seed
	}

	result, err := s.requester.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &models.RecommendationsResponse{
		Recommendations: result.Recommendations,
		Events:          recommend.Match(result.Recommendations, s.catalog.All()),
	}
	if len(resp.Recommendations) > 0 && len(resp.Events) == 0 {
		resp.Message = recommend.FallbackMessage(resp.Recommendations)
	}
	return resp, nil
}
