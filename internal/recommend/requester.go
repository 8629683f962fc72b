package recommend

import (
	"context"
	"fmt"
	"strings"

	"gilded/internal/ai"
	apperrors "gilded/internal/errors"
	"gilded/internal/logger"
	"gilded/internal/metrics"
	"gilded/internal/models"
)

// Requester asks the generator for recommendations
type Requester struct {
	generator ai.Generator
}

func NewRequester(generator ai.Generator) *Requester {
	return &Requester{generator: generator}
}

// Request returns the raw comma separated recommendations. Every failure of
// the external call is logged and reported as ErrRecommendationsUnavailable.
func (r *Requester) Request(ctx context.Context, req models.RecommendationRequest) (string, error) {
	if strings.TrimSpace(req.UserPreferences) == "" {
		return "", apperrors.ErrInvalidPreferences
	}

	prompt, err := renderPrompt(req.UserPreferences, req.PastBookings)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	out, err := r.generator.Generate(ctx, prompt, FieldRecommendations)
	metrics.Generations.WithLabelValues("recommendations", metrics.Outcome(err)).Inc()
	if err != nil {
		logger.WithContext(ctx).Error("Recommendation generation failed", "error", err)
		return "", apperrors.ErrRecommendationsUnavailable
	}

	return out[FieldRecommendations], nil
}

// Recommend requests recommendations and parses them into labels
func (r *Requester) Recommend(ctx context.Context, req models.RecommendationRequest) (models.RecommendationResult, error) {
	raw, err := r.Request(ctx, req)
	if err != nil {
		return models.RecommendationResult{}, err
	}
	return models.RecommendationResult{Recommendations: Split(raw)}, nil
}
