package handlers

import (
	"errors"
	"net/http"

	apperrors "gilded/internal/errors"
	"gilded/internal/models"

	"github.com/gin-gonic/gin"
)

// RecommendationSeed - GET /recommendations
// Начальное значение поля прошлых бронирований
func (h *Handlers) RecommendationSeed(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	seed, err := h.services.Recommendations.Seed(c.Request.Context(), s.UserID)
	if err != nil {
		fail(c, err, "Failed to load past bookings")
		return
	}

	c.JSON(http.StatusOK, models.RecommendationSeedResponse{PastBookings: seed})
}

// Recommend - POST /recommendations
func (h *Handlers) Recommend(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	response, err := h.services.Recommendations.Recommend(c.Request.Context(), s.UserID, req)
	if errors.Is(err, apperrors.ErrRecommendationsUnavailable) {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: apperrors.RecommendationsUnavailableMessage})
		return
	}
	if err != nil {
		fail(c, err, "Failed to generate recommendations")
		return
	}

	c.JSON(http.StatusOK, response)
}
