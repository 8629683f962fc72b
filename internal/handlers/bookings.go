package handlers

import (
	"net/http"

	"gilded/internal/models"

	"github.com/gin-gonic/gin"
)

// Checkout - POST /checkout/:id
// Оплата и подтверждение бронирования
func (h *Handlers) Checkout(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	confirmation, err := h.services.Bookings.Checkout(c.Request.Context(), s, c.Param("id"), &req)
	if err != nil {
		fail(c, err, "Failed to complete booking")
		return
	}

	c.JSON(http.StatusCreated, confirmation)
}

// ListReservations - GET /reservations
func (h *Handlers) ListReservations(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	response, err := h.services.Bookings.Reservations(c.Request.Context(), s.UserID)
	if err != nil {
		fail(c, err, "Failed to list reservations")
		return
	}

	c.JSON(http.StatusOK, response)
}
