package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"gilded/internal/auth"
	apperrors "gilded/internal/errors"
	"gilded/internal/external"
	"gilded/internal/middleware"
	"gilded/internal/models"
	"gilded/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	services *service.Services
	auth     auth.Config
}

func NewHandlers(services *service.Services, authCfg auth.Config) *Handlers {
	return &Handlers{
		services: services,
		auth:     authCfg,
	}
}

// RegisterValidators adds the card rules used by CheckoutRequest to gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	rules := map[string]func(string) bool{
		"cardnumber": external.ValidCardNumber,
		"expiry":     external.ValidExpiry,
		"cvc":        external.ValidCVC,
	}
	for tag, valid := range rules {
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return nil
}

// session returns the authenticated session or answers 401
func session(c *gin.Context) (models.Session, bool) {
	s, ok := middleware.SessionFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
	}
	return s, ok
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrTicketTypeNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidCard),
		errors.Is(err, apperrors.ErrInvalidPreferences):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, apperrors.ErrRecommendationsUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err and answers with its status. Server errors get the generic
// message, everything else the error text.
func fail(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), message, "error", err)
	} else {
		message = err.Error()
	}
	c.Error(err)
	c.JSON(status, models.ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
}
