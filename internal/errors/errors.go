package errors

import "errors"

var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrTicketTypeNotFound  = errors.New("ticket type not found")
	ErrPaymentDeclined     = errors.New("payment declined")
	ErrInvalidCard         = errors.New("invalid card details")
	ErrInvalidPreferences  = errors.New("user preferences are required")
	ErrStoreNotConfigured  = errors.New("document store is not configured")
	ErrBrokerNotConfigured = errors.New("message broker is not configured")
)

// ErrRecommendationsUnavailable is the only error the recommendation flow
// lets out of the external-capability boundary.
var ErrRecommendationsUnavailable = errors.New("failed to generate recommendations")

// RecommendationsUnavailableMessage is what users see when generation fails
const RecommendationsUnavailableMessage = "Failed to generate recommendations. Please try again later."
