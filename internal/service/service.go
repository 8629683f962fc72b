package service

import (
	"gilded/internal/auth"
	"gilded/internal/catalog"
	"gilded/internal/clock"
	"gilded/internal/external"
	"gilded/internal/messaging"
	"gilded/internal/recommend"
	"gilded/internal/repository"
)

// Deps are the collaborators shared by the services
type Deps struct {
	Catalog   *catalog.Store
	Repos     *repository.Repositories
	Requester *recommend.Requester
	Notifier  ConfirmationSender
	Publisher messaging.Publisher
	Payments  *external.PaymentClient
	Provider  auth.Provider
	Tokens    *auth.Tokens
	Clock     clock.Clock
}

type Services struct {
	Events          *EventService
	Recommendations *RecommendationService
	Bookings        *BookingService
	Auth            *AuthService
	Confirmations   *ConfirmationDispatcher
}

func NewServices(d Deps) *Services {
	if d.Clock == nil {
		d.Clock = clock.NewSystem()
	}

	confirmations := NewConfirmationDispatcher(d.Publisher, d.Notifier)

	return &Services{
		Events:          NewEventService(d.Catalog),
		Recommendations: NewRecommendationService(d.Requester, d.Catalog, d.Repos, d.Clock),
		Bookings:        NewBookingService(d.Catalog, d.Repos, d.Payments, confirmations, d.Clock),
		Auth:            NewAuthService(d.Provider, d.Repos, d.Tokens, d.Clock),
		Confirmations:   confirmations,
	}
}
