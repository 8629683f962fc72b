package service

import (
	"context"
	"fmt"
	"time"

	"gilded/internal/catalog"
	"gilded/internal/classifier"
	"gilded/internal/clock"
	apperrors "gilded/internal/errors"
	"gilded/internal/external"
	"gilded/internal/logger"
	"gilded/internal/metrics"
	"gilded/internal/models"
	"gilded/internal/repository"
)

const BookingStatusConfirmed = "confirmed"

type BookingService struct {
	catalog       *catalog.Store
	repos         *repository.Repositories
	payments      *external.PaymentClient
	confirmations *ConfirmationDispatcher
	clock         clock.Clock
}

func NewBookingService(c *catalog.Store, repos *repository.Repositories, payments *external.PaymentClient, confirmations *ConfirmationDispatcher, clk clock.Clock) *BookingService {
	return &BookingService{
		catalog:       c,
		repos:         repos,
		payments:      payments,
		confirmations: confirmations,
		clock:         clk,
	}
}

// Checkout charges the card for one ticket and confirms the booking
func (s *BookingService) Checkout(ctx context.Context, session models.Session, eventID string, req *models.CheckoutRequest) (*models.BookingConfirmation, error) {
	event, err := s.catalog.Get(eventID)
	if err != nil {
		return nil, err
	}

	tier, ok := event.TicketType(req.TicketTypeID)
	if !ok {
		return nil, apperrors.ErrTicketTypeNotFound
	}

	payment, err := s.payments.Charge(ctx, external.PaymentRequest{
		OrderID:     session.UserID + "-" + event.ID,
		Amount:      tier.Price,
		Description: fmt.Sprintf("%s, %s", event.Name, tier.Name),
		Card: external.Card{
			Name:   req.CardName,
			Number: req.CardNumber,
			Expiry: req.ExpiryDate,
			CVC:    req.CVC,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	return s.Confirm(ctx, session, event, tier, payment.PaymentID)
}

// Confirm records the reservation and dispatches the confirmation email.
// The reservation write is non-blocking unless the store runs in sync mode.
func (s *BookingService) Confirm(ctx context.Context, session models.Session, event models.Event, tier models.TicketType, paymentID string) (*models.BookingConfirmation, error) {
	log := logger.WithContext(ctx).With("event_id", event.ID)

	reservation := models.Reservation{
		ID:         event.ID,
		EventID:    event.ID,
		EventName:  event.Name,
		Date:       event.Date,
		Location:   event.Location,
		ImageURL:   event.ImageURL,
		ImageHint:  event.ImageHint,
		ReservedAt: s.clock.Now().Format(time.RFC3339),
	}

	store := s.repos.Store
	_, err := s.repos.Writes.Submit(ctx, "reservation.merge", func(ctx context.Context) error {
		return store.CreateOrMergeReservation(ctx, session.UserID, event.ID, reservation)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}

	if session.Email != "" {
		s.confirmations.Dispatch(ctx, models.BookingConfirmedEvent{
			UserID:        session.UserID,
			UserEmail:     session.Email,
			EventID:       event.ID,
			EventName:     event.Name,
			EventDate:     event.Date,
			EventLocation: event.Location,
			Timestamp:     s.clock.Now(),
		})
	} else {
		log.Warn("Session has no email, confirmation skipped")
	}

	metrics.Bookings.Inc()
	log.Info("Booking confirmed", "ticket_type", tier.ID, "payment_id", paymentID)

	return &models.BookingConfirmation{
		Status:      BookingStatusConfirmed,
		Event:       event,
		TicketType:  tier,
		Total:       tier.Price,
		PaymentID:   paymentID,
		Reservation: reservation,
	}, nil
}

// Reservations returns the user's reservations split into upcoming and past
func (s *BookingService) Reservations(ctx context.Context, userID string) (*models.ReservationsResponse, error) {
	reservations, err := s.repos.Store.ListReservations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	buckets := classifier.Classify(reservations, s.clock.Now())
	if len(buckets.Excluded) > 0 {
		logger.WithContext(ctx).Warn("Reservations with unparseable dates were skipped",
			"count", len(buckets.Excluded))
	}

	return &models.ReservationsResponse{
		Upcoming: buckets.Upcoming,
		Past:     buckets.Past,
	}, nil
}
