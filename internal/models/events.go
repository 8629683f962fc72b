package models

import "time"

// Broker subjects
const (
	EventBookingConfirmed = "booking.confirmed"
)

// BookingConfirmedEvent is published after a booking is confirmed
type BookingConfirmedEvent struct {
	UserID        string    `json:"user_id"`
	UserEmail     string    `json:"user_email"`
	EventID       string    `json:"event_id"`
	EventName     string    `json:"event_name"`
	EventDate     string    `json:"event_date"`
	EventLocation string    `json:"event_location"`
	Timestamp     time.Time `json:"timestamp"`
}

// EmailRequest converts the event into the notifier input
func (e BookingConfirmedEvent) EmailRequest() ConfirmationEmailRequest {
	return ConfirmationEmailRequest{
		UserEmail:     e.UserEmail,
		EventName:     e.EventName,
		EventDate:     e.EventDate,
		EventLocation: e.EventLocation,
	}
}
