package external

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	apperrors "gilded/internal/errors"

	"github.com/google/uuid"
)

// Payment statuses
const (
	PaymentStatusCompleted = "COMPLETED"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvcPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

type PaymentConfig struct {
	// SimulationDelay is how long a charge takes
	SimulationDelay time.Duration
	Currency        string
}

// Card holds the checkout card fields
type Card struct {
	Name   string
	Number string
	Expiry string
	CVC    string
}

// Masked returns the card number with all but the last four digits hidden
func (c Card) Masked() string {
	n := NormalizeCardNumber(c.Number)
	if len(n) < 4 {
		return "****"
	}
	return strings.Repeat("*", len(n)-4) + n[len(n)-4:]
}

type PaymentRequest struct {
	OrderID     string
	Amount      float64
	Description string
	Card        Card
}

type PaymentResult struct {
	PaymentID string    `json:"paymentId"`
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentClient simulates a payment gateway: every valid card is charged
// after the configured delay.
type PaymentClient struct {
	delay    time.Duration
	currency string
}

func NewPaymentClient(cfg PaymentConfig) *PaymentClient {
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	return &PaymentClient{delay: cfg.SimulationDelay, currency: cfg.Currency}
}

// NormalizeCardNumber strips spaces and dashes
func NormalizeCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

// ValidCardNumber reports whether number has 16 digits once normalized
func ValidCardNumber(number string) bool {
	return cardNumberPattern.MatchString(NormalizeCardNumber(number))
}

// ValidExpiry reports whether s looks like MM/YY
func ValidExpiry(s string) bool {
	return expiryPattern.MatchString(strings.TrimSpace(s))
}

// ValidCVC reports whether s has 3 or 4 digits
func ValidCVC(s string) bool {
	return cvcPattern.MatchString(strings.TrimSpace(s))
}

// ValidateCard checks every card field
func ValidateCard(card Card) error {
	switch {
	case len(strings.TrimSpace(card.Name)) < 2:
		return fmt.Errorf("%w: name on card is too short", apperrors.ErrInvalidCard)
	case !ValidCardNumber(card.Number):
		return fmt.Errorf("%w: card number must be 16 digits", apperrors.ErrInvalidCard)
	case !ValidExpiry(card.Expiry):
		return fmt.Errorf("%w: expiry date must be MM/YY", apperrors.ErrInvalidCard)
	case !ValidCVC(card.CVC):
		return fmt.Errorf("%w: CVC must be 3 or 4 digits", apperrors.ErrInvalidCard)
	}
	return nil
}

// Charge waits for the simulated processing time and confirms the payment.
// Cancelling ctx aborts the charge.
func (pc *PaymentClient) Charge(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	if err := ValidateCard(req.Card); err != nil {
		return nil, err
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: negative amount", apperrors.ErrPaymentDeclined)
	}

	if pc.delay > 0 {
		timer := time.NewTimer(pc.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("payment cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	result := &PaymentResult{
		PaymentID: uuid.New().String(),
		OrderID:   req.OrderID,
		Status:    PaymentStatusCompleted,
		Amount:    req.Amount,
		Currency:  pc.currency,
		CreatedAt: time.Now().UTC(),
	}

	slog.Info("Payment completed",
		"payment_id", result.PaymentID,
		"order_id", req.OrderID,
		"amount", req.Amount,
		"card", req.Card.Masked(),
	)
	return result, nil
}
