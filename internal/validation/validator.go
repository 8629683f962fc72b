package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"gilded/internal/models"

	"github.com/google/uuid"
)

// SmokeValidator прогоняет основные сценарии против запущенного API
type SmokeValidator struct {
	baseURL string
	client  *http.Client
}

// NewSmokeValidator создает валидатор с собственным cookie jar.
// Редиректы не выполняются, чтобы можно было проверить защиту маршрутов.
func NewSmokeValidator(baseURL string) *SmokeValidator {
	jar, _ := cookiejar.New(nil)
	return &SmokeValidator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// ValidateAll проверяет все сценарии по порядку
func (v *SmokeValidator) ValidateAll(ctx context.Context) error {
	slog.Info("Starting API smoke validation", "base_url", v.baseURL)

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"health", v.validateHealth},
		{"events", v.validateEvents},
		{"guard", v.validateGuard},
		{"auth", v.validateAuth},
		{"bookings", v.validateBookings},
	}

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return fmt.Errorf("%s validation failed: %w", step.name, err)
		}
		slog.Info("Validation step passed", "step", step.name)
	}

	slog.Info("All endpoints passed validation")
	return nil
}

func (v *SmokeValidator) validateHealth(ctx context.Context) error {
	return v.expect(ctx, "GET", "/health", nil, http.StatusOK, nil)
}

func (v *SmokeValidator) validateEvents(ctx context.Context) error {
	var events []models.Event
	if err := v.expect(ctx, "GET", "/events", nil, http.StatusOK, &events); err != nil {
		return err
	}
	if len(events) == 0 {
		return errors.New("GET /events: expected a non-empty catalog")
	}

	if err := v.expect(ctx, "GET", "/events/"+events[0].ID, nil, http.StatusOK, nil); err != nil {
		return err
	}
	if err := v.expect(ctx, "GET", "/events/does-not-exist", nil, http.StatusNotFound, nil); err != nil {
		return err
	}

	var categories []string
	if err := v.expect(ctx, "GET", "/categories", nil, http.StatusOK, &categories); err != nil {
		return err
	}
	if len(categories) == 0 || categories[0] != "All" {
		return fmt.Errorf("GET /categories: expected \"All\" first, got %v", categories)
	}
	return nil
}

func (v *SmokeValidator) validateGuard(ctx context.Context) error {
	resp, err := v.do(ctx, "GET", "/reservations", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return fmt.Errorf("GET /reservations without cookies: expected 302, got %d", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); !strings.Contains(location, "redirect_to=%2Freservations") {
		return fmt.Errorf("GET /reservations: unexpected redirect %q", location)
	}
	return nil
}

func (v *SmokeValidator) validateAuth(ctx context.Context) error {
	email := fmt.Sprintf("smoke-%s@example.com", uuid.NewString()[:8])
	password := "smoke-" + uuid.NewString()[:8]

	signup := models.SignupRequest{FirstName: "Smoke", LastName: "Test", Email: email, Password: password}
	if err := v.expect(ctx, "POST", "/signup", signup, http.StatusCreated, nil); err != nil {
		return err
	}

	var auth models.AuthResponse
	login := models.LoginRequest{Email: email, Password: password, RedirectTo: "/reservations"}
	if err := v.expect(ctx, "POST", "/login", login, http.StatusOK, &auth); err != nil {
		return err
	}
	if auth.RedirectTo != "/reservations" {
		return fmt.Errorf("POST /login: expected redirect_to to be echoed, got %q", auth.RedirectTo)
	}

	return v.expect(ctx, "GET", "/login-history", nil, http.StatusOK, nil)
}

func (v *SmokeValidator) validateBookings(ctx context.Context) error {
	checkout := models.CheckoutRequest{
		CardName:   "Smoke Test",
		CardNumber: "4242 4242 4242 4242",
		ExpiryDate: "12/30",
		CVC:        "123",
	}

	var confirmation models.BookingConfirmation
	if err := v.expect(ctx, "POST", "/checkout/1", checkout, http.StatusCreated, &confirmation); err != nil {
		return err
	}
	if confirmation.Status != "confirmed" {
		return fmt.Errorf("POST /checkout/1: expected confirmed, got %q", confirmation.Status)
	}

	return v.expect(ctx, "GET", "/reservations", nil, http.StatusOK, nil)
}

// expect выполняет запрос, проверяет статус и, если нужно, декодирует тело
func (v *SmokeValidator) expect(ctx context.Context, method, path string, body any, status int, dst any) error {
	resp, err := v.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != status {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: expected %d, got %d: %s", method, path, status, resp.StatusCode, payload)
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
		}
	}
	return nil
}

func (v *SmokeValidator) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, v.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	return resp, nil
}

// RunValidation запускает валидацию API
func RunValidation(baseURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	return NewSmokeValidator(baseURL).ValidateAll(ctx)
}
