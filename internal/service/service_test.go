package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gilded/internal/ai"
	"gilded/internal/auth"
	"gilded/internal/catalog"
	"gilded/internal/clock"
	apperrors "gilded/internal/errors"
	"gilded/internal/external"
	"gilded/internal/models"
	"gilded/internal/recommend"
	"gilded/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu       sync.Mutex
	requests []models.ConfirmationEmailRequest
	success  bool
}

func (n *recordingNotifier) SendConfirmation(_ context.Context, req models.ConfirmationEmailRequest) models.ConfirmationEmailResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, req)
	return models.ConfirmationEmailResult{Success: n.success}
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.requests)
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(string, any) error {
	p.calls++
	return errors.New("broker down")
}

func (p *failingPublisher) Close() error { return nil }

type failingStore struct {
	repository.Store
}

func (failingStore) CreateOrMergeReservation(context.Context, string, string, models.Reservation) error {
	return errors.New("store unavailable")
}

type testEnv struct {
	services *Services
	repos    *repository.Repositories
	notifier *recordingNotifier
	answer   string
	genErr   error
}

func newTestEnv(t *testing.T, repos *repository.Repositories) *testEnv {
	t.Helper()
	env := &testEnv{repos: repos, notifier: &recordingNotifier{success: true}}

	gen := ai.GeneratorFunc(func(_ context.Context, _ string, _ ...string) (map[string]string, error) {
		if env.genErr != nil {
			return nil, env.genErr
		}
		return map[string]string{"recommendations": env.answer}, nil
	})

	authCfg := auth.Config{JWTSecret: "test", IDTokenTTL: time.Hour, RefreshTokenTTL: time.Hour, MaxAttempts: 5, AttemptWindow: time.Minute}
	env.services = NewServices(Deps{
		Catalog:   catalog.Default(),
		Repos:     repos,
		Requester: recommend.NewRequester(gen),
		Notifier:  env.notifier,
		Payments:  external.NewPaymentClient(external.PaymentConfig{}),
		Provider:  auth.NewCredentialProvider(auth.NewMemoryCredentials(), authCfg),
		Tokens:    auth.NewTokens(authCfg),
		Clock:     clock.NewFixed(testNow),
	})
	return env
}

var session = models.Session{UserID: "u1", Email: "ada@example.com"}

var card = models.CheckoutRequest{
	CardName:   "Ada Lovelace",
	CardNumber: "4242424242424242",
	ExpiryDate: "12/27",
	CVC:        "123",
}

func TestCheckout_ConfirmsAndRecordsReservation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, repository.NewMemoryRepositories(true))

	req := card
	req.TicketTypeID = "t2"
	conf, err := env.services.Bookings.Checkout(ctx, session, "1", &req)
	require.NoError(t, err)

	assert.Equal(t, BookingStatusConfirmed, conf.Status)
	assert.Equal(t, "VIP Seating", conf.TicketType.Name)
	assert.Equal(t, 150.0, conf.Total)
	assert.NotEmpty(t, conf.PaymentID)

	list, err := env.repos.Store.ListReservations(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "Starlight Symphony Orchestra", list[0].EventName)

	require.NoError(t, env.services.Confirmations.Wait(ctx))
	assert.Equal(t, 1, env.notifier.count())
}

func TestCheckout_Errors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, repository.NewMemoryRepositories(true))

	_, err := env.services.Bookings.Checkout(ctx, session, "99", &card)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	req := card
	req.TicketTypeID = "t9"
	_, err = env.services.Bookings.Checkout(ctx, session, "1", &req)
	assert.ErrorIs(t, err, apperrors.ErrTicketTypeNotFound)

	req = card
	req.CVC = "1"
	_, err = env.services.Bookings.Checkout(ctx, session, "1", &req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCard)
}

func TestCheckout_NotifierFailureDoesNotAffectBooking(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, repository.NewMemoryRepositories(true))
	env.notifier.success = false

	conf, err := env.services.Bookings.Checkout(ctx, session, "4", &card)

	require.NoError(t, err)
	assert.Equal(t, BookingStatusConfirmed, conf.Status)
	require.NoError(t, env.services.Confirmations.Wait(ctx))
	assert.Equal(t, 1, env.notifier.count())
}

func TestCheckout_AsyncWriteFailureIsNotObserved(t *testing.T) {
	repos := repository.NewRepositories(failingStore{repository.NewMemoryStore()}, repository.NewDispatcher(time.Second, false))
	env := newTestEnv(t, repos)

	conf, err := env.services.Bookings.Checkout(context.Background(), session, "1", &card)

	require.NoError(t, err)
	assert.Equal(t, BookingStatusConfirmed, conf.Status)
	require.NoError(t, repos.Writes.Drain(context.Background()))
}

func TestCheckout_SyncWriteFailureSurfaces(t *testing.T) {
	repos := repository.NewRepositories(failingStore{repository.NewMemoryStore()}, repository.NewDispatcher(time.Second, true))
	env := newTestEnv(t, repos)

	_, err := env.services.Bookings.Checkout(context.Background(), session, "1", &card)

	assert.Error(t, err)
	assert.Equal(t, 0, env.notifier.count())
}

func TestConfirmationDispatcher_FallsBackWhenPublishFails(t *testing.T) {
	notifier := &recordingNotifier{success: true}
	publisher := &failingPublisher{}
	d := NewConfirmationDispatcher(publisher, notifier)

	d.Dispatch(context.Background(), models.BookingConfirmedEvent{UserEmail: "ada@example.com", EventName: "Gala"})

	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, 1, publisher.calls)
	assert.Equal(t, 1, notifier.count())
}

func TestReservations_Classified(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, repository.NewMemoryRepositories(true))
	store := env.repos.Store

	require.NoError(t, store.CreateOrMergeReservation(ctx, "u1", "3", models.Reservation{EventName: "Innovate Summit 2025", Date: "2025-01-10"}))
	require.NoError(t, store.CreateOrMergeReservation(ctx, "u1", "1", models.Reservation{EventName: "Starlight Symphony Orchestra", Date: "2025-12-15"}))
	require.NoError(t, store.CreateOrMergeReservation(ctx, "u1", "x", models.Reservation{EventName: "Broken", Date: "not-a-date"}))

	resp, err := env.services.Bookings.Reservations(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, resp.Upcoming, 1)
	require.Len(t, resp.Past, 1)
	assert.Equal(t, "1", resp.Upcoming[0].ID)
	assert.Equal(t, "3", resp.Past[0].ID)
}

func TestRecommend_MatchesCatalog(t *testing.T) {
	env := newTestEnv(t, repository.NewMemoryRepositories(true))
	env.answer = "jazz, food"

	resp, err := env.services.Recommendations.Recommend(context.Background(), "u1", models.RecommendationRequest{UserPreferences: "jazz and food"})
	require.NoError(t, err)

	assert.Equal(t, []string{"jazz", "food"}, resp.Recommendations)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Gourmet World Food Festival", resp.Events[0].Name)
	assert.Empty(t, resp.Message)
}

func TestRecommend_FallbackMessage(t *testing.T) {
	env := newTestEnv(t, repository.NewMemoryRepositories(true))
	env.answer = "Opera Night, Rodeo"

	resp, err := env.services.Recommendations.Recommend(context.Background(), "u1", models.RecommendationRequest{UserPreferences: "opera"})
	require.NoError(t, err)

	assert.Empty(t, resp.Events)
	assert.Equal(t, "We found some recommendations: Opera Night, Rodeo. However, no currently available events match these suggestions. Please check back later!", resp.Message)
}

func TestRecommend_Failure(t *testing.T) {
	env := newTestEnv(t, repository.NewMemoryRepositories(true))
	env.genErr = errors.New("quota exceeded")

	resp, err := env.services.Recommendations.Recommend(context.Background(), "u1", models.RecommendationRequest{UserPreferences: "opera"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrRecommendationsUnavailable)
}

func TestSeed_UsesPastReservations(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, repository.NewMemoryRepositories(true))
	store := env.repos.Store

	require.NoError(t, store.CreateOrMergeReservation(ctx, "u1", "3", models.Reservation{EventName: "Innovate Summit 2025", Date: "2025-01-10"}))
	require.NoError(t, store.CreateOrMergeReservation(ctx, "u1", "7", models.Reservation{EventName: "Old Gala", Date: "2024-11-30"}))
	require.NoError(t, store.CreateOrMergeReservation(ctx, "u1", "1", models.Reservation{EventName: "Starlight Symphony Orchestra", Date: "2025-12-15"}))

	seed, err := env.services.Recommendations.Seed(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Innovate Summit 2025, Old Gala", seed)
}

func TestSignUpSignInAndHistory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, repository.NewMemoryRepositories(true))

	s, err := env.services.Auth.SignUp(ctx, &models.SignupRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	profile, err := env.services.Auth.Profile(ctx, s.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, "2025-06-01T00:00:00Z", profile.DateJoined)

	signedIn, err := env.services.Auth.SignIn(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, s.UserID, signedIn.UserID)

	_, err = env.repos.Store.AppendLoginHistory(ctx, s.UserID, testNow.Add(time.Hour))
	require.NoError(t, err)

	history, err := env.services.Auth.LoginHistory(ctx, s.UserID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2025-06-01T01:00:00Z", history[0].Timestamp)
	assert.Equal(t, "2025-06-01T00:00:00Z", history[1].Timestamp)

	_, err = env.services.Auth.SignIn(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "nope"})
	assert.Equal(t, auth.MsgInvalidCredentials, auth.LoginErrorMessage(err))
}
