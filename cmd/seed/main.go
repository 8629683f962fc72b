package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"gilded/internal/catalog"
	"gilded/internal/config"
	"gilded/internal/logger"
	"gilded/internal/models"
	"gilded/internal/repository"

	"github.com/google/uuid"
)

var (
	userID   = flag.String("user", "", "User ID to seed (default: a new UUID)")
	email    = flag.String("email", "demo@example.com", "Email of the seeded user profile")
	eventIDs = flag.String("events", "", "Comma separated catalog event IDs to reserve (default: all events)")
	logins   = flag.Int("logins", 3, "Number of login history entries to add")
	dryRun   = flag.Bool("dry-run", false, "Show what would be seeded without making changes")
)

type Seeder struct {
	repos   *repository.Repositories
	catalog *catalog.Store
	now     time.Time
}

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if *userID == "" {
		*userID = uuid.NewString()
	}

	slog.Info("Starting demo data seeder...", "user_id", *userID, "store", cfg.StoreBackend)

	ctx := context.Background()
	seeder := &Seeder{catalog: catalog.Default(), now: time.Now().UTC()}

	if !*dryRun {
		// Seeding waits for every write so failures are reported
		repos, err := repository.Open(ctx, cfg, repository.NewDispatcher(cfg.RequestTimeout, true))
		if err != nil {
			logger.Fatal("Failed to open document store", "error", err)
		}
		defer repos.Close(ctx)
		seeder.repos = repos
	}

	if err := seeder.Seed(ctx); err != nil {
		logger.Fatal("Failed to seed demo data", "error", err)
	}

	slog.Info("Seeding completed successfully!")
}

func (s *Seeder) Seed(ctx context.Context) error {
	events, err := s.selectEvents()
	if err != nil {
		return err
	}

	profile := models.UserProfile{
		ID:         *userID,
		FirstName:  "Demo",
		LastName:   "User",
		Email:      *email,
		DateJoined: s.now.Format(time.RFC3339),
	}

	if *dryRun {
		slog.Info("[DRY RUN] Would create user profile", "user_id", profile.ID, "email", profile.Email)
		slog.Info("[DRY RUN] Would add login history", "entries", *logins)
		for _, e := range events {
			slog.Info("[DRY RUN] Would reserve event", "event_id", e.ID, "name", e.Name, "date", e.Date)
		}
		return nil
	}

	if err := s.write(ctx, "user.create", func(ctx context.Context) error {
		return s.repos.Store.CreateUser(ctx, profile)
	}); err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}

	for i := 0; i < *logins; i++ {
		at := s.now.Add(-time.Duration(rand.Intn(30*24)+1) * time.Hour)
		if err := s.write(ctx, "login_history.append", func(ctx context.Context) error {
			_, err := s.repos.Store.AppendLoginHistory(ctx, profile.ID, at)
			return err
		}); err != nil {
			return fmt.Errorf("failed to add login history: %w", err)
		}
	}

	for _, e := range events {
		reservation := models.Reservation{
			EventName:  e.Name,
			Date:       e.Date,
			Location:   e.Location,
			ImageURL:   e.ImageURL,
			ImageHint:  e.ImageHint,
			ReservedAt: s.now.Format(time.RFC3339),
		}
		if err := s.write(ctx, "reservation.merge", func(ctx context.Context) error {
			return s.repos.Store.CreateOrMergeReservation(ctx, profile.ID, e.ID, reservation)
		}); err != nil {
			slog.Error("Failed to reserve event", "event_id", e.ID, "error", err)
			continue
		}
		slog.Info("Reserved event", "event_id", e.ID, "name", e.Name)
	}

	return nil
}

func (s *Seeder) write(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	_, err := s.repos.Writes.Submit(ctx, op, fn)
	return err
}

func (s *Seeder) selectEvents() ([]models.Event, error) {
	if strings.TrimSpace(*eventIDs) == "" {
		return s.catalog.All(), nil
	}

	var events []models.Event
	for _, id := range strings.Split(*eventIDs, ",") {
		event, err := s.catalog.Get(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", id, err)
		}
		events = append(events, event)
	}
	return events, nil
}
