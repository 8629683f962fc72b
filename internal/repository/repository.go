package repository

import (
	"context"
	"fmt"
	"time"

	"gilded/internal/database"
	"gilded/internal/search"
)

// Repositories bundles the document store with its write dispatcher
type Repositories struct {
	Store  Store
	Writes *Dispatcher
}

func NewRepositories(store Store, writes *Dispatcher) *Repositories {
	return &Repositories{Store: store, Writes: writes}
}

// NewMemoryRepositories is used by tests and local development
func NewMemoryRepositories(sync bool) *Repositories {
	return NewRepositories(NewMemoryStore(), NewDispatcher(10*time.Second, sync))
}

func NewRepositoriesWithElasticsearch(ctx context.Context, es *search.ElasticsearchClient, writes *Dispatcher) (*Repositories, error) {
	store, err := NewElasticsearchStore(ctx, es)
	if err != nil {
		return nil, err
	}
	return NewRepositories(store, writes), nil
}

func NewRepositoriesWithPostgres(ctx context.Context, db *database.DB, writes *Dispatcher) (*Repositories, error) {
	if err := db.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return NewRepositories(NewPostgresStore(db), writes), nil
}

// Close drains pending writes before closing the store
func (r *Repositories) Close(ctx context.Context) error {
	drainErr := r.Writes.Drain(ctx)
	if err := r.Store.Close(); err != nil {
		return err
	}
	return drainErr
}
