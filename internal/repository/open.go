package repository

import (
	"context"
	"fmt"
	"log/slog"

	"gilded/internal/config"
	"gilded/internal/database"
	apperrors "gilded/internal/errors"
	"gilded/internal/search"
)

// Open connects the store backend selected in cfg
func Open(ctx context.Context, cfg *config.Config, writes *Dispatcher) (*Repositories, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		slog.Warn("Using in-memory document store, data is lost on restart")
		return NewRepositories(NewMemoryStore(), writes), nil

	case config.StorePostgres:
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repos, err := NewRepositoriesWithPostgres(ctx, db, writes)
		if err != nil {
			db.Close()
			return nil, err
		}
		return repos, nil

	case config.StoreElasticsearch:
		es, err := search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
		}
		return NewRepositoriesWithElasticsearch(ctx, es, writes)

	default:
		return nil, fmt.Errorf("%w: unknown backend %q", apperrors.ErrStoreNotConfigured, cfg.StoreBackend)
	}
}
