package database

import (
	"context"
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations(ctx context.Context) error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createDocumentsTable,
		createDocumentsOwnerIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// documents holds users/{uid}/{collection}/{doc_id} style documents as JSONB
const createDocumentsTable = `
CREATE TABLE IF NOT EXISTS documents (
    collection VARCHAR(64) NOT NULL,
    owner_id VARCHAR(128) NOT NULL,
    doc_id VARCHAR(128) NOT NULL,
    data JSONB NOT NULL DEFAULT '{}'::jsonb,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    PRIMARY KEY (collection, owner_id, doc_id)
);`

const createDocumentsOwnerIndex = `
CREATE INDEX IF NOT EXISTS documents_owner_idx
ON documents (owner_id, collection);`
