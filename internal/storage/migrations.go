package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS listings (
					listing_id TEXT PRIMARY KEY,
					category TEXT NOT NULL,
					location TEXT,
					seller_type TEXT NOT NULL,
					posted_days_ago INTEGER NOT NULL DEFAULT 0,
					title TEXT,
					description TEXT,
					price_aed REAL NOT NULL DEFAULT 0,
					is_suspicious INTEGER,
					suspicious_reason TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_listings_category ON listings(category)`,

				`CREATE TABLE IF NOT EXISTS scores (
					batch_id TEXT NOT NULL,
					listing_id TEXT NOT NULL,
					risk_score REAL NOT NULL,
					predicted_suspicious INTEGER NOT NULL,
					scored_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (batch_id, listing_id)
				)`,
				`CREATE INDEX idx_scores_risk ON scores(risk_score)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("migration query failed: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_versions (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	var current sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT MAX(version) FROM schema_versions`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if current.Valid && int64(m.Version) <= current.Int64 {
			continue
		}

		slog.Info("Applying migration", "version", m.Version, "description", m.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_versions (version) VALUES (?)`, m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}
