package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/match-tagger/models"
	"github.com/lib/pq"
)

const snapshotSchema = `
	CREATE TABLE IF NOT EXISTS snapshot_entries (
		entry_key  TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

type postgresSnapshotRepository struct {
	db *sql.DB
}

func NewPostgresSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &postgresSnapshotRepository{db: db}
}

// EnsurePostgresSchema creates the snapshot table when it does not exist yet.
func EnsurePostgresSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("failed to create snapshot_entries table: %w", err)
	}
	return nil
}

func (r *postgresSnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	query := `SELECT entry_key, value FROM snapshot_entries WHERE entry_key = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(snapshotKeys))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "42P01" { // undefined_table: nothing saved yet
			return decodeSnapshot(nil)
		}
		return nil, fmt.Errorf("failed to load snapshot entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]string, len(snapshotKeys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot entry: %w", err)
		}
		entries[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot entries: %w", err)
	}

	return decodeSnapshot(entries)
}

func (r *postgresSnapshotRepository) Save(ctx context.Context, snapshot *models.Snapshot) (err error) {
	entries, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot save failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_entries (entry_key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (entry_key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("snapshot save failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, key := range snapshotKeys {
		if _, err = stmt.ExecContext(ctx, key, entries[key]); err != nil {
			return fmt.Errorf("snapshot save failed for key %s: %w", key, err)
		}
	}
	return nil
}
