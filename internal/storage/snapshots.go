package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"blogopts/internal/models"
	"blogopts/internal/options"
)

// UpsertSnapshot stores the normalized options for a blog, replacing any
// existing snapshot for the same blog ID. The snapshot keeps its original
// row ID and created_at across replacements. The stored snapshot is
// returned.
func (s *Store) UpsertSnapshot(ctx context.Context, blogID string, opts options.Options) (*models.OptionsSnapshot, error) {
	data, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("marshaling options for blog %q: %w", blogID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO option_snapshots (id, blog_id, options, created_at, updated_at)
		 VALUES (?, ?, ?, datetime('now'), datetime('now'))
		 ON CONFLICT(blog_id) DO UPDATE SET
			options    = excluded.options,
			updated_at = excluded.updated_at`,
		uuid.NewString(), blogID, string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("upserting snapshot for blog %q: %w", blogID, err)
	}

	return s.GetSnapshot(ctx, blogID)
}

// GetSnapshot returns the stored snapshot for a blog.
// Returns nil, ErrNotFound if no snapshot exists.
func (s *Store) GetSnapshot(ctx context.Context, blogID string) (*models.OptionsSnapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, blog_id, options, created_at, updated_at
		 FROM option_snapshots
		 WHERE blog_id = ?`, blogID)

	snap, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting snapshot for blog %q: %w", blogID, err)
	}
	return snap, nil
}

// ListSnapshots returns summaries of all stored snapshots, most recently
// updated first.
func (s *Store) ListSnapshots(ctx context.Context) ([]models.SnapshotSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, blog_id, created_at, updated_at
		 FROM option_snapshots
		 ORDER BY updated_at DESC, blog_id`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var summaries []models.SnapshotSummary
	for rows.Next() {
		var (
			summary   models.SnapshotSummary
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&summary.ID, &summary.BlogID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		summary.CreatedAt = parseTime(createdAt)
		summary.UpdatedAt = parseTime(updatedAt)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot rows: %w", err)
	}
	return summaries, nil
}

// DeleteSnapshot removes a blog's snapshot.
// Returns ErrNotFound if no snapshot exists.
func (s *Store) DeleteSnapshot(ctx context.Context, blogID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM option_snapshots WHERE blog_id = ?`, blogID)
	if err != nil {
		return fmt.Errorf("deleting snapshot for blog %q: %w", blogID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows for blog %q: %w", blogID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner is a minimal interface satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanSnapshot scans a single snapshot row, decoding the options JSON.
func scanSnapshot(row scanner) (*models.OptionsSnapshot, error) {
	var (
		snap      models.OptionsSnapshot
		optionsJS string
		createdAt string
		updatedAt string
	)

	if err := row.Scan(&snap.ID, &snap.BlogID, &optionsJS, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(optionsJS), &snap.Options); err != nil {
		return nil, fmt.Errorf("unmarshaling options for blog %q: %w", snap.BlogID, err)
	}
	snap.CreatedAt = parseTime(createdAt)
	snap.UpdatedAt = parseTime(updatedAt)

	return &snap, nil
}
