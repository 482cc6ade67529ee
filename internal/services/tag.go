package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shafina/squadgoals/internal/models"
)

// findOrCreateTag resolves a tag name to a row, inserting it lazily on first
// use. Names are case-sensitive keys. ON CONFLICT DO NOTHING plus a re-select
// keeps concurrent creators from failing, though two racing requests can still
// observe each other's insert; that is accepted behavior rather than a reason
// for application-level locking.
func findOrCreateTag(ctx context.Context, tx pgx.Tx, name string) (*models.Tag, error) {
	var tag models.Tag
	err := tx.QueryRow(ctx, `SELECT id, name FROM tags WHERE name = $1`, name).
		Scan(&tag.ID, &tag.Name)
	if err == nil {
		return &tag, nil
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag %q: %w", name, err)
	}

	err = tx.QueryRow(ctx, `SELECT id, name FROM tags WHERE name = $1`, name).
		Scan(&tag.ID, &tag.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to load tag %q: %w", name, err)
	}
	return &tag, nil
}
