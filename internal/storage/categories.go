package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
)

// GetCategories returns the full catalog ordered by (category, subcategory).
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.CategoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, subcategory
		FROM categories
		ORDER BY category, subcategory
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.CategoryEntry
	for rows.Next() {
		var entry model.CategoryEntry
		if err := rows.Scan(&entry.Category, &entry.Subcategory); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(entries))
	return entries, nil
}

// CategoryExists reports whether the (category, subcategory) pair is in the catalog.
func (s *SQLiteStorage) CategoryExists(ctx context.Context, category, subcategory string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE category = ? AND subcategory = ?)
	`, category, subcategory).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}

	return exists, nil
}

// ReplaceCategories atomically replaces the whole catalog with the given
// entries. Duplicate pairs collapse to one row. Classification calls racing
// with a replace see either the old or the new catalog, never a mix.
func (s *SQLiteStorage) ReplaceCategories(ctx context.Context, entries []model.CategoryEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if entries == nil {
		return fmt.Errorf("%w: entries", ErrNilSlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	for _, entry := range entries {
		if entry.Category == "" {
			slog.Warn("skipping catalog entry with empty category",
				"subcategory", entry.Subcategory)
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (category, subcategory)
			VALUES (?, ?)
			ON CONFLICT(category, subcategory) DO NOTHING
		`, entry.Category, entry.Subcategory); err != nil {
			return fmt.Errorf("failed to insert category %q: %w", entry.Label(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog replace: %w", err)
	}

	slog.Info("catalog replaced", "count", len(entries))
	return nil
}
