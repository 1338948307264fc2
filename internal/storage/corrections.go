package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AlexRiks/AccountingDesk-IA/internal/common"
	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
	"github.com/AlexRiks/AccountingDesk-IA/internal/normalize"
)

// GetCorrection looks up a correction by the normalized description.
// A miss is not an error: the record is nil and the error is nil.
func (s *SQLiteStorage) GetCorrection(ctx context.Context, normalized string) (*model.CorrectionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if normalized == "" {
		// Nothing stable to key on; fail closed rather than guessing.
		return nil, nil
	}

	var record model.CorrectionRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT key_hash, normalized_description, original_description, category, subcategory, updated_at
		FROM corrections
		WHERE key_hash = ?
	`, normalize.Key(normalized)).Scan(
		&record.KeyHash,
		&record.NormalizedDescription,
		&record.OriginalDescription,
		&record.Category,
		&record.Subcategory,
		&record.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get correction: %w", err)
	}

	return &record, nil
}

// SaveCorrection upserts a correction keyed by the normalized form of the
// original description. Last write wins; updated_at always advances.
func (s *SQLiteStorage) SaveCorrection(ctx context.Context, originalDescription, category, subcategory string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}

	normalized := normalize.Normalize(originalDescription)
	if normalized == "" {
		return fmt.Errorf("cannot save correction for %q: %w", originalDescription, common.ErrEmptyKey)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO corrections (key_hash, normalized_description, original_description, category, subcategory, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key_hash) DO UPDATE SET
			original_description = excluded.original_description,
			category = excluded.category,
			subcategory = excluded.subcategory,
			updated_at = excluded.updated_at
	`, normalize.Key(normalized), normalized, originalDescription, category, subcategory, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to save correction: %w", err)
	}

	return nil
}

// GetAllCorrections returns every stored correction, newest first.
func (s *SQLiteStorage) GetAllCorrections(ctx context.Context) ([]model.CorrectionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key_hash, normalized_description, original_description, category, subcategory, updated_at
		FROM corrections
		ORDER BY updated_at DESC, key_hash
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.CorrectionRecord
	for rows.Next() {
		var record model.CorrectionRecord
		if err := rows.Scan(
			&record.KeyHash,
			&record.NormalizedDescription,
			&record.OriginalDescription,
			&record.Category,
			&record.Subcategory,
			&record.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// DeleteCorrection removes the correction for a normalized description.
func (s *SQLiteStorage) DeleteCorrection(ctx context.Context, normalized string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(normalized, "normalized"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM corrections WHERE key_hash = ?`, normalize.Key(normalized))
	if err != nil {
		return fmt.Errorf("failed to delete correction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}
