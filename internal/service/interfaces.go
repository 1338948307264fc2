// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
)

// CorrectionStore defines the contract for persisting user corrections.
type CorrectionStore interface {
	// GetCorrection looks up the correction for a normalized description.
	// Returns nil with no error when no correction exists.
	GetCorrection(ctx context.Context, normalized string) (*model.CorrectionRecord, error)
	// SaveCorrection upserts the correction keyed by the normalized form of
	// originalDescription. The newest correction always wins.
	SaveCorrection(ctx context.Context, originalDescription, category, subcategory string) error
}

// CategoryStore defines the contract for the category catalog.
type CategoryStore interface {
	// GetCategories returns the full catalog ordered by (category, subcategory).
	GetCategories(ctx context.Context) ([]model.CategoryEntry, error)
	// CategoryExists reports whether the pair is a catalog member.
	CategoryExists(ctx context.Context, category, subcategory string) (bool, error)
	// ReplaceCategories atomically swaps the whole catalog.
	ReplaceCategories(ctx context.Context, entries []model.CategoryEntry) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	CorrectionStore
	CategoryStore

	// GetAllCorrections returns every stored correction ordered by recency.
	GetAllCorrections(ctx context.Context) ([]model.CorrectionRecord, error)
	// DeleteCorrection removes the correction for a normalized description.
	DeleteCorrection(ctx context.Context, normalized string) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
