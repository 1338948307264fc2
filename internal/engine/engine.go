// Package engine implements the classification orchestrator: normalize,
// consult stored corrections, and only on a miss pay for an oracle call
// constrained to the category catalog.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
	"github.com/AlexRiks/AccountingDesk-IA/internal/normalize"
	"github.com/AlexRiks/AccountingDesk-IA/internal/service"
)

// Engine orchestrates classification over the correction store, the category
// catalog, and the external oracle. All collaborators are injected; the
// engine holds no hidden shared state.
type Engine struct {
	corrections service.CorrectionStore
	catalog     service.CategoryStore
	oracle      Oracle
	logger      *slog.Logger
}

// New creates a new classification engine with the given dependencies.
func New(corrections service.CorrectionStore, catalog service.CategoryStore, oracle Oracle, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		corrections: corrections,
		catalog:     catalog,
		oracle:      oracle,
		logger:      logger,
	}
}

// Classify resolves a description to a category. It is total over all string
// inputs: empty or meaningless text resolves to UNCATEGORIZED, and
// infrastructure failures resolve to ERROR-classed results, never a panic or
// error return. A stored correction always wins over the oracle.
func (e *Engine) Classify(ctx context.Context, description string) model.ClassificationResult {
	if strings.TrimSpace(description) == "" {
		return model.Uncategorized()
	}

	normalized := normalize.Normalize(description)
	if normalized == "" {
		return model.Uncategorized()
	}

	record, err := e.corrections.GetCorrection(ctx, normalized)
	if err != nil {
		// A broken correction store degrades to the oracle path rather than
		// blocking classification outright.
		e.logger.Warn("correction lookup failed, falling back to oracle",
			"description", description,
			"error", err)
	}
	if record != nil {
		e.logger.Debug("correction hit",
			"normalized", normalized,
			"category", record.Category,
			"subcategory", record.Subcategory)
		return model.ClassificationResult{
			Category:    record.Category,
			Subcategory: record.Subcategory,
			Source:      model.SourceCorrection,
		}
	}

	candidates, err := e.catalog.GetCategories(ctx)
	if err != nil {
		e.logger.Error("failed to load catalog", "error", err)
		return model.ErrorResult(model.SubcategoryCatalogEmpty)
	}
	if len(candidates) == 0 {
		return model.ErrorResult(model.SubcategoryCatalogEmpty)
	}

	if e.oracle == nil {
		return model.ErrorResult(model.SubcategoryOracleUnavailable)
	}

	// The oracle sees the original description: casing and punctuation the
	// normalizer discards can still carry signal.
	answer, err := e.oracle.Classify(ctx, description, candidates)
	if err != nil {
		e.logger.Warn("oracle unavailable",
			"description", description,
			"error", err)
		return model.ErrorResult(model.SubcategoryOracleUnavailable)
	}

	return e.acceptAnswer(answer, candidates)
}

// acceptAnswer applies the strict-acceptance policy: the raw answer must be
// exactly one catalog label or the Uncategorized sentinel. Anything else is
// rejected and coerced to UNCATEGORIZED; inventing categories is worse than
// rejecting a sloppily formatted valid answer.
func (e *Engine) acceptAnswer(answer string, candidates []model.CategoryEntry) model.ClassificationResult {
	answer = strings.TrimSpace(answer)

	if answer == model.CategoryUncategorized {
		return model.Uncategorized()
	}

	for _, entry := range candidates {
		if answer == entry.Label() {
			return model.ClassificationResult{
				Category:    entry.Category,
				Subcategory: entry.Subcategory,
				Source:      model.SourceOracle,
			}
		}
	}

	e.logger.Info("oracle answer rejected, not a catalog label",
		"answer", answer)
	return model.Uncategorized()
}

// RecordCorrection stores a user-confirmed category for a description. When
// the category is the Uncategorized sentinel the subcategory is forced empty,
// the canonical representation of "explicitly marked unknown".
func (e *Engine) RecordCorrection(ctx context.Context, originalDescription, category, subcategory string) error {
	if category == model.CategoryUncategorized {
		subcategory = ""
	}

	if err := e.corrections.SaveCorrection(ctx, originalDescription, category, subcategory); err != nil {
		return fmt.Errorf("failed to record correction: %w", err)
	}

	e.logger.Info("correction recorded",
		"description", originalDescription,
		"category", category,
		"subcategory", subcategory)
	return nil
}
