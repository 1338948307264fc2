// Package importer reads CSV statement exports and classifies every row in
// bulk. Retry of transient oracle failures lives here, on the calling side;
// the engine itself never retries.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/AlexRiks/AccountingDesk-IA/internal/common"
	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
	"github.com/AlexRiks/AccountingDesk-IA/internal/service"
)

// Classifier is the slice of the engine the importer needs.
type Classifier interface {
	Classify(ctx context.Context, description string) model.ClassificationResult
}

// statementRow maps one CSV row of a statement export.
type statementRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
}

// ParseStatement reads statement rows from a CSV export. Rows with an
// unparseable date or amount are skipped with a warning; a statement export
// with a few broken lines should not abort the whole import.
func ParseStatement(r io.Reader) ([]model.Transaction, error) {
	var rows []statementRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse statement: %w", err)
	}

	transactions := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			slog.Warn("skipping statement row with bad date", "row", i+1, "date", row.Date)
			continue
		}

		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			slog.Warn("skipping statement row with bad amount", "row", i+1, "amount", row.Amount)
			continue
		}

		transactions = append(transactions, model.Transaction{
			Date:        date,
			Description: row.Description,
			Amount:      amount,
		})
	}

	return transactions, nil
}

// Importer classifies imported statement rows concurrently.
type Importer struct {
	classifier Classifier
	logger     *slog.Logger
	retryOpts  service.RetryOptions
	maxWorkers int
}

// New creates an importer over the given classifier.
func New(classifier Classifier, retryOpts service.RetryOptions, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		classifier: classifier,
		logger:     logger,
		retryOpts:  retryOpts,
		maxWorkers: 5,
	}
}

// ClassifyAll classifies every transaction with bounded concurrency. Each
// description is an independent unit of work; results come back in input
// order but no ordering between the classifications themselves is implied.
func (imp *Importer) ClassifyAll(ctx context.Context, transactions []model.Transaction) []model.ClassifiedTransaction {
	results := make([]model.ClassifiedTransaction, len(transactions))

	sem := make(chan struct{}, imp.maxWorkers)
	var wg sync.WaitGroup

	for i, txn := range transactions {
		wg.Add(1)
		go func(idx int, transaction model.Transaction) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = model.ClassifiedTransaction{
					Transaction: transaction,
					Result:      model.ErrorResult(model.SubcategoryOracleUnavailable),
				}
				return
			}

			results[idx] = model.ClassifiedTransaction{
				Transaction: transaction,
				Result:      imp.classifyWithRetry(ctx, transaction.Description),
			}
		}(i, txn)
	}

	wg.Wait()

	imp.logger.Info("bulk classification complete", "count", len(transactions))
	return results
}

// classifyWithRetry retries OracleUnavailable outcomes with exponential
// backoff. Every other outcome, including UNCATEGORIZED and CatalogEmpty,
// is final on the first attempt.
func (imp *Importer) classifyWithRetry(ctx context.Context, description string) model.ClassificationResult {
	var result model.ClassificationResult

	err := common.WithRetry(ctx, func() error {
		result = imp.classifier.Classify(ctx, description)
		if result.Source == model.SourceError && result.Subcategory == model.SubcategoryOracleUnavailable {
			return common.ErrOracleUnavailable
		}
		return nil
	}, imp.retryOpts)

	if err != nil {
		// Retries exhausted or context canceled; the last result already
		// carries the OracleUnavailable outcome the caller must see.
		imp.logger.Warn("classification failed after retries",
			"description", description,
			"error", err)
		if result.Source == "" {
			result = model.ErrorResult(model.SubcategoryOracleUnavailable)
		}
	}

	return result
}
